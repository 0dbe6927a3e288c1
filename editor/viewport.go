package editor

import "kiro/buffer"

// Viewport is the window of lines and display columns shown on screen. It
// does not own the buffer, so operations take the current line count.
type Viewport struct {
	top    int
	height int
	left   int
	width  int
	margin int
}

// NewViewport returns a viewport of the given size in cells. Sizes below one
// are raised to one.
func NewViewport(width, height int) *Viewport {
	v := &Viewport{}
	v.setSize(width, height)
	return v
}

func (v *Viewport) setSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width, v.height = width, height
}

func (v *Viewport) Top() int    { return v.top }
func (v *Viewport) Left() int   { return v.left }
func (v *Viewport) Width() int  { return v.width }
func (v *Viewport) Height() int { return v.height }

// SetMargin sets how many lines EnsureCursorVisible keeps between the cursor
// and the top or bottom edge.
func (v *Viewport) SetMargin(n int) {
	if n < 0 {
		n = 0
	}
	v.margin = n
}

// effectiveMargin never lets the margins cover the cursor row itself.
func (v *Viewport) effectiveMargin() int {
	if m := (v.height - 1) / 2; v.margin > m {
		return m
	}
	return v.margin
}

// Resize changes the size and re-clamps the top line.
func (v *Viewport) Resize(width, height, lineCount int) {
	v.setSize(width, height)
	v.clamp(lineCount)
}

// maxTop is the largest valid top line for lineCount lines.
func (v *Viewport) maxTop(lineCount int) int {
	if m := lineCount - v.height; m > 0 {
		return m
	}
	return 0
}

func (v *Viewport) clamp(lineCount int) {
	if mt := v.maxTop(lineCount); v.top > mt {
		v.top = mt
	}
	if v.top < 0 {
		v.top = 0
	}
	if v.left < 0 {
		v.left = 0
	}
}

// ScrollTo makes line the top line, clamped so the last page stays full.
func (v *Viewport) ScrollTo(line, lineCount int) {
	v.top = line
	v.clamp(lineCount)
}

// ScrollBy moves the top line by delta, clamped like ScrollTo.
func (v *Viewport) ScrollBy(delta, lineCount int) {
	v.ScrollTo(buffer.SatAdd(v.top, delta), lineCount)
}

// EnsureCursorVisible scrolls the minimum amount needed to bring line and
// display column rx into view.
func (v *Viewport) EnsureCursorVisible(line, rx, lineCount int) {
	m := v.effectiveMargin()
	if line < buffer.SatAdd(v.top, m) {
		v.top = buffer.SatSub(line, m)
	}
	if line >= buffer.SatSub(buffer.SatAdd(v.top, v.height), m) {
		v.top = buffer.SatAdd(buffer.SatSub(line, v.height-m), 1)
	}

	if rx < v.left {
		v.left = rx
	}
	if rx >= buffer.SatAdd(v.left, v.width) {
		v.left = buffer.SatAdd(buffer.SatSub(rx, v.width), 1)
	}
	v.clamp(lineCount)
}

// VisibleRange returns the half-open range of lines on screen.
func (v *Viewport) VisibleRange(lineCount int) (start, end int) {
	start = v.top
	if start > lineCount {
		start = lineCount
	}
	end = buffer.SatAdd(start, v.height)
	if end > lineCount {
		end = lineCount
	}
	return start, end
}
