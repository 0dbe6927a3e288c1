package editor

import (
	"kiro/buffer"
	"kiro/config"
	"kiro/highlight"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// CellWriter receives painted cells. tcell.Screen satisfies it.
type CellWriter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var _ CellWriter = tcell.Screen(nil)

func categoryStyle(theme *config.ColorScheme, cat highlight.Category) tcell.Style {
	base := tcell.StyleDefault.Background(theme.Background)

	switch cat {
	case highlight.Keyword:
		return base.Foreground(theme.Keyword).Bold(true)
	case highlight.Statement:
		return base.Foreground(theme.Statement)
	case highlight.Type:
		return base.Foreground(theme.Type)
	case highlight.Identifier:
		return base.Foreground(theme.Identifier)
	case highlight.String:
		return base.Foreground(theme.String)
	case highlight.Char:
		return base.Foreground(theme.Char)
	case highlight.Comment:
		return base.Foreground(theme.Comment).Italic(true)
	case highlight.Number:
		return base.Foreground(theme.Number)
	default:
		return base.Foreground(theme.Foreground)
	}
}

// Paint draws the visible rows at the top-left of dst, filling the whole
// viewport. Rows past the end of the buffer show a '~' marker.
func (e *Editor) Paint(dst CellWriter) {
	theme := e.theme
	lineStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.Foreground)
	emptyLineStyle := tcell.StyleDefault.Background(theme.Background).Foreground(theme.LineNumber)

	rows := e.RenderViewport()
	w, h := e.view.Width(), e.view.Height()
	left := e.view.Left()
	tabSize := e.buf.Rows().TabSize()

	for y := 0; y < h; y++ {
		if y >= len(rows) {
			dst.SetContent(0, y, '~', nil, emptyLineStyle)
			for x := 1; x < w; x++ {
				dst.SetContent(x, y, ' ', nil, lineStyle)
			}
			continue
		}

		row := rows[y]
		spans := row.Spans
		runes := []rune(row.Text)
		// start at the character covering the left edge
		first := buffer.CharCol(runes, left, tabSize)
		rx := buffer.RenderCol(runes, first, tabSize)
		si := 0
		painted := 0 // first screen column not yet written
		for i := first; i < len(runes); i++ {
			r := runes[i]
			for si < len(spans) && i >= spans[si].End {
				si++
			}
			style := lineStyle
			if si < len(spans) {
				style = categoryStyle(theme, spans[si].Category)
			}

			cw := buffer.RuneWidth(r, rx, tabSize)
			sx := rx - left
			rx += cw
			if sx+cw <= 0 {
				continue
			}
			if sx >= w {
				break
			}

			switch {
			case r == '\t':
				for k := 0; k < cw; k++ {
					if sx+k >= 0 && sx+k < w {
						dst.SetContent(sx+k, y, ' ', nil, style)
					}
				}
			case cw == 2 && runewidth.RuneWidth(r) != 2:
				// control character drawn as ^X
				caret := []rune{'^', controlGlyph(r)}
				for k, c := range caret {
					if sx+k >= 0 && sx+k < w {
						dst.SetContent(sx+k, y, c, nil, style.Reverse(true))
					}
				}
			case sx < 0 || sx+cw > w:
				// wide character cut by an edge
				for k := 0; k < cw; k++ {
					if sx+k >= 0 && sx+k < w {
						dst.SetContent(sx+k, y, ' ', nil, style)
					}
				}
			default:
				dst.SetContent(sx, y, r, nil, style)
			}
			painted = sx + cw
		}

		if painted < 0 {
			painted = 0
		}
		for x := painted; x < w; x++ {
			dst.SetContent(x, y, ' ', nil, lineStyle)
		}
	}
}

func controlGlyph(r rune) rune {
	if r == 0x7f {
		return '?'
	}
	if r < 0x20 {
		return r + '@'
	}
	return '?'
}
