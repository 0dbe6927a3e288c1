package buffer

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// DefaultTabSize is the tab stop used when none is configured.
const DefaultTabSize = 8

// Line is one row of the buffer. Content is stored as runes so that columns
// are character offsets; the render width is recomputed on every mutation.
type Line struct {
	runes []rune
	width int
}

func newLine(s string, tabSize int) *Line {
	l := &Line{runes: []rune(s)}
	l.measure(tabSize)
	return l
}

func newLineRunes(r []rune, tabSize int) *Line {
	l := &Line{runes: r}
	l.measure(tabSize)
	return l
}

// Len returns the number of characters in the line.
func (l *Line) Len() int { return len(l.runes) }

// Runes returns the line content. Callers must not modify the slice.
func (l *Line) Runes() []rune { return l.runes }

func (l *Line) String() string { return string(l.runes) }

// Width returns the cached render width in terminal cells.
func (l *Line) Width() int { return l.width }

func (l *Line) measure(tabSize int) {
	l.width = RenderCol(l.runes, len(l.runes), tabSize)
}

// RuneWidth returns the cell width of r when rendered at display column col.
func RuneWidth(r rune, col, tabSize int) int {
	if tabSize <= 0 {
		tabSize = DefaultTabSize
	}
	switch {
	case r == '\t':
		return tabSize - col%tabSize
	case unicode.IsControl(r):
		// rendered as ^X
		return 2
	}
	w := runewidth.RuneWidth(r)
	if w == 0 {
		// combining marks still occupy a cell when drawn standalone
		w = 1
	}
	return w
}

// RenderCol converts a character column to a display column, expanding tabs
// and accounting for wide and control characters.
func RenderCol(runes []rune, col, tabSize int) int {
	if col > len(runes) {
		col = len(runes)
	}
	rx := 0
	for _, r := range runes[:col] {
		rx += RuneWidth(r, rx, tabSize)
	}
	return rx
}

// CharCol converts a display column back to the character column whose cell
// span contains it. Display columns past the end map to the line length.
func CharCol(runes []rune, rx, tabSize int) int {
	if rx <= 0 {
		return 0
	}
	cur := 0
	for i, r := range runes {
		cur += RuneWidth(r, cur, tabSize)
		if cur > rx {
			return i
		}
	}
	return len(runes)
}
