package buffer

import (
	"strings"
)

// Change describes one structural mutation of the row store: lines
// [Start, Start+Removed) of the old content were replaced by lines
// [Start, Start+Inserted) of the new content.
type Change struct {
	Start    int
	Removed  int
	Inserted int
}

// Rows is the row store. It holds the buffer content as an ordered sequence of
// lines and always contains at least one (possibly empty) line.
type Rows struct {
	lines   []*Line
	tabSize int
	subs    []func(Change)
}

// NewRows builds a row store from the given lines. Lines must not contain
// newlines; any that do are split. An empty input yields one empty line.
func NewRows(lines []string, tabSize int) *Rows {
	if tabSize <= 0 {
		tabSize = DefaultTabSize
	}
	r := &Rows{tabSize: tabSize}
	for _, s := range lines {
		for _, part := range strings.Split(s, "\n") {
			r.lines = append(r.lines, newLine(strings.TrimSuffix(part, "\r"), tabSize))
		}
	}
	if len(r.lines) == 0 {
		r.lines = []*Line{newLine("", tabSize)}
	}
	return r
}

// OnChange registers fn to be called after every mutation.
func (r *Rows) OnChange(fn func(Change)) {
	r.subs = append(r.subs, fn)
}

func (r *Rows) notify(c Change) {
	for _, fn := range r.subs {
		fn(c)
	}
}

// TabSize returns the tab stop used for render widths.
func (r *Rows) TabSize() int { return r.tabSize }

// LineCount returns the number of lines. It is never less than one.
func (r *Rows) LineCount() int { return len(r.lines) }

// Line returns the line at idx.
func (r *Rows) Line(idx int) (*Line, error) {
	if idx < 0 || idx >= len(r.lines) {
		return nil, outOfBounds("line", idx, 0)
	}
	return r.lines[idx], nil
}

// Runes returns the content of line idx, or nil when idx is out of range.
func (r *Rows) Runes(idx int) []rune {
	if idx < 0 || idx >= len(r.lines) {
		return nil
	}
	return r.lines[idx].runes
}

// Strings returns the content as one string per line.
func (r *Rows) Strings() []string {
	out := make([]string, len(r.lines))
	for i, l := range r.lines {
		out[i] = l.String()
	}
	return out
}

func (r *Rows) checkPos(op string, p Cursor) error {
	if p.Line < 0 || p.Line >= len(r.lines) || p.Col < 0 || p.Col > r.lines[p.Line].Len() {
		return outOfBounds(op, p.Line, p.Col)
	}
	return nil
}

// Insert inserts text at (line, col). Text may contain newlines, in which case
// the line is split. It returns the position just after the inserted text.
func (r *Rows) Insert(line, col int, text string) (Cursor, error) {
	at := Cursor{Line: line, Col: col}
	if err := r.checkPos("insert", at); err != nil {
		return at, err
	}
	if text == "" {
		return at, nil
	}

	parts := strings.Split(text, "\n")
	cur := r.lines[line].runes
	head := cur[:col]
	tail := cur[col:]

	if len(parts) == 1 {
		ins := []rune(text)
		buf := make([]rune, 0, len(cur)+len(ins))
		buf = append(buf, head...)
		buf = append(buf, ins...)
		buf = append(buf, tail...)
		r.lines[line] = newLineRunes(buf, r.tabSize)
		r.notify(Change{Start: line, Removed: 1, Inserted: 1})
		return Cursor{Line: line, Col: col + len(ins)}, nil
	}

	repl := make([]*Line, len(parts))
	first := append(append([]rune{}, head...), []rune(parts[0])...)
	repl[0] = newLineRunes(first, r.tabSize)
	for i := 1; i < len(parts)-1; i++ {
		repl[i] = newLine(parts[i], r.tabSize)
	}
	lastIns := []rune(parts[len(parts)-1])
	last := append(append([]rune{}, lastIns...), tail...)
	repl[len(parts)-1] = newLineRunes(last, r.tabSize)

	r.splice(line, 1, repl)
	r.notify(Change{Start: line, Removed: 1, Inserted: len(parts)})
	return Cursor{Line: line + len(parts) - 1, Col: len(lastIns)}, nil
}

// DeleteRange removes the text between start and end (end exclusive) and
// returns it. Line breaks inside the range are returned as "\n".
func (r *Rows) DeleteRange(start, end Cursor) (string, error) {
	if err := r.checkPos("delete", start); err != nil {
		return "", err
	}
	if err := r.checkPos("delete", end); err != nil {
		return "", err
	}
	if end.Before(start) {
		start, end = end, start
	}
	if start.Equal(end) {
		return "", nil
	}

	first := r.lines[start.Line].runes
	if start.Line == end.Line {
		removed := string(first[start.Col:end.Col])
		buf := make([]rune, 0, len(first)-(end.Col-start.Col))
		buf = append(buf, first[:start.Col]...)
		buf = append(buf, first[end.Col:]...)
		r.lines[start.Line] = newLineRunes(buf, r.tabSize)
		r.notify(Change{Start: start.Line, Removed: 1, Inserted: 1})
		return removed, nil
	}

	var sb strings.Builder
	sb.WriteString(string(first[start.Col:]))
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(r.lines[i].String())
	}
	last := r.lines[end.Line].runes
	sb.WriteByte('\n')
	sb.WriteString(string(last[:end.Col]))

	buf := make([]rune, 0, start.Col+len(last)-end.Col)
	buf = append(buf, first[:start.Col]...)
	buf = append(buf, last[end.Col:]...)

	removed := end.Line - start.Line + 1
	r.splice(start.Line, removed, []*Line{newLineRunes(buf, r.tabSize)})
	r.notify(Change{Start: start.Line, Removed: removed, Inserted: 1})
	return sb.String(), nil
}

// SplitLine breaks line at col, moving the remainder to a new following line.
func (r *Rows) SplitLine(line, col int) error {
	if err := r.checkPos("split", Cursor{Line: line, Col: col}); err != nil {
		return err
	}
	cur := r.lines[line].runes
	head := append([]rune{}, cur[:col]...)
	tail := append([]rune{}, cur[col:]...)
	r.splice(line, 1, []*Line{newLineRunes(head, r.tabSize), newLineRunes(tail, r.tabSize)})
	r.notify(Change{Start: line, Removed: 1, Inserted: 2})
	return nil
}

// JoinLine appends line+1 to line and removes it. It returns the column at
// which the two lines were joined.
func (r *Rows) JoinLine(line int) (int, error) {
	if line < 0 || line+1 >= len(r.lines) {
		return 0, outOfBounds("join", line, 0)
	}
	a, b := r.lines[line].runes, r.lines[line+1].runes
	buf := make([]rune, 0, len(a)+len(b))
	buf = append(buf, a...)
	buf = append(buf, b...)
	r.splice(line, 2, []*Line{newLineRunes(buf, r.tabSize)})
	r.notify(Change{Start: line, Removed: 2, Inserted: 1})
	return len(a), nil
}

// splice replaces n lines starting at idx with repl.
func (r *Rows) splice(idx, n int, repl []*Line) {
	out := make([]*Line, 0, len(r.lines)-n+len(repl))
	out = append(out, r.lines[:idx]...)
	out = append(out, repl...)
	out = append(out, r.lines[idx+n:]...)
	r.lines = out
}
