package buffer

// Cursor is a (line, column) pair. Col is a character offset, not a byte
// offset. It doubles as a plain position in edit records.
type Cursor struct {
	Line, Col int
}

func (c Cursor) Before(other Cursor) bool {
	if c.Line != other.Line {
		return c.Line < other.Line
	}
	return c.Col < other.Col
}

func (c Cursor) Equal(other Cursor) bool {
	return c.Line == other.Line && c.Col == other.Col
}

// Motion is a cursor movement that does not modify the buffer.
type Motion int

const (
	MoveLeft Motion = iota
	MoveRight
	MoveUp
	MoveDown
	MoveLineStart
	MoveLineEnd
	MoveBufferStart
	MoveBufferEnd
	MoveWordLeft
	MoveWordRight
	MoveParagraphUp
	MoveParagraphDown

	// Page motions depend on the screen. Move ignores them; see MovePage.
	MovePageUp
	MovePageDown
)

// clamp forces c into valid bounds for rows.
func (c Cursor) clamp(r *Rows) Cursor {
	if c.Line < 0 {
		c.Line = 0
	}
	if n := r.LineCount(); c.Line >= n {
		c.Line = n - 1
	}
	if c.Col < 0 {
		c.Col = 0
	}
	if l := r.lines[c.Line].Len(); c.Col > l {
		c.Col = l
	}
	return c
}

// Move applies m to the cursor and clamps the result.
func (b *Buffer) Move(m Motion) {
	c := b.Cursor.clamp(b.rows)
	switch m {
	case MoveLeft:
		if c.Col > 0 {
			c.Col--
		} else if c.Line > 0 {
			c.Line--
			c.Col = b.rows.lines[c.Line].Len()
		}
	case MoveRight:
		if c.Col < b.rows.lines[c.Line].Len() {
			c.Col++
		} else if c.Line < b.rows.LineCount()-1 {
			c.Line++
			c.Col = 0
		}
	case MoveUp:
		if c.Line > 0 {
			c.Line--
		}
	case MoveDown:
		c.Line++
	case MoveLineStart:
		c.Col = 0
	case MoveLineEnd:
		c.Col = b.rows.lines[c.Line].Len()
	case MoveBufferStart:
		c = Cursor{}
	case MoveBufferEnd:
		c.Line = b.rows.LineCount() - 1
		c.Col = b.rows.lines[c.Line].Len()
	case MoveWordLeft:
		c = b.wordLeft(c)
	case MoveWordRight:
		c = b.wordRight(c)
	case MoveParagraphUp, MoveParagraphDown:
		c = b.paragraph(c, m == MoveParagraphUp)
	}
	b.Cursor = c.clamp(b.rows)
}

// MovePage moves the cursor one screen for MovePageUp or MovePageDown. The
// screen shows height lines from top. The cursor first jumps to the top or
// bottom line of the screen and then moves height lines further.
func (b *Buffer) MovePage(m Motion, top, height int) {
	if height < 1 {
		height = 1
	}
	c := b.Cursor.clamp(b.rows)
	switch m {
	case MovePageUp:
		c.Line = SatSub(top, height)
	case MovePageDown:
		c.Line = SatAdd(SatAdd(top, SatSub(height, 1)), height)
	default:
		b.Move(m)
		return
	}
	b.Cursor = c.clamp(b.rows)
}

// paragraph moves line by line until the cursor sits on the first line of a
// paragraph or at either end of the buffer.
func (b *Buffer) paragraph(c Cursor, up bool) Cursor {
	last := b.rows.LineCount() - 1
	for {
		if up {
			if c.Line > 0 {
				c.Line--
			}
		} else if c.Line < last {
			c.Line++
		}
		if c.Line == 0 || c.Line == last ||
			b.rows.lines[c.Line-1].Len() == 0 && b.rows.lines[c.Line].Len() > 0 {
			return c
		}
	}
}

const (
	classSpace = iota
	classWord
	classPunct
)

func charClass(r rune) int {
	switch {
	case r == ' ' || r == '\t':
		return classSpace
	case r == '_' || isAlnum(r):
		return classWord
	default:
		return classPunct
	}
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r > 0x7f
}

func (b *Buffer) wordLeft(c Cursor) Cursor {
	if c.Col == 0 {
		if c.Line == 0 {
			return c
		}
		return Cursor{Line: c.Line - 1, Col: b.rows.lines[c.Line-1].Len()}
	}
	runes := b.rows.lines[c.Line].runes
	i := c.Col
	for i > 0 && charClass(runes[i-1]) == classSpace {
		i--
	}
	if i > 0 {
		cls := charClass(runes[i-1])
		for i > 0 && charClass(runes[i-1]) == cls {
			i--
		}
	}
	c.Col = i
	return c
}

func (b *Buffer) wordRight(c Cursor) Cursor {
	runes := b.rows.lines[c.Line].runes
	if c.Col >= len(runes) {
		if c.Line >= b.rows.LineCount()-1 {
			return c
		}
		return Cursor{Line: c.Line + 1}
	}
	i := c.Col
	cls := charClass(runes[i])
	for i < len(runes) && charClass(runes[i]) == cls {
		i++
	}
	for i < len(runes) && charClass(runes[i]) == classSpace {
		i++
	}
	c.Col = i
	return c
}
