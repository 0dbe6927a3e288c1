package buffer

import (
	"fmt"
	"strings"
)

// IntentKind enumerates the edits the input layer may request.
type IntentKind int

const (
	InsertChar IntentKind = iota
	InsertText
	DeleteBackward
	DeleteForward
	SplitLine
	JoinLine
	DeleteWord
	DeleteToLineEnd
	DeleteToLineStart
)

var intentNames = [...]string{
	InsertChar:        "insert-char",
	InsertText:        "insert-text",
	DeleteBackward:    "delete-backward",
	DeleteForward:     "delete-forward",
	SplitLine:         "split-line",
	JoinLine:          "join-line",
	DeleteWord:        "delete-word",
	DeleteToLineEnd:   "delete-to-line-end",
	DeleteToLineStart: "delete-to-line-start",
}

func (k IntentKind) String() string {
	if k >= 0 && int(k) < len(intentNames) {
		return intentNames[k]
	}
	return fmt.Sprintf("intent(%d)", int(k))
}

// Intent is a user-level edit applied at the cursor. Char is used by
// InsertChar and Text by InsertText.
type Intent struct {
	Kind IntentKind
	Char rune
	Text string
}

// ApplyEdit realizes in at the cursor as one undoable entry. Intents that
// cannot be realized return ErrUnapplicable and leave the buffer untouched.
func (b *Buffer) ApplyEdit(in Intent) error {
	c := b.Cursor.clamp(b.rows)
	b.Cursor = c

	var recs []Record
	switch in.Kind {
	case InsertChar:
		if in.Char == '\n' {
			recs = b.splitAt(c)
		} else {
			recs = b.insertAt(c, string(in.Char))
		}
	case InsertText:
		recs = b.insertAt(c, strings.ReplaceAll(in.Text, "\r\n", "\n"))
	case DeleteBackward:
		switch {
		case c.Col > 0:
			recs = b.deleteSpan(c, c.Col-1, c.Col, c.Col-1)
		case c.Line > 0:
			recs = b.joinAt(c, c.Line-1)
		}
	case DeleteForward:
		switch {
		case c.Col < b.lineLen(c.Line):
			recs = b.deleteSpan(c, c.Col, c.Col+1, c.Col)
		case c.Line < b.rows.LineCount()-1:
			recs = b.joinAt(c, c.Line)
		}
	case SplitLine:
		recs = b.splitAt(c)
	case JoinLine:
		if c.Line < b.rows.LineCount()-1 {
			recs = b.joinAt(c, c.Line)
		}
	case DeleteWord:
		if c.Col > 0 {
			start := b.wordLeft(c).Col
			recs = b.deleteSpan(c, start, c.Col, start)
		}
	case DeleteToLineEnd:
		switch n := b.lineLen(c.Line); {
		case c.Col < n:
			recs = b.deleteSpan(c, c.Col, n, c.Col)
		case c.Line < b.rows.LineCount()-1:
			recs = b.joinAt(c, c.Line)
		}
	case DeleteToLineStart:
		switch {
		case c.Col > 0:
			recs = b.deleteSpan(c, 0, c.Col, 0)
		case c.Line > 0:
			recs = b.joinAt(c, c.Line-1)
		}
	default:
		return fmt.Errorf("%s: %w", in.Kind, ErrUnapplicable)
	}

	if len(recs) == 0 {
		return fmt.Errorf("%s at %d:%d: %w", in.Kind, c.Line, c.Col, ErrUnapplicable)
	}
	return b.Apply(recs...)
}

func (b *Buffer) lineLen(line int) int { return b.rows.lines[line].Len() }

func (b *Buffer) insertAt(c Cursor, text string) []Record {
	if text == "" {
		return nil
	}
	return []Record{{Type: OpInsert, Pos: c, Text: text, Before: c, After: posAfterInsert(c, text)}}
}

func (b *Buffer) splitAt(c Cursor) []Record {
	return []Record{{Type: OpSplit, Pos: c, Before: c, After: Cursor{Line: c.Line + 1}}}
}

// joinAt joins line with its successor; the cursor lands on the join point.
func (b *Buffer) joinAt(c Cursor, line int) []Record {
	at := Cursor{Line: line, Col: b.lineLen(line)}
	return []Record{{Type: OpJoin, Pos: at, Before: c, After: at}}
}

// deleteSpan removes columns [from, to) of the cursor's line.
func (b *Buffer) deleteSpan(c Cursor, from, to, col int) []Record {
	if from >= to {
		return nil
	}
	text := string(b.rows.lines[c.Line].runes[from:to])
	return []Record{{
		Type:   OpDelete,
		Pos:    Cursor{Line: c.Line, Col: from},
		Text:   text,
		Before: c,
		After:  Cursor{Line: c.Line, Col: col},
	}}
}

// InsertChar inserts ch at the cursor.
func (b *Buffer) InsertChar(ch rune) error {
	return b.ApplyEdit(Intent{Kind: InsertChar, Char: ch})
}

// InsertText inserts text, which may span lines, at the cursor.
func (b *Buffer) InsertText(text string) error {
	return b.ApplyEdit(Intent{Kind: InsertText, Text: text})
}

// Backspace deletes the character before the cursor, joining lines at column 0.
func (b *Buffer) Backspace() error {
	return b.ApplyEdit(Intent{Kind: DeleteBackward})
}

// Delete deletes the character under the cursor, joining lines at line end.
func (b *Buffer) Delete() error {
	return b.ApplyEdit(Intent{Kind: DeleteForward})
}

// InsertNewline splits the line at the cursor.
func (b *Buffer) InsertNewline() error {
	return b.ApplyEdit(Intent{Kind: SplitLine})
}
