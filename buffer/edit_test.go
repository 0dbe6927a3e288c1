package buffer

import (
	"errors"
	"reflect"
	"testing"
)

func TestDeleteBackwardAtBufferStartIsUnapplicable(t *testing.T) {
	b := NewBuffer([]string{"abc"}, Options{})
	err := b.Backspace()
	if !errors.Is(err, ErrUnapplicable) {
		t.Fatalf("expected ErrUnapplicable, got %v", err)
	}
	if b.IsModified() || b.Undo.Len() != 0 {
		t.Fatalf("unapplicable edit must not be logged")
	}
}

func TestDeleteForwardAtBufferEndIsUnapplicable(t *testing.T) {
	b := NewBuffer([]string{"ab", "cd"}, Options{})
	b.Move(MoveBufferEnd)
	if err := b.Delete(); !errors.Is(err, ErrUnapplicable) {
		t.Fatalf("expected ErrUnapplicable, got %v", err)
	}
}

func TestBackspaceJoinsLines(t *testing.T) {
	b := NewBuffer([]string{"foo", "bar"}, Options{})
	b.SetCursor(Cursor{Line: 1, Col: 0})
	if err := b.Backspace(); err != nil {
		t.Fatalf("backspace failed: %v", err)
	}
	if got := b.Lines(); !reflect.DeepEqual(got, []string{"foobar"}) {
		t.Fatalf("expected [foobar], got %q", got)
	}
	if b.Cursor != (Cursor{Line: 0, Col: 3}) {
		t.Fatalf("expected cursor at join point 0:3, got %+v", b.Cursor)
	}
	if err := b.ApplyUndo(); err != nil {
		t.Fatalf("undo failed: %v", err)
	}
	if got := b.Lines(); !reflect.DeepEqual(got, []string{"foo", "bar"}) {
		t.Fatalf("expected [foo bar] after undo, got %q", got)
	}
	if b.Cursor != (Cursor{Line: 1, Col: 0}) {
		t.Fatalf("expected cursor restored to 1:0, got %+v", b.Cursor)
	}
}

func TestDeleteForwardJoinsNextLine(t *testing.T) {
	b := NewBuffer([]string{"foo", "bar"}, Options{})
	b.SetCursor(Cursor{Line: 0, Col: 3})
	if err := b.Delete(); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := b.Lines(); !reflect.DeepEqual(got, []string{"foobar"}) {
		t.Fatalf("expected [foobar], got %q", got)
	}
}

func TestInsertNewlineAsChar(t *testing.T) {
	b := NewBuffer([]string{"ab"}, Options{})
	b.SetCursor(Cursor{Line: 0, Col: 1})
	if err := b.InsertChar('\n'); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if got := b.Lines(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %q", got)
	}
	if b.Cursor != (Cursor{Line: 1, Col: 0}) {
		t.Fatalf("expected cursor 1:0, got %+v", b.Cursor)
	}
}

func TestLineDeletionIntents(t *testing.T) {
	cases := []struct {
		name   string
		kind   IntentKind
		cursor Cursor
		want   []string
		after  Cursor
	}{
		{"word", DeleteWord, Cursor{Line: 0, Col: 7}, []string{"foo  baz", "next"}, Cursor{Line: 0, Col: 4}},
		{"word after spaces", DeleteWord, Cursor{Line: 0, Col: 8}, []string{"foo baz", "next"}, Cursor{Line: 0, Col: 4}},
		{"to end", DeleteToLineEnd, Cursor{Line: 0, Col: 3}, []string{"foo", "next"}, Cursor{Line: 0, Col: 3}},
		{"to end joins", DeleteToLineEnd, Cursor{Line: 0, Col: 11}, []string{"foo bar baznext"}, Cursor{Line: 0, Col: 11}},
		{"to start", DeleteToLineStart, Cursor{Line: 0, Col: 4}, []string{"bar baz", "next"}, Cursor{Line: 0, Col: 0}},
		{"to start joins", DeleteToLineStart, Cursor{Line: 1, Col: 0}, []string{"foo bar baznext"}, Cursor{Line: 0, Col: 11}},
		{"join", JoinLine, Cursor{Line: 0, Col: 1}, []string{"foo bar baznext"}, Cursor{Line: 0, Col: 11}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBuffer([]string{"foo bar baz", "next"}, Options{})
			b.SetCursor(tc.cursor)
			if err := b.ApplyEdit(Intent{Kind: tc.kind}); err != nil {
				t.Fatalf("%s failed: %v", tc.kind, err)
			}
			if got := b.Lines(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
			if b.Cursor != tc.after {
				t.Fatalf("expected cursor %+v, got %+v", tc.after, b.Cursor)
			}
			if err := b.ApplyUndo(); err != nil {
				t.Fatalf("undo failed: %v", err)
			}
			if got := b.Lines(); !reflect.DeepEqual(got, []string{"foo bar baz", "next"}) {
				t.Fatalf("expected original after undo, got %q", got)
			}
		})
	}
}

func TestMoveClampsCursor(t *testing.T) {
	b := NewBuffer([]string{"long line", "ab"}, Options{})
	b.SetCursor(Cursor{Line: 0, Col: 9})
	b.Move(MoveDown)
	if b.Cursor != (Cursor{Line: 1, Col: 2}) {
		t.Fatalf("expected clamp to 1:2, got %+v", b.Cursor)
	}
	b.Move(MoveDown)
	if b.Cursor != (Cursor{Line: 1, Col: 2}) {
		t.Fatalf("expected cursor to stay on last line, got %+v", b.Cursor)
	}
	b.Move(MoveRight)
	if b.Cursor != (Cursor{Line: 1, Col: 2}) {
		t.Fatalf("expected cursor to stay at buffer end, got %+v", b.Cursor)
	}
	b.Move(MoveLineStart)
	b.Move(MoveLeft)
	if b.Cursor != (Cursor{Line: 0, Col: 9}) {
		t.Fatalf("expected wrap to end of previous line, got %+v", b.Cursor)
	}
	b.Move(MoveWordLeft)
	if b.Cursor != (Cursor{Line: 0, Col: 5}) {
		t.Fatalf("expected word start 0:5, got %+v", b.Cursor)
	}
	b.SetCursor(Cursor{Line: -3, Col: 100})
	if b.Cursor != (Cursor{Line: 0, Col: 9}) {
		t.Fatalf("expected SetCursor to clamp, got %+v", b.Cursor)
	}
}

func TestMoveParagraph(t *testing.T) {
	b := NewBuffer([]string{"a", "b", "", "c", "d", "", "", "e"}, Options{})
	tests := []struct {
		m    Motion
		want int
	}{
		{MoveParagraphDown, 3},
		{MoveParagraphDown, 7},
		{MoveParagraphDown, 7},
		{MoveParagraphUp, 3},
		{MoveParagraphUp, 0},
		{MoveParagraphUp, 0},
	}
	for i, tt := range tests {
		b.Move(tt.m)
		if b.Cursor.Line != tt.want {
			t.Fatalf("step %d: expected line %d, got %d", i, tt.want, b.Cursor.Line)
		}
	}
}

func TestMovePage(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "0123456789"
	}
	b := NewBuffer(lines, Options{})
	b.SetCursor(Cursor{Line: 3, Col: 4})

	b.MovePage(MovePageDown, 0, 10)
	if b.Cursor != (Cursor{Line: 19, Col: 4}) {
		t.Fatalf("expected 19:4, got %+v", b.Cursor)
	}
	b.MovePage(MovePageUp, 10, 10)
	if b.Cursor != (Cursor{Line: 0, Col: 4}) {
		t.Fatalf("expected 0:4, got %+v", b.Cursor)
	}
	b.MovePage(MovePageUp, 45, 10)
	if b.Cursor.Line != 35 {
		t.Fatalf("expected line 35, got %d", b.Cursor.Line)
	}
	b.MovePage(MovePageDown, 90, 10)
	if b.Cursor.Line != 99 {
		t.Fatalf("expected last line, got %d", b.Cursor.Line)
	}

	before := b.Cursor
	b.Move(MovePageDown)
	if b.Cursor != before {
		t.Fatalf("Move must ignore page motions, got %+v", b.Cursor)
	}
}
