package buffer

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kr/pretty"
)

func TestRowsInsertSingleLine(t *testing.T) {
	r := NewRows([]string{"abc"}, 4)
	pos, err := r.Insert(0, 1, "X")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if got := r.Strings(); !reflect.DeepEqual(got, []string{"aXbc"}) {
		t.Fatalf("expected [aXbc], got %q", got)
	}
	if pos != (Cursor{Line: 0, Col: 2}) {
		t.Fatalf("expected end position 0:2, got %+v", pos)
	}
}

func TestRowsInsertMultiLine(t *testing.T) {
	r := NewRows([]string{"head tail", "next"}, 4)
	var changes []Change
	r.OnChange(func(c Change) { changes = append(changes, c) })

	pos, err := r.Insert(0, 5, "one\ntwo\nthree ")
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	want := []string{"head one", "two", "three tail", "next"}
	if got := r.Strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("content mismatch: %v", pretty.Diff(got, want))
	}
	if pos != (Cursor{Line: 2, Col: 6}) {
		t.Fatalf("expected end position 2:6, got %+v", pos)
	}
	if len(changes) != 1 || changes[0] != (Change{Start: 0, Removed: 1, Inserted: 3}) {
		t.Fatalf("unexpected changes: %+v", changes)
	}
}

func TestRowsCharacterOffsets(t *testing.T) {
	r := NewRows([]string{"héllo wörld"}, 4)
	if _, err := r.Insert(0, 2, "ß"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if got := r.Strings()[0]; got != "héßllo wörld" {
		t.Fatalf("expected héßllo wörld, got %q", got)
	}
	removed, err := r.DeleteRange(Cursor{Line: 0, Col: 7}, Cursor{Line: 0, Col: 12})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if removed != "wörld" {
		t.Fatalf("expected wörld removed, got %q", removed)
	}
}

func TestRowsDeleteRangeAcrossLines(t *testing.T) {
	r := NewRows([]string{"alpha", "beta", "gamma", "delta"}, 4)
	var changes []Change
	r.OnChange(func(c Change) { changes = append(changes, c) })

	removed, err := r.DeleteRange(Cursor{Line: 0, Col: 2}, Cursor{Line: 2, Col: 3})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if removed != "pha\nbeta\ngam" {
		t.Fatalf("unexpected removed text %q", removed)
	}
	want := []string{"alma", "delta"}
	if got := r.Strings(); !reflect.DeepEqual(got, want) {
		t.Fatalf("content mismatch: %v", pretty.Diff(got, want))
	}
	if len(changes) != 1 || changes[0] != (Change{Start: 0, Removed: 3, Inserted: 1}) {
		t.Fatalf("unexpected changes: %+v", changes)
	}
}

func TestRowsSplitAndJoin(t *testing.T) {
	r := NewRows([]string{"foobar"}, 4)
	if err := r.SplitLine(0, 3); err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if got := r.Strings(); !reflect.DeepEqual(got, []string{"foo", "bar"}) {
		t.Fatalf("expected [foo bar], got %q", got)
	}
	col, err := r.JoinLine(0)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}
	if col != 3 {
		t.Fatalf("expected join column 3, got %d", col)
	}
	if got := r.Strings(); !reflect.DeepEqual(got, []string{"foobar"}) {
		t.Fatalf("expected [foobar], got %q", got)
	}
}

func TestRowsOutOfBounds(t *testing.T) {
	r := NewRows([]string{"abc", "de"}, 4)
	var notified bool
	r.OnChange(func(Change) { notified = true })

	if _, err := r.Insert(0, 4, "x"); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds for column past end, got %v", err)
	}
	if _, err := r.Insert(2, 0, "x"); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds for line past end, got %v", err)
	}
	if _, err := r.DeleteRange(Cursor{Line: 0, Col: 0}, Cursor{Line: 1, Col: 3}); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds for delete end, got %v", err)
	}
	if err := r.SplitLine(-1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds for negative line, got %v", err)
	}
	if _, err := r.JoinLine(1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds joining last line, got %v", err)
	}
	if _, err := r.Line(5); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds for Line(5), got %v", err)
	}
	if notified {
		t.Fatalf("failed operations must not emit changes")
	}
	if got := r.Strings(); !reflect.DeepEqual(got, []string{"abc", "de"}) {
		t.Fatalf("buffer changed by failed operations: %q", got)
	}
}

func TestNewRowsNeverEmpty(t *testing.T) {
	r := NewRows(nil, 0)
	if r.LineCount() != 1 {
		t.Fatalf("expected one line, got %d", r.LineCount())
	}
	if r.TabSize() != DefaultTabSize {
		t.Fatalf("expected default tab size, got %d", r.TabSize())
	}
}

func TestLineRenderWidth(t *testing.T) {
	r := NewRows([]string{"a\tb", "日本", "x\x01"}, 4)
	cases := []struct {
		line  int
		width int
	}{
		{0, 5},
		{1, 4},
		{2, 3},
	}
	for _, tc := range cases {
		l, err := r.Line(tc.line)
		if err != nil {
			t.Fatalf("line %d: %v", tc.line, err)
		}
		if l.Width() != tc.width {
			t.Fatalf("line %d: expected width %d, got %d", tc.line, tc.width, l.Width())
		}
	}
	line := []rune("a\tb")
	if got := RenderCol(line, 2, 4); got != 4 {
		t.Fatalf("expected render col 4, got %d", got)
	}
	if got := CharCol(line, 2, 4); got != 1 {
		t.Fatalf("expected char col 1 inside tab, got %d", got)
	}
}
