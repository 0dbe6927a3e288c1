package highlight

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"kiro/buffer"

	"github.com/kr/pretty"
)

func attach(lines []string, cls Classifier, opts ...Option) (*buffer.Rows, *Highlighter) {
	rows := buffer.NewRows(lines, 0)
	h := New(rows, cls, opts...)
	rows.OnChange(h.Notify)
	return rows, h
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func onlyCategory(spans []Span, c Category) bool {
	if len(spans) == 0 {
		return false
	}
	for _, s := range spans {
		if s.Category != c {
			return false
		}
	}
	return true
}

func TestPlainTextSingleSpan(t *testing.T) {
	_, h := attach([]string{"hello /* world", ""}, PlainText)
	got := h.Lines(0, 2)
	want := [][]Span{{{Start: 0, End: 14, Category: Plain}}, nil}
	if diff := pretty.Diff(got, want); len(diff) > 0 {
		t.Fatalf("unexpected spans: %v", diff)
	}
	if h.EndState(0) != StateNormal {
		t.Fatalf("plain text must not carry state")
	}
}

func TestEditWithoutMultilineConstructRecomputesOneLine(t *testing.T) {
	rows, h := attach(repeat("x := 1 // note", 100), NewLexer(goSyntax))
	h.Lines(0, 100)

	before := h.Recomputed()
	if _, err := rows.Insert(50, 0, "y"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := h.Recomputed() - before; got != 1 {
		t.Fatalf("expected 1 recomputed line, got %d", got)
	}
	if h.Horizon() != 100 {
		t.Fatalf("expected horizon 100, got %d", h.Horizon())
	}
}

func TestOpeningBlockCommentRecomputesThroughClose(t *testing.T) {
	lines := repeat("code", 10)
	lines[6] = "end */ z"
	rows, h := attach(lines, NewLexer(goSyntax))
	h.Lines(0, 10)

	before := h.Recomputed()
	if _, err := rows.Insert(2, 0, "/* "); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// line 2 itself, then 3..6 whose start state changed
	if got := h.Recomputed() - before; got != 5 {
		t.Fatalf("expected 5 recomputed lines, got %d", got)
	}

	spans := h.Lines(0, 10)
	for i := 3; i <= 5; i++ {
		if !onlyCategory(spans[i], Comment) {
			t.Fatalf("expected line %d to be comment, got %v", i, spans[i])
		}
	}
	if onlyCategory(spans[7], Comment) {
		t.Fatalf("expected line 7 outside the comment, got %v", spans[7])
	}

	// closing the edit again restores the original classification
	before = h.Recomputed()
	if _, err := rows.DeleteRange(buffer.Cursor{Line: 2}, buffer.Cursor{Line: 2, Col: 3}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := h.Recomputed() - before; got != 5 {
		t.Fatalf("expected 5 recomputed lines, got %d", got)
	}
	if cat := h.Lines(3, 4)[0][0].Category; cat != Identifier {
		t.Fatalf("expected identifier, got %v", cat)
	}
}

func TestEditBeyondHorizonIsFree(t *testing.T) {
	rows, h := attach(repeat("code", 100), NewLexer(goSyntax))
	h.Lines(0, 10)

	before := h.Recomputed()
	if _, err := rows.Insert(50, 0, "/*"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := h.Recomputed() - before; got != 0 {
		t.Fatalf("expected no recomputation, got %d", got)
	}
	if h.Horizon() != 10 {
		t.Fatalf("expected horizon 10, got %d", h.Horizon())
	}
	if !onlyCategory(h.Lines(60, 61)[0], Comment) {
		t.Fatalf("expected line 60 inside the comment")
	}
}

func TestPropagationCapPullsHorizonBack(t *testing.T) {
	rows, h := attach(repeat("code", 20), NewLexer(goSyntax), WithMaxCascade(3))
	h.Lines(0, 20)

	if _, err := rows.Insert(0, 0, "/*"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if h.Horizon() != 4 {
		t.Fatalf("expected horizon 4, got %d", h.Horizon())
	}
	spans := h.Lines(0, 20)
	if !onlyCategory(spans[19], Comment) {
		t.Fatalf("expected lazily recomputed line to be comment, got %v", spans[19])
	}
}

func TestSplitAndJoinKeepCacheAligned(t *testing.T) {
	rows, h := attach([]string{"a /* b */ c", "d"}, NewLexer(goSyntax))
	h.Lines(0, 2)

	if err := rows.SplitLine(0, 5); err != nil {
		t.Fatalf("split: %v", err)
	}
	got := h.Lines(0, 3)
	want := [][]Span{
		{{0, 1, Identifier}, {1, 2, Plain}, {2, 5, Comment}},
		{{0, 4, Comment}, {4, 5, Plain}, {5, 6, Identifier}},
		{{0, 1, Identifier}},
	}
	if diff := pretty.Diff(got, want); len(diff) > 0 {
		t.Fatalf("unexpected spans after split: %v", diff)
	}

	if _, err := rows.JoinLine(0); err != nil {
		t.Fatalf("join: %v", err)
	}
	if h.Horizon() != 2 {
		t.Fatalf("expected horizon 2, got %d", h.Horizon())
	}
	if h.EndState(0) != StateNormal {
		t.Fatalf("expected normal state after join")
	}
}

// Incremental results must match a fresh highlight of the same content after
// any sequence of edits.
func TestIncrementalMatchesFresh(t *testing.T) {
	for _, syn := range []*Syntax{goSyntax, rustSyntax} {
		t.Run(syn.Name, func(t *testing.T) {
			checkIncremental(t, NewLexer(syn))
		})
	}
}

func checkIncremental(t *testing.T, lx *Lexer) {
	pieces := []string{"/*", "*/", "`", "x", " ", "\n", "\"", "//", "1", "\\"}
	rows, h := attach([]string{"package main", "", "func f() {}"}, lx)
	rng := rand.New(rand.NewSource(1))

	for step := 0; step < 300; step++ {
		h.Lines(0, rng.Intn(rows.LineCount())+1)

		line := rng.Intn(rows.LineCount())
		n := len(rows.Runes(line))
		col := rng.Intn(n + 1)
		if rng.Intn(3) == 0 && n > 0 {
			from := rng.Intn(n)
			if _, err := rows.DeleteRange(buffer.Cursor{Line: line, Col: from}, buffer.Cursor{Line: line, Col: n}); err != nil {
				t.Fatalf("step %d: delete: %v", step, err)
			}
		} else if rng.Intn(5) == 0 && line+1 < rows.LineCount() {
			if _, err := rows.JoinLine(line); err != nil {
				t.Fatalf("step %d: join: %v", step, err)
			}
		} else {
			if _, err := rows.Insert(line, col, pieces[rng.Intn(len(pieces))]); err != nil {
				t.Fatalf("step %d: insert: %v", step, err)
			}
		}

		fresh := New(rows, lx)
		want := fresh.Lines(0, rows.LineCount())
		got := h.Lines(0, rows.LineCount())
		if diff := pretty.Diff(got, want); len(diff) > 0 {
			t.Fatalf("step %d: incremental differs from fresh:\n%s\n%v",
				step, strings.Join(rows.Strings(), "\n"), diff)
		}
	}
}

func TestStringAcrossLinesPropagates(t *testing.T) {
	rows, h := attach([]string{`let s = "`, "a", "b", `";`, "let x = 1;"}, NewLexer(rustSyntax))
	got := h.Lines(0, 5)
	if !onlyCategory(got[1], String) || !onlyCategory(got[2], String) {
		t.Fatalf("expected continued string, got %v", got)
	}
	if categoryAt(got[4], 0) != Keyword {
		t.Fatalf("expected keyword after closed string, got %v", got[4])
	}

	if _, err := rows.DeleteRange(buffer.Cursor{Line: 0, Col: 8}, buffer.Cursor{Line: 0, Col: 9}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got = h.Lines(0, 5)
	if categoryAt(got[1], 0) != Identifier {
		t.Fatalf("expected identifier once the quote is gone, got %v", got[1])
	}
	if !onlyCategory(got[4], String) {
		t.Fatalf("expected the stray quote to open a string, got %v", got[4])
	}
}

type brokenClassifier struct{}

func (brokenClassifier) Classify(line []rune, _ State) ([]Span, State) {
	return []Span{{Start: 1, End: 2, Category: Keyword}}, StateBlockComment
}

type panickyClassifier struct{}

func (panickyClassifier) Classify([]rune, State) ([]Span, State) {
	panic("boom")
}

func TestClassifierFailureDegradesToPlain(t *testing.T) {
	for _, cls := range []Classifier{brokenClassifier{}, panickyClassifier{}} {
		_, h := attach([]string{"abc"}, cls)
		got := h.Lines(0, 1)
		want := [][]Span{{{Start: 0, End: 3, Category: Plain}}}
		if diff := pretty.Diff(got, want); len(diff) > 0 {
			t.Fatalf("%T: unexpected spans: %v", cls, diff)
		}
	}
}

func TestLinesClampsRange(t *testing.T) {
	_, h := attach([]string{"a", "b"}, PlainText)
	if got := h.Lines(-3, 10); len(got) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(got))
	}
	if got := h.Lines(5, 10); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestSetClassifierResetsCache(t *testing.T) {
	_, h := attach([]string{"/* x"}, PlainText)
	h.Lines(0, 1)
	h.SetClassifier(NewLexer(cSyntax))
	if h.Horizon() != 0 {
		t.Fatalf("expected empty cache, got horizon %d", h.Horizon())
	}
	if h.EndState(0) != StateBlockComment {
		t.Fatalf("expected block comment state")
	}
}

func BenchmarkIncrementalEdit(b *testing.B) {
	lines := make([]string, 2000)
	for i := range lines {
		lines[i] = fmt.Sprintf("x%d := \"v\" + 0x%x // line %d", i, i, i)
	}
	rows, h := attach(lines, NewLexer(goSyntax))
	h.Lines(0, len(lines))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := rows.Insert(i%len(lines), 0, "y"); err != nil {
			b.Fatal(err)
		}
	}
}
