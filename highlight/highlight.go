package highlight

import (
	"kiro/buffer"

	"go.uber.org/zap"
)

// Category is the syntax class assigned to a run of characters.
type Category uint8

const (
	Plain Category = iota
	Keyword
	Statement
	Type
	Identifier
	String
	Char
	Comment
	Number
)

var categoryNames = [...]string{
	Plain:      "plain",
	Keyword:    "keyword",
	Statement:  "statement",
	Type:       "type",
	Identifier: "identifier",
	String:     "string",
	Char:       "char",
	Comment:    "comment",
	Number:     "number",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "plain"
}

// State is the lexer state carried from the end of one line to the start of
// the next.
type State uint8

const (
	StateNormal State = iota
	StateBlockComment
	StateRawString

	stateString State = 1 << 7
)

// StringState is the state of a line that ends inside a string literal
// opened by the ASCII quote q.
func StringState(q rune) State { return stateString | State(q&0x7f) }

// Quote returns the quote rune of a string state.
func (s State) Quote() (rune, bool) {
	if s&stateString == 0 {
		return 0, false
	}
	return rune(s &^ stateString), true
}

// Span is a half-open range [Start, End) of character columns in one line.
type Span struct {
	Start    int
	End      int
	Category Category
}

// Classifier assigns categories to one line given the state at its start and
// returns the spans together with the state at its end. Spans must tile the
// line in order; an empty line has no spans.
type Classifier interface {
	Classify(line []rune, start State) ([]Span, State)
}

type plainText struct{}

func (plainText) Classify(line []rune, _ State) ([]Span, State) {
	return plainSpans(line), StateNormal
}

// PlainText classifies everything as Plain and never carries state.
var PlainText Classifier = plainText{}

func plainSpans(line []rune) []Span {
	if len(line) == 0 {
		return nil
	}
	return []Span{{Start: 0, End: len(line), Category: Plain}}
}

// Source is the line content the highlighter reads.
type Source interface {
	LineCount() int
	Runes(idx int) []rune
}

// DefaultMaxCascade bounds how many lines one change may recompute eagerly.
const DefaultMaxCascade = 5000

type entry struct {
	spans []Span
	end   State
}

// Highlighter caches spans and end states for a prefix of the buffer, the
// horizon. Every cached line was computed from the correct start state, so
// a change only needs to recompute forward until the end state stops
// differing from what was cached.
type Highlighter struct {
	src        Source
	cls        Classifier
	entries    []entry
	maxCascade int
	recomputed int
	log        *zap.Logger
}

type Option func(*Highlighter)

// WithMaxCascade caps eager propagation after a change. Lines past the cap are
// dropped from the cache and recomputed when next requested.
func WithMaxCascade(n int) Option {
	return func(h *Highlighter) {
		if n > 0 {
			h.maxCascade = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(h *Highlighter) {
		if l != nil {
			h.log = l
		}
	}
}

func New(src Source, cls Classifier, opts ...Option) *Highlighter {
	if cls == nil {
		cls = PlainText
	}
	h := &Highlighter{
		src:        src,
		cls:        cls,
		maxCascade: DefaultMaxCascade,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetClassifier switches the classifier and drops every cached line.
func (h *Highlighter) SetClassifier(cls Classifier) {
	if cls == nil {
		cls = PlainText
	}
	h.cls = cls
	h.entries = nil
}

// SetMaxCascade changes the propagation cap for later changes. Values below
// one are ignored.
func (h *Highlighter) SetMaxCascade(n int) {
	if n > 0 {
		h.maxCascade = n
	}
}

// Horizon returns the number of leading lines with valid cached spans.
func (h *Highlighter) Horizon() int { return len(h.entries) }

// Recomputed returns how many line classifications have run so far.
func (h *Highlighter) Recomputed() int { return h.recomputed }

// Notify updates the cache after a row store change.
func (h *Highlighter) Notify(c buffer.Change) {
	if c.Start < 0 || c.Start >= len(h.entries) {
		return
	}
	oldEnd := c.Start + c.Removed
	if oldEnd > len(h.entries) {
		h.entries = h.entries[:c.Start]
		return
	}

	// state the first line after the change used to start in
	prevFollowing := h.startState(oldEnd)

	fresh := make([]entry, c.Inserted)
	tail := h.entries[oldEnd:]
	next := make([]entry, 0, c.Start+len(fresh)+len(tail))
	next = append(next, h.entries[:c.Start]...)
	next = append(next, fresh...)
	next = append(next, tail...)
	h.entries = next

	for i := c.Start; i < c.Start+c.Inserted; i++ {
		h.compute(i)
	}
	h.propagate(c.Start+c.Inserted, prevFollowing)
}

// propagate recomputes lines from i while their start state differs from the
// one they were last computed with.
func (h *Highlighter) propagate(i int, prevStart State) {
	steps := 0
	for i < len(h.entries) {
		if h.startState(i) == prevStart {
			return
		}
		if steps >= h.maxCascade {
			h.log.Warn("highlight propagation capped",
				zap.Int("line", i), zap.Int("cap", h.maxCascade))
			h.entries = h.entries[:i]
			return
		}
		prevStart = h.entries[i].end
		h.compute(i)
		steps++
		i++
	}
}

// startState returns the end state of line i-1, which must be cached.
func (h *Highlighter) startState(i int) State {
	if i <= 0 {
		return StateNormal
	}
	return h.entries[i-1].end
}

func (h *Highlighter) compute(i int) {
	spans, end := h.classify(h.src.Runes(i), h.startState(i))
	h.entries[i] = entry{spans: spans, end: end}
	h.recomputed++
}

// classify runs the classifier and falls back to plain output if it panics or
// returns spans that do not tile the line.
func (h *Highlighter) classify(line []rune, start State) (spans []Span, end State) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("classifier panic", zap.Any("recovered", r))
			spans, end = plainSpans(line), StateNormal
		}
	}()
	spans, end = h.cls.Classify(line, start)
	if !tiles(spans, len(line)) {
		return plainSpans(line), StateNormal
	}
	return spans, end
}

func tiles(spans []Span, n int) bool {
	col := 0
	for _, s := range spans {
		if s.Start != col || s.End <= s.Start {
			return false
		}
		col = s.End
	}
	return col == n
}

// extend computes lines up to (not including) to.
func (h *Highlighter) extend(to int) {
	for len(h.entries) < to {
		h.entries = append(h.entries, entry{})
		h.compute(len(h.entries) - 1)
	}
}

// Lines returns spans for lines [from, to), computing any line past the
// horizon first. The range is clamped to the source.
func (h *Highlighter) Lines(from, to int) [][]Span {
	n := h.src.LineCount()
	if to > n {
		to = n
	}
	if from < 0 {
		from = 0
	}
	if from >= to {
		return nil
	}
	h.extend(to)
	out := make([][]Span, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, h.entries[i].spans)
	}
	return out
}

// EndState returns the state at the end of line i.
func (h *Highlighter) EndState(i int) State {
	if i < 0 || i >= h.src.LineCount() {
		return StateNormal
	}
	h.extend(i + 1)
	return h.entries[i].end
}
