package highlight

import (
	"strings"
	"unicode"
)

// Lexer is a table-driven Classifier. Block comments, raw strings and, for
// some languages, ordinary strings carry state past the end of a line.
type Lexer struct {
	syn   *Syntax
	words map[string]Category

	lineComment []rune
	blockStart  []rune
	blockEnd    []rune
}

func NewLexer(s *Syntax) *Lexer {
	lx := &Lexer{
		syn:         s,
		words:       make(map[string]Category, len(s.Keywords)+len(s.Statements)+len(s.Types)),
		lineComment: []rune(s.LineComment),
		blockStart:  []rune(s.BlockStart),
		blockEnd:    []rune(s.BlockEnd),
	}
	// later tables win on duplicates, so a builtin type listed as a keyword
	// is still shown as a type
	for _, w := range s.Keywords {
		lx.words[w] = Keyword
	}
	for _, w := range s.Statements {
		lx.words[w] = Statement
	}
	for _, w := range s.Types {
		lx.words[w] = Type
	}
	return lx
}

// Syntax returns the table the lexer was built from.
func (lx *Lexer) Syntax() *Syntax { return lx.syn }

func (lx *Lexer) Classify(line []rune, start State) ([]Span, State) {
	n := len(line)
	cats := make([]Category, n)
	state := start
	if _, ok := state.Quote(); ok && !lx.syn.MultilineStrings ||
		state == StateBlockComment && len(lx.blockEnd) == 0 ||
		state == StateRawString && lx.syn.RawQuote == 0 {
		state = StateNormal
	}

	i := 0
	for i < n {
		if q, ok := state.Quote(); ok {
			end, closed := scanString(line, i, q)
			fill(cats, i, end, String)
			i = end
			if closed {
				state = StateNormal
			}
			continue
		}
		switch state {
		case StateBlockComment:
			j := indexAt(line, i, lx.blockEnd)
			if j < 0 {
				fill(cats, i, n, Comment)
				i = n
				continue
			}
			end := j + len(lx.blockEnd)
			fill(cats, i, end, Comment)
			i = end
			state = StateNormal
			continue
		case StateRawString:
			j := indexRuneAt(line, i, lx.syn.RawQuote)
			if j < 0 {
				fill(cats, i, n, String)
				i = n
				continue
			}
			fill(cats, i, j+1, String)
			i = j + 1
			state = StateNormal
			continue
		}

		c := line[i]
		switch {
		case hasPrefixAt(line, i, lx.blockStart):
			end := i + len(lx.blockStart)
			fill(cats, i, end, Comment)
			i = end
			state = StateBlockComment
		case hasPrefixAt(line, i, lx.lineComment):
			fill(cats, i, n, Comment)
			i = n
		case lx.syn.RawQuote != 0 && c == lx.syn.RawQuote:
			cats[i] = String
			i++
			state = StateRawString
		case lx.syn.Char && c == '\'' && charLen(line, i) > 0:
			end := i + charLen(line, i)
			fill(cats, i, end, Char)
			i = end
		case strings.ContainsRune(lx.syn.Quotes, c):
			end, closed := scanString(line, i+1, c)
			fill(cats, i, end, String)
			i = end
			if !closed && lx.syn.MultilineStrings {
				state = StringState(c)
			}
		case lx.syn.Number && isDigit(c):
			end := lx.scanNumber(line, i)
			fill(cats, i, end, Number)
			i = end
		case isWordStart(c):
			end := i + 1
			for end < n && isWordRune(line[end]) {
				end++
			}
			cat, ok := lx.words[string(line[i:end])]
			if !ok {
				cat = Identifier
			}
			fill(cats, i, end, cat)
			i = end
		default:
			i++
		}
	}
	return mergeSpans(cats), state
}

func (lx *Lexer) scanNumber(line []rune, i int) int {
	n := len(line)
	if line[i] == '0' && i+2 < n {
		switch p := unicode.ToLower(line[i+1]); {
		case p == 'x' && lx.syn.HexNumber && isHexDigit(line[i+2]):
			j := i + 2
			for j < n && (isHexDigit(line[j]) || line[j] == '_') {
				j++
			}
			return j
		case p == 'b' && lx.syn.BinNumber && (line[i+2] == '0' || line[i+2] == '1'):
			j := i + 2
			for j < n && (line[j] == '0' || line[j] == '1' || line[j] == '_') {
				j++
			}
			return j
		}
	}
	j := i
	for j < n && (isDigit(line[j]) || line[j] == '.' || line[j] == '_') {
		j++
	}
	return j
}

// charLen returns the length of a character literal at i, or 0.
func charLen(line []rune, i int) int {
	n := len(line)
	if i+3 < n && line[i+1] == '\\' && line[i+3] == '\'' {
		return 4
	}
	if i+2 < n && line[i+1] != '\'' && line[i+2] == '\'' {
		return 3
	}
	return 0
}

// scanString scans string contents from i up to and including the closing
// quote q. An unterminated string runs to the end of the line.
func scanString(line []rune, i int, q rune) (end int, closed bool) {
	for j := i; j < len(line); j++ {
		switch line[j] {
		case '\\':
			j++
		case q:
			return j + 1, true
		}
	}
	return len(line), false
}

func hasPrefixAt(line []rune, i int, prefix []rune) bool {
	if len(prefix) == 0 || i+len(prefix) > len(line) {
		return false
	}
	for k, r := range prefix {
		if line[i+k] != r {
			return false
		}
	}
	return true
}

func indexAt(line []rune, i int, sub []rune) int {
	for ; i+len(sub) <= len(line); i++ {
		if hasPrefixAt(line, i, sub) {
			return i
		}
	}
	return -1
}

func indexRuneAt(line []rune, i int, r rune) int {
	for ; i < len(line); i++ {
		if line[i] == r {
			return i
		}
	}
	return -1
}

func fill(cats []Category, from, to int, c Category) {
	if to > len(cats) {
		to = len(cats)
	}
	for i := from; i < to; i++ {
		cats[i] = c
	}
}

func mergeSpans(cats []Category) []Span {
	var spans []Span
	for i, c := range cats {
		if len(spans) > 0 && spans[len(spans)-1].Category == c {
			spans[len(spans)-1].End = i + 1
			continue
		}
		spans = append(spans, Span{Start: i, End: i + 1, Category: c})
	}
	return spans
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isWordStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isWordRune(r rune) bool { return isWordStart(r) || unicode.IsDigit(r) }
