package highlight

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Chroma classifies one line at a time with a chroma lexer. Chroma lexers
// keep their state inside a single Tokenise call, so this classifier never
// carries state across lines; multi-line constructs are seen per line.
type Chroma struct {
	lexer chroma.Lexer
}

func NewChroma(l chroma.Lexer) *Chroma {
	if l == nil {
		l = lexers.Fallback
	}
	return &Chroma{lexer: chroma.Coalesce(l)}
}

// Name returns the chroma lexer name.
func (c *Chroma) Name() string {
	if cfg := c.lexer.Config(); cfg != nil {
		return cfg.Name
	}
	return ""
}

// Name returns a language name for cls, or "plain".
func Name(cls Classifier) string {
	switch c := cls.(type) {
	case *Lexer:
		return c.Syntax().Name
	case *Chroma:
		if n := c.Name(); n != "" {
			return n
		}
	}
	return "plain"
}

func (c *Chroma) Classify(line []rune, _ State) ([]Span, State) {
	if len(line) == 0 {
		return nil, StateNormal
	}
	// EnsureLF would turn a lone \r into a newline and shift later spans
	iter, err := c.lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, string(line))
	if err != nil {
		return plainSpans(line), StateNormal
	}

	var spans []Span
	col := 0
	for _, tok := range iter.Tokens() {
		n := utf8.RuneCountInString(strings.ReplaceAll(tok.Value, "\n", ""))
		if n == 0 {
			continue
		}
		if col+n > len(line) {
			n = len(line) - col
		}
		if n <= 0 {
			break
		}
		spans = appendSpan(spans, Span{Start: col, End: col + n, Category: categoryOf(tok.Type)})
		col += n
	}
	if col < len(line) {
		spans = appendSpan(spans, Span{Start: col, End: len(line), Category: Plain})
	}
	return spans, StateNormal
}

func appendSpan(spans []Span, s Span) []Span {
	if len(spans) > 0 && spans[len(spans)-1].Category == s.Category {
		spans[len(spans)-1].End = s.End
		return spans
	}
	return append(spans, s)
}

func categoryOf(t chroma.TokenType) Category {
	switch {
	case t == chroma.KeywordType || t == chroma.NameBuiltin || t == chroma.NameBuiltinPseudo:
		return Type
	case t.InCategory(chroma.Keyword):
		return Keyword
	case t == chroma.LiteralStringChar:
		return Char
	case t.InSubCategory(chroma.LiteralString):
		return String
	case t.InSubCategory(chroma.LiteralNumber):
		return Number
	case t.InCategory(chroma.Comment):
		return Comment
	case t.InCategory(chroma.Name):
		return Identifier
	default:
		return Plain
	}
}

// ForFile picks a classifier for filename: a builtin syntax by extension,
// else a chroma lexer matched on the file name, else PlainText.
func ForFile(filename string) Classifier {
	if s := SyntaxForFile(filename); s != nil {
		return NewLexer(s)
	}
	if l := lexers.Match(filepath.Base(filename)); l != nil {
		return NewChroma(l)
	}
	return PlainText
}

// ForLanguage picks a classifier by language name, trying the builtin
// syntaxes before chroma.
func ForLanguage(name string) Classifier {
	if s := SyntaxByName(name); s != nil {
		return NewLexer(s)
	}
	if l := lexers.Get(name); l != nil {
		return NewChroma(l)
	}
	return PlainText
}

// DetectLanguage returns the language name used for filename, or "" for
// plain text.
func DetectLanguage(filename string) string {
	if s := SyntaxForFile(filename); s != nil {
		return s.Name
	}
	lexer := lexers.Match(filepath.Base(filename))
	if lexer == nil {
		return ""
	}
	config := lexer.Config()
	if config == nil {
		return ""
	}
	return config.Name
}
