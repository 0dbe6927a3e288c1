package highlight

import (
	"path/filepath"
	"strings"
)

// Syntax describes how Lexer classifies one language.
type Syntax struct {
	Name       string
	Extensions []string

	Quotes    string // string delimiters
	RawQuote  rune   // multi-line string delimiter, 0 if none
	// MultilineStrings lets an unterminated Quotes literal continue on the
	// next line.
	MultilineStrings bool
	Char      bool   // 'x' and '\x' literals
	Number    bool
	HexNumber bool
	BinNumber bool

	LineComment string
	BlockStart  string
	BlockEnd    string

	Keywords   []string
	Statements []string
	Types      []string
}

var cSyntax = &Syntax{
	Name:        "c",
	Extensions:  []string{".c", ".h"},
	Quotes:      `"`,
	Char:        true,
	Number:      true,
	HexNumber:   true,
	LineComment: "//",
	BlockStart:  "/*",
	BlockEnd:    "*/",
	Keywords: []string{
		"auto", "const", "enum", "extern", "inline", "register", "restrict", "sizeof", "static",
		"struct", "typedef", "union", "volatile",
	},
	Statements: []string{
		"break", "case", "continue", "default", "do", "else", "for", "goto", "if", "return",
		"switch", "while",
	},
	Types: []string{
		"char", "double", "float", "int", "long", "short", "signed", "unsigned", "void",
	},
}

var rustSyntax = &Syntax{
	Name:             "rust",
	Extensions:       []string{".rs"},
	Quotes:           `"`,
	MultilineStrings: true,
	Char:        true,
	Number:      true,
	HexNumber:   true,
	BinNumber:   true,
	LineComment: "//",
	BlockStart:  "/*",
	BlockEnd:    "*/",
	Keywords: []string{
		"as", "const", "crate", "dyn", "enum", "extern", "false", "fn", "impl", "let", "mod",
		"move", "mut", "pub", "ref", "Self", "self", "static", "struct", "super", "trait", "true",
		"type", "unsafe", "use", "where",
	},
	Statements: []string{
		"break", "continue", "else", "for", "if", "in", "loop", "match", "return", "while",
	},
	Types: []string{
		"i8", "i16", "i32", "i64", "i128", "isize", "u8", "u16", "u32", "u64", "u128", "usize",
		"f32", "f64", "bool", "char",
	},
}

var javascriptSyntax = &Syntax{
	Name:        "javascript",
	Extensions:  []string{".js", ".mjs"},
	Quotes:      `"'`,
	RawQuote:    '`',
	Number:      true,
	HexNumber:   true,
	LineComment: "//",
	BlockStart:  "/*",
	BlockEnd:    "*/",
	Keywords: []string{
		"class", "const", "debugger", "delete", "export", "extends", "function", "import", "in",
		"instanceof", "let", "new", "super", "this", "typeof", "var", "void", "with", "yield",
	},
	Statements: []string{
		"break", "case", "catch", "continue", "default", "do", "else", "finally", "for", "if",
		"return", "switch", "throw", "try", "while",
	},
	Types: []string{
		"Object", "Function", "Boolean", "Symbol", "Error", "Number", "BigInt", "Math", "Date",
		"String", "RegExp", "Array", "Int8Array", "Int16Array", "Int32Array", "BigInt64Array",
		"Uint8Array", "Uint16Array", "Uint32Array", "BigUint64Array", "Float32Array",
		"Float64Array", "ArrayBuffer", "SharedArrayBuffer", "Atomics", "DataView", "JSON",
		"Promise", "Generator", "GeneratorFunction", "AsyncFunction", "Reflect", "Proxy", "Intl",
		"WebAssembly",
	},
}

var goSyntax = &Syntax{
	Name:        "go",
	Extensions:  []string{".go"},
	Quotes:      `"`,
	RawQuote:    '`',
	Char:        true,
	Number:      true,
	HexNumber:   true,
	BinNumber:   true,
	LineComment: "//",
	BlockStart:  "/*",
	BlockEnd:    "*/",
	Keywords: []string{
		"chan", "const", "defer", "func", "go", "import", "interface", "map", "package", "range",
		"struct", "type", "var",
	},
	Statements: []string{
		"break", "case", "continue", "default", "else", "fallthrough", "for", "goto", "if",
		"return", "select", "switch",
	},
	Types: []string{
		"any", "bool", "byte", "complex128", "complex64", "error", "float32", "float64", "int",
		"int16", "int32", "int64", "int8", "rune", "string", "uint", "uint16", "uint32", "uint64",
		"uint8", "uintptr",
	},
}

var cppSyntax = &Syntax{
	Name:        "cpp",
	Extensions:  []string{".cpp", ".hpp", ".cxx", ".hxx", ".cc", ".hh"},
	Quotes:      `"`,
	Char:        true,
	Number:      true,
	HexNumber:   true,
	BinNumber:   true,
	LineComment: "//",
	BlockStart:  "/*",
	BlockEnd:    "*/",
	Keywords: []string{
		"alignas", "alignof", "and", "and_eq", "asm", "auto", "bitand", "bitor", "bool", "class",
		"compl", "concept", "const", "consteval", "constexpr", "const_cast", "co_await",
		"co_return", "co_yield", "decltype", "delete", "dynamic_cast", "enum", "explicit",
		"export", "extern", "false", "friend", "inline", "mutable", "namespace", "new",
		"noexcept", "not", "not_eq", "nullptr", "operator", "or", "or_eq", "private", "protected",
		"public", "register", "reinterpret_cast", "requires", "sizeof", "static",
		"static_assert", "static_cast", "struct", "template", "this", "thread_local", "true",
		"typedef", "typeid", "typename", "union", "using", "virtual", "volatile", "xor", "xor_eq",
		"override", "final", "import", "module",
	},
	Statements: []string{
		"break", "case", "catch", "continue", "default", "do", "else", "for", "goto", "if",
		"return", "switch", "throw", "try", "while",
	},
	Types: []string{
		"char", "char8_t", "char16_t", "char32_t", "double", "float", "int", "long", "short",
		"signed", "unsigned", "void", "wchar_t",
	},
}

// Builtin lists the syntaxes handled by Lexer.
var Builtin = []*Syntax{cSyntax, rustSyntax, javascriptSyntax, goSyntax, cppSyntax}

// SyntaxForFile returns the builtin syntax for filename's extension, or nil.
func SyntaxForFile(filename string) *Syntax {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return nil
	}
	for _, s := range Builtin {
		for _, e := range s.Extensions {
			if e == ext {
				return s
			}
		}
	}
	return nil
}

// SyntaxByName returns the builtin syntax called name, or nil.
func SyntaxByName(name string) *Syntax {
	name = strings.ToLower(name)
	for _, s := range Builtin {
		if s.Name == name {
			return s
		}
	}
	return nil
}
