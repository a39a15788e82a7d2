// Package token defines the lexical vocabulary shared by the GLSL
// lexer and structural parser.
package token

// Kind identifies the category of a token.
type Kind uint8

const (
	EOF Kind = iota
	Error

	Ident
	Number
	String
	Comment
	Newline
	Preprocessor // an entire "#..." directive line, kept opaque

	// Keyword is a GLSL control/storage keyword: if, else, for, while,
	// do, return, break, continue, in, out, inout, const, uniform,
	// struct, discard, ...
	Keyword

	// Type is a reserved GLSL type name: float, int, uint, bool,
	// vec2..vec4, mat2..mat4, sampler2D, and friends.
	Type

	Punct
)

// String returns a short human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Error:
		return "Error"
	case Ident:
		return "Ident"
	case Number:
		return "Number"
	case String:
		return "String"
	case Comment:
		return "Comment"
	case Newline:
		return "Newline"
	case Preprocessor:
		return "Preprocessor"
	case Keyword:
		return "Keyword"
	case Type:
		return "Type"
	case Punct:
		return "Punct"
	default:
		return "Unknown"
	}
}

// Token is a single lexical unit with its source position.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int // 1-based
	Column int // 1-based
}

// Position is a single point in source text.
type Position struct {
	Line   int
	Column int
	Offset int
}

// Span is a half-open range of source text.
type Span struct {
	Start Position
	End   Position
}
