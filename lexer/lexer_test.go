package lexer

import (
	"testing"

	"github.com/gogpu/shaderdbg/token"
)

func TestLexerBasicTokens(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Kind
	}{
		{"+ - * /", []token.Kind{token.Punct, token.Punct, token.Punct, token.Punct, token.EOF}},
		{"( ) { }", []token.Kind{token.Punct, token.Punct, token.Punct, token.Punct, token.EOF}},
		{"uv.xy", []token.Kind{token.Ident, token.Punct, token.Ident, token.EOF}},
	}

	for _, tt := range tests {
		tokens := New(tt.input).Tokenize()
		if len(tokens) != len(tt.expected) {
			t.Errorf("input %q: expected %d tokens, got %d (%v)", tt.input, len(tt.expected), len(tokens), tokens)
			continue
		}
		for i, tok := range tokens {
			if tok.Kind != tt.expected[i] {
				t.Errorf("input %q token %d: expected %v, got %v", tt.input, i, tt.expected[i], tok.Kind)
			}
		}
	}
}

func TestLexerOperators(t *testing.T) {
	input := "== != <= >= && || += -= *= /="
	tokens := New(input).Tokenize()
	for _, tok := range tokens {
		if tok.Kind == token.Error {
			t.Fatalf("unexpected error token for lexeme %q", tok.Lexeme)
		}
	}
	// 10 operators + EOF
	if len(tokens) != 11 {
		t.Fatalf("expected 11 tokens, got %d: %v", len(tokens), tokens)
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []string{"1", "1.0", ".5", "1.", "1e-3", "0.5e10", "42u"}
	for _, in := range tests {
		tokens := New(in).Tokenize()
		if len(tokens) < 1 || tokens[0].Kind != token.Number {
			t.Errorf("input %q: expected a Number token, got %v", in, tokens)
		}
		if tokens[0].Lexeme != in {
			t.Errorf("input %q: lexeme mismatch, got %q", in, tokens[0].Lexeme)
		}
	}
}

func TestLexerPreprocessorLine(t *testing.T) {
	src := "#define PI 3.14159\nfloat x = PI;"
	tokens := New(src).Tokenize()
	if tokens[0].Kind != token.Preprocessor {
		t.Fatalf("expected first token to be Preprocessor, got %v", tokens[0])
	}
	if tokens[0].Lexeme != "#define PI 3.14159" {
		t.Fatalf("unexpected preprocessor lexeme: %q", tokens[0].Lexeme)
	}
}

func TestLexerComments(t *testing.T) {
	src := "// line comment\n/* block\ncomment */ float x;"
	tokens := New(src).Tokenize()
	var kinds []token.Kind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	foundComment := 0
	for _, k := range kinds {
		if k == token.Comment {
			foundComment++
		}
	}
	if foundComment != 2 {
		t.Fatalf("expected 2 comment tokens, got %d (%v)", foundComment, kinds)
	}
}

func TestLexerTypesAndKeywords(t *testing.T) {
	src := "vec2 uv; for (int i = 0; i < 10; i++) return;"
	tokens := New(src).Tokenize()
	if tokens[0].Kind != token.Type || tokens[0].Lexeme != "vec2" {
		t.Fatalf("expected vec2 to be classified Type, got %v", tokens[0])
	}
	foundFor := false
	foundInt := false
	for _, tok := range tokens {
		if tok.Lexeme == "for" && tok.Kind == token.Keyword {
			foundFor = true
		}
		if tok.Lexeme == "int" && tok.Kind == token.Type {
			foundInt = true
		}
	}
	if !foundFor || !foundInt {
		t.Fatalf("expected for=Keyword and int=Type, tokens: %v", tokens)
	}
}

func TestLexerSwizzleDotVsFloat(t *testing.T) {
	src := "st.x = .5;"
	tokens := New(src).Tokenize()
	// st . x = .5 ;
	if tokens[1].Kind != token.Punct || tokens[1].Lexeme != "." {
		t.Fatalf("expected member-access dot, got %v", tokens[1])
	}
	var foundFloat bool
	for _, tok := range tokens {
		if tok.Kind == token.Number && tok.Lexeme == ".5" {
			foundFloat = true
		}
	}
	if !foundFloat {
		t.Fatalf("expected .5 float literal, tokens: %v", tokens)
	}
}
