package rewrite

import (
	"github.com/gogpu/shaderdbg/lexer"
	"github.com/gogpu/shaderdbg/token"
)

// category is the shape of a debug-target statement: what kind of
// rewrite it calls for.
type category int

const (
	categoryNotDebuggable category = iota
	categoryDeclaration
	categoryAssignment
	categoryReturn
)

// classify determines what kind of statement stmt is and, where that
// can be read off the statement alone, the name of the value being
// visualized. Declarations and assignments yield the variable name;
// return statements yield the fixed shadow name _dbgReturn. Bare
// expression statements and comparisons are not debuggable.
func classify(stmt string) (category, string) {
	toks := significantTokens(stmt)
	if len(toks) == 0 {
		return categoryNotDebuggable, ""
	}

	if toks[0].Kind == token.Keyword && toks[0].Lexeme == "return" {
		return categoryReturn, "_dbgReturn"
	}

	hasAssign, hasCompare := false, false
	for _, t := range toks {
		if t.Kind != token.Punct {
			continue
		}
		switch t.Lexeme {
		case "=", "+=", "-=", "*=", "/=":
			hasAssign = true
		case "==", "!=", "<=", ">=":
			hasCompare = true
		}
	}
	if hasCompare && !hasAssign {
		return categoryNotDebuggable, ""
	}
	if !hasAssign {
		return categoryNotDebuggable, ""
	}

	toks = skipQualifiers(toks)
	if len(toks) == 0 {
		return categoryNotDebuggable, ""
	}

	if toks[0].Kind == token.Type && len(toks) > 1 && toks[1].Kind == token.Ident {
		return categoryDeclaration, toks[1].Lexeme
	}
	if toks[0].Kind == token.Ident {
		return categoryAssignment, toks[0].Lexeme
	}
	return categoryNotDebuggable, ""
}

var qualifierKeywords = map[string]bool{
	"const": true, "uniform": true, "varying": true,
	"highp": true, "mediump": true, "lowp": true,
	"flat": true, "smooth": true,
}

// skipQualifiers drops leading storage/precision qualifier keywords
// ("const float x = ..." -> "float x = ...") so classification can
// find the actual type token.
func skipQualifiers(toks []token.Token) []token.Token {
	i := 0
	for i < len(toks) && toks[i].Kind == token.Keyword && qualifierKeywords[toks[i].Lexeme] {
		i++
	}
	return toks[i:]
}

// declaredType returns the leading type word of a categoryDeclaration
// statement, skipping any storage/precision qualifiers.
func declaredType(stmt string) string {
	toks := skipQualifiers(significantTokens(stmt))
	if len(toks) == 0 {
		return ""
	}
	return toks[0].Lexeme
}

func significantTokens(src string) []token.Token {
	all := lexer.New(src).Tokenize()
	out := make([]token.Token, 0, len(all))
	for _, t := range all {
		switch t.Kind {
		case token.Comment, token.Newline, token.Preprocessor, token.EOF:
			continue
		}
		out = append(out, t)
	}
	return out
}
