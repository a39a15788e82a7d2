package rewrite

import (
	"github.com/gogpu/shaderdbg/glslparse"
	"github.com/gogpu/shaderdbg/token"
)

// resolveType implements type inference for the value being
// visualized: a declaration carries its own type, a return statement
// takes the enclosing function's return type, and a bare assignment
// requires scanning backward for the variable's declaration, first in
// the enclosing function and then through every line above that
// function. The second scan does not tell file-scope declarations from
// locals of earlier functions, and globals declared below the
// enclosing function are not searched.
func resolveType(lines []string, fn *glslparse.FunctionInfo, debugLine int, cat category, v string, stmt string) (string, bool) {
	switch cat {
	case categoryDeclaration:
		t := declaredType(stmt)
		if t == "" {
			return "", false
		}
		return t, true
	case categoryReturn:
		if fn == nil {
			return "", false
		}
		return fn.ReturnType, true
	case categoryAssignment:
		from := debugLine - 1
		if fn != nil {
			if t, ok := scanDeclaration(lines, from, fn.BodyStartLine, v); ok {
				return t, true
			}
			if t, ok := scanDeclaration(lines, fn.StartLine-1, 1, v); ok {
				return t, true
			}
			return "", false
		}
		if t, ok := scanDeclaration(lines, from, 1, v); ok {
			return t, true
		}
		return "", false
	default:
		return "", false
	}
}

// scanDeclaration scans lines from..to (descending, both 1-based and
// inclusive) for the most recent "T name" or "T name = ..." naming
// name, returning T.
func scanDeclaration(lines []string, from, to int, name string) (string, bool) {
	if from > len(lines) {
		from = len(lines)
	}
	for ln := from; ln >= to && ln >= 1; ln-- {
		toks := significantTokens(lines[ln-1])
		if len(toks) >= 2 && toks[0].Kind == token.Type && toks[1].Lexeme == name {
			return toks[0].Lexeme, true
		}
	}
	return "", false
}
