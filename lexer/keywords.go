package lexer

import "github.com/gogpu/shaderdbg/token"

// controlKeywords are GLSL keywords that are not type names.
var controlKeywords = map[string]struct{}{
	"if":         {},
	"else":       {},
	"for":        {},
	"while":      {},
	"do":         {},
	"return":     {},
	"break":      {},
	"continue":   {},
	"discard":    {},
	"in":         {},
	"out":        {},
	"inout":      {},
	"const":      {},
	"uniform":    {},
	"varying":    {},
	"struct":     {},
	"precision":  {},
	"highp":      {},
	"mediump":    {},
	"lowp":       {},
	"layout":     {},
	"flat":       {},
	"smooth":     {},
	"true":       {},
	"false":      {},
}

// typeKeywords are reserved GLSL type names.
var typeKeywords = map[string]struct{}{
	"void":      {},
	"bool":      {},
	"int":       {},
	"uint":      {},
	"float":     {},
	"double":    {},
	"vec2":      {},
	"vec3":      {},
	"vec4":      {},
	"ivec2":     {},
	"ivec3":     {},
	"ivec4":     {},
	"uvec2":     {},
	"uvec3":     {},
	"uvec4":     {},
	"bvec2":     {},
	"bvec3":     {},
	"bvec4":     {},
	"mat2":      {},
	"mat3":      {},
	"mat4":      {},
	"mat2x2":    {},
	"mat2x3":    {},
	"mat2x4":    {},
	"mat3x2":    {},
	"mat3x3":    {},
	"mat3x4":    {},
	"mat4x2":    {},
	"mat4x3":    {},
	"mat4x4":    {},
	"sampler2D": {},
	"sampler3D": {},
	"samplerCube": {},
	"sampler2DArray": {},
}

// lookupKind classifies an identifier-shaped lexeme.
func lookupKind(text string) token.Kind {
	if _, ok := typeKeywords[text]; ok {
		return token.Type
	}
	if _, ok := controlKeywords[text]; ok {
		return token.Keyword
	}
	return token.Ident
}

// IsTypeName reports whether text names a reserved GLSL type.
func IsTypeName(text string) bool {
	_, ok := typeKeywords[text]
	return ok
}
