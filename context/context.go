// Package context answers, for a given source and debug line: which
// function contains the line, which loops enclose it, and the
// parameters of that function together with default visualization
// expressions for each, so a caller can build a parameter editing UI
// without re-deriving any of that from the token stream itself.
package context

import (
	"fmt"

	"github.com/gogpu/shaderdbg/glslparse"
)

// ParamMode is how a debug parameter's value is currently sourced.
type ParamMode string

const (
	ModeUV         ParamMode = "uv"
	ModeCenteredUV ParamMode = "centered-uv"
	ModeCustom     ParamMode = "custom"
	ModePreset     ParamMode = "preset"
)

// DebugParameterInfo is one formal parameter of the function enclosing
// the debug line, with the default expressions the call-site
// synthesizer can fall back to.
type DebugParameterInfo struct {
	Name                string
	Type                string
	UVValue             string
	CenteredUVValue     string
	DefaultCustomValue  string
	Mode                ParamMode
	CustomValue         string
}

// DebugLoopInfo is a loop that encloses the debug line.
type DebugLoopInfo struct {
	LoopIndex  int
	LineNumber int
	EndLine    int
	LoopHeader string
}

// DebugFunctionContext is the full answer for one (source, line) pair.
type DebugFunctionContext struct {
	FunctionName string
	ReturnType   string
	Parameters   []DebugParameterInfo
	IsFunction   bool
	Loops        []DebugLoopInfo
}

// GlobalScopeFunctionName is used when the debug line is at file scope.
const GlobalScopeFunctionName = "<global>"

// Extract computes the DebugFunctionContext for debugLine in source.
func Extract(source string, debugLine int) (*DebugFunctionContext, glslparse.ErrorList) {
	module, errs := glslparse.Parse(source)
	return ExtractFromModule(module, debugLine), errs
}

// ExtractFromModule is Extract given an already-parsed module, so a
// caller that has parsed the source once doesn't re-lex it.
func ExtractFromModule(module *glslparse.Module, debugLine int) *DebugFunctionContext {
	fn := module.FindFunction(debugLine)
	if fn == nil {
		return &DebugFunctionContext{
			FunctionName: GlobalScopeFunctionName,
			IsFunction:   false,
		}
	}

	loops := module.LoopsEnclosing(debugLine, fn)
	debugLoops := make([]DebugLoopInfo, 0, len(loops))
	for _, lp := range loops {
		debugLoops = append(debugLoops, DebugLoopInfo{
			LoopIndex:  lp.LoopIndex,
			LineNumber: lp.LineNumber,
			EndLine:    lp.EndLine,
			LoopHeader: lp.LoopHeader,
		})
	}

	params := make([]DebugParameterInfo, 0, len(fn.Parameters))
	for _, p := range fn.Parameters {
		params = append(params, paramInfo(p))
	}

	return &DebugFunctionContext{
		FunctionName: fn.Name,
		ReturnType:   fn.ReturnType,
		Parameters:   params,
		IsFunction:   fn.Name != "mainImage",
		Loops:        debugLoops,
	}
}

func paramInfo(p glslparse.Parameter) DebugParameterInfo {
	info := DebugParameterInfo{
		Name: p.Name,
		Type: p.Type,
	}
	info.UVValue = uvValueForType(p.Type)
	info.CenteredUVValue = centeredUVValueForType(p.Type)
	info.DefaultCustomValue = DefaultCustomValue(p.Type)

	if p.Type == "vec2" {
		info.Mode = ModeUV
	} else {
		info.Mode = ModeCustom
	}
	info.CustomValue = info.DefaultCustomValue
	return info
}

const centeredUVExpr = "(-1.0 + 2.0 * uv) * vec2(iResolution.x / iResolution.y, 1.0)"

// uvValueForType returns the default uv-derived expression for type.
func uvValueForType(t string) string {
	switch t {
	case "vec2":
		return "uv"
	case "float":
		return "uv.x"
	case "vec3":
		return "vec3(uv, 0.0)"
	case "vec4":
		return "vec4(uv, 0.0, 1.0)"
	case "int":
		return "int(uv.x * 10.0)"
	case "bool":
		return "(uv.x > 0.5)"
	default:
		return "uv.x"
	}
}

// centeredUVValueForType substitutes the centered/aspect-corrected
// form of uv into the same per-type shapes as uvValueForType.
func centeredUVValueForType(t string) string {
	c := centeredUVExpr
	switch t {
	case "vec2":
		return c
	case "float":
		return fmt.Sprintf("(%s).x", c)
	case "vec3":
		return fmt.Sprintf("vec3(%s, 0.0)", c)
	case "vec4":
		return fmt.Sprintf("vec4(%s, 0.0, 1.0)", c)
	case "int":
		return fmt.Sprintf("int((%s).x * 10.0)", c)
	case "bool":
		return fmt.Sprintf("((%s).x > 0.5)", c)
	default:
		return fmt.Sprintf("(%s).x", c)
	}
}

// DefaultCustomValue returns a neutral literal of the shape matching
// type, for use when no uv-derived value makes sense and the caller
// has not supplied an override.
func DefaultCustomValue(t string) string {
	switch t {
	case "float":
		return "0.5"
	case "int":
		return "1"
	case "bool":
		return "true"
	case "vec2":
		return "vec2(0.5)"
	case "vec3":
		return "vec3(0.5)"
	case "vec4":
		return "vec4(0.5)"
	default:
		return "0.5"
	}
}
