// Package shaderdbg turns a Shadertoy-dialect fragment shader and a
// line number into a shader that visualizes the value computed at
// that line through fragColor, without ever executing GLSL itself:
// every transform here is source-to-source text rewriting driven by a
// lightweight structural scan, not a full parse or a GPU round trip.
package shaderdbg

import (
	"github.com/gogpu/shaderdbg/context"
	"github.com/gogpu/shaderdbg/rewrite"
)

// ModifyShaderForDebugging rewrites source so that the expression on
// debugLine is visualized into fragColor. content is the caller's
// recollection of that line's text, checked against the live source
// so a stale line number (the shader was edited since) is rejected
// rather than silently rewriting the wrong line. customParams and
// loopCaps may be nil. ok is false when debugLine does not name a
// debuggable statement.
func ModifyShaderForDebugging(source string, debugLine int, content string, customParams map[int]string, loopCaps map[int]int) (string, bool) {
	return rewrite.Generate(source, debugLine, content, customParams, loopCaps)
}

// ExtractFunctionContext answers, for source and debugLine: which
// function contains the line (or the global scope), what loops
// enclose it, and the parameters of that function together with
// default visualization expressions for each.
func ExtractFunctionContext(source string, debugLine int) (*context.DebugFunctionContext, error) {
	ctx, errs := context.Extract(source, debugLine)
	if errs.HasErrors() {
		return ctx, errs
	}
	return ctx, nil
}

// ApplyFullShaderPostProcessing rewrites source's mainImage to remap
// its final fragColor value: normalize squashes the value into the
// visible range and a non-nil stepThreshold binarizes it afterward.
// ok is false if neither was requested or mainImage could not be
// found.
func ApplyFullShaderPostProcessing(source string, normalize rewrite.Normalize, stepThreshold *float64) (string, bool) {
	return rewrite.PostProcess(source, normalize, stepThreshold)
}
