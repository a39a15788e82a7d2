package shaderdbg

import (
	"strings"
	"testing"

	"github.com/gogpu/shaderdbg/rewrite"
)

func TestModifyShaderForDebuggingEndToEnd(t *testing.T) {
	src := `void mainImage(out vec4 fragColor, in vec2 fragCoord)
{
    vec2 uv = fragCoord / iResolution.xy;
    float l = length(uv);
    fragColor = vec4(vec3(l), 1.0);
}
`
	out, ok := ModifyShaderForDebugging(src, 4, "float l = length(uv);", nil, nil)
	if !ok {
		t.Fatal("expected a debuggable line")
	}
	if !strings.Contains(out, "fragColor = vec4(vec3(l), 1.0);") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestModifyShaderForDebuggingRejectsBadLine(t *testing.T) {
	src := "void mainImage(out vec4 fragColor, in vec2 fragCoord) {\n    discard;\n}\n"
	if _, ok := ModifyShaderForDebugging(src, 2, "discard;", nil, nil); ok {
		t.Fatal("expected discard; to be rejected as not debuggable")
	}
}

func TestExtractFunctionContextEndToEnd(t *testing.T) {
	src := "float spiralSDF(vec2 st, float turns) {\n    return length(st) * turns;\n}\n"
	ctx, err := ExtractFunctionContext(src, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.FunctionName != "spiralSDF" {
		t.Fatalf("expected spiralSDF, got %q", ctx.FunctionName)
	}
	if !ctx.IsFunction {
		t.Fatal("expected IsFunction true for a non-mainImage function")
	}
}

func TestApplyFullShaderPostProcessingEndToEnd(t *testing.T) {
	src := "void mainImage(out vec4 fragColor, in vec2 fragCoord) {\n    fragColor = vec4(-1.0, 0.5, 2.0, 1.0);\n}\n"
	out, ok := ApplyFullShaderPostProcessing(src, rewrite.NormalizeAbs, nil)
	if !ok {
		t.Fatal("expected post-processing to apply")
	}
	if !strings.Contains(out, "fragColor.rgb = abs(fragColor.rgb);") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
