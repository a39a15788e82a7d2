package context

import "testing"

const loopShader = `void mainImage(out vec4 fragColor, in vec2 fragCoord)
{
    vec2 uv = fragCoord / iResolution.xy;
    for (int i = 0; i < 10; i++) {
        float x = float(i) * 0.1;
        uv.x += x;
    }
    fragColor = vec4(uv, 0.0, 1.0);
}
`

func TestExtractInLoop(t *testing.T) {
	ctx, errs := Extract(loopShader, 5)
	if errs.HasErrors() {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if ctx.FunctionName != "mainImage" {
		t.Fatalf("expected mainImage, got %q", ctx.FunctionName)
	}
	if ctx.IsFunction {
		t.Fatal("mainImage must report isFunction=false")
	}
	if len(ctx.Loops) != 1 {
		t.Fatalf("expected 1 enclosing loop, got %d", len(ctx.Loops))
	}
	if ctx.Loops[0].LoopIndex != 0 {
		t.Fatalf("expected loopIndex 0, got %d", ctx.Loops[0].LoopIndex)
	}
}

func TestExtractGlobalScope(t *testing.T) {
	src := "const float PI = 3.14159;\n"
	ctx, _ := Extract(src, 1)
	if ctx.FunctionName != GlobalScopeFunctionName {
		t.Fatalf("expected global scope marker, got %q", ctx.FunctionName)
	}
	if ctx.IsFunction {
		t.Fatal("global scope must report isFunction=false")
	}
	if len(ctx.Parameters) != 0 || len(ctx.Loops) != 0 {
		t.Fatalf("expected no parameters/loops at global scope, got %+v", ctx)
	}
}

const helperShader = `float spiralSDF(vec2 st, float turns) {
    float r = length(st);
    return step(0.1, r * turns);
}
`

func TestExtractHelperParameterDefaults(t *testing.T) {
	ctx, _ := Extract(helperShader, 2)
	if !ctx.IsFunction {
		t.Fatal("helper function must report isFunction=true")
	}
	if len(ctx.Parameters) != 2 {
		t.Fatalf("expected 2 parameters, got %d", len(ctx.Parameters))
	}
	st := ctx.Parameters[0]
	if st.Name != "st" || st.Type != "vec2" || st.Mode != ModeUV || st.UVValue != "uv" {
		t.Fatalf("unexpected st param: %+v", st)
	}
	turns := ctx.Parameters[1]
	if turns.Name != "turns" || turns.Type != "float" || turns.Mode != ModeCustom {
		t.Fatalf("unexpected turns param: %+v", turns)
	}
	if turns.UVValue != "uv.x" {
		t.Fatalf("expected uv.x default for float, got %q", turns.UVValue)
	}
	if turns.DefaultCustomValue != "0.5" {
		t.Fatalf("expected 0.5 default literal for float, got %q", turns.DefaultCustomValue)
	}
}
