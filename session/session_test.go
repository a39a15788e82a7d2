package session

import (
	"encoding/json"
	"testing"

	"github.com/gogpu/shaderdbg/preset"
)

const testShader = `float spiralSDF(vec2 st, float turns) {
    return length(st) * turns;
}

void mainImage(out vec4 fragColor, in vec2 fragCoord) {
    vec2 uv = fragCoord / iResolution.xy;
    float d = spiralSDF(uv, 3.0);
    fragColor = vec4(vec3(d), 1.0);
}
`

func TestUpdateDebugLineBasic(t *testing.T) {
	s := New()
	s.SetOriginalCode(testShader)
	s.UpdateDebugLine(7, "    float d = spiralSDF(uv, 3.0);", "shader.glsl")
	st := s.GetState()
	if st.FilePath != "shader.glsl" || st.DebugLine != 7 {
		t.Fatalf("unexpected state: %+v", st)
	}
	if st.LineContent != "    float d = spiralSDF(uv, 3.0);" {
		t.Fatalf("expected lineContent to be recorded, got %q", st.LineContent)
	}
	if st.FunctionContext == nil || st.FunctionContext.FunctionName != "mainImage" {
		t.Fatalf("expected functionContext to be derived as mainImage, got %+v", st.FunctionContext)
	}
}

func TestLockPreventsUpdateUntilFileChanges(t *testing.T) {
	s := New()
	s.SetOriginalCode(testShader)
	s.UpdateDebugLine(7, "", "shader.glsl")
	s.Lock()
	s.UpdateDebugLine(2, "", "shader.glsl")
	if s.GetState().DebugLine != 7 {
		t.Fatal("expected locked session to ignore the update")
	}

	s.UpdateDebugLine(2, "", "other.glsl")
	st := s.GetState()
	if st.DebugLine != 2 || st.Locked {
		t.Fatalf("expected a file change to release the lock and apply the update, got %+v", st)
	}
}

func TestFunctionChangeClearsOverridesSameFunctionPreserves(t *testing.T) {
	s := New()
	s.SetOriginalCode(testShader)
	s.UpdateDebugLine(2, "    return length(st) * turns;", "shader.glsl")
	v := "50.0"
	s.SetCustomParameter(1, &v)
	maxIter := 8
	s.SetLoopMaxIterations(0, &maxIter)

	// Line 1 is still inside spiralSDF: same function, overrides stay.
	s.UpdateDebugLine(1, "float spiralSDF(vec2 st, float turns) {", "shader.glsl")
	st := s.GetState()
	if st.CustomParams[1] != "50.0" || st.LoopCaps[0] != 8 {
		t.Fatalf("expected overrides preserved within the same function, got %+v", st)
	}

	// Line 7 is inside mainImage: a different function, overrides clear.
	s.UpdateDebugLine(7, "    float d = spiralSDF(uv, 3.0);", "shader.glsl")
	st = s.GetState()
	if len(st.CustomParams) != 0 || len(st.LoopCaps) != 0 {
		t.Fatalf("expected overrides cleared on function change, got %+v", st)
	}
}

func TestSetCustomParameterNilClears(t *testing.T) {
	s := New()
	v := "1.0"
	s.SetCustomParameter(0, &v)
	s.SetCustomParameter(0, nil)
	if _, ok := s.GetState().CustomParams[0]; ok {
		t.Fatal("expected nil value to clear the override")
	}
}

func TestGetStateReturnsDefensiveCopy(t *testing.T) {
	s := New()
	s.SetOriginalCode(testShader)
	s.UpdateDebugLine(7, "", "shader.glsl")
	v := "1.0"
	s.SetCustomParameter(0, &v)

	st := s.GetState()
	st.CustomParams[99] = "mutated"
	originalParamCount := len(st.FunctionContext.Parameters)
	st.FunctionContext.Parameters = append(st.FunctionContext.Parameters, st.FunctionContext.Parameters[0])

	fresh := s.GetState()
	if _, ok := fresh.CustomParams[99]; ok {
		t.Fatal("mutating a returned State's CustomParams leaked back into the session")
	}
	if len(fresh.FunctionContext.Parameters) != originalParamCount {
		t.Fatal("mutating a returned State's FunctionContext leaked back into the session")
	}
}

func TestSetStateCallbackFiresSynchronously(t *testing.T) {
	s := New()
	var fields []string
	s.SetStateCallback(func(c StateChange) {
		fields = append(fields, c.Field)
	})
	s.SetEnabled(true)
	s.UpdateDebugLine(1, "", "shader.glsl")
	if len(fields) != 2 || fields[0] != "enabled" || fields[1] != "debugLine" {
		t.Fatalf("unexpected callback sequence: %v", fields)
	}
}

func TestApplyPresetResolvesParamsByName(t *testing.T) {
	s := New()
	s.SetOriginalCode(testShader)
	s.UpdateDebugLine(2, "    return length(st) * turns;", "shader.glsl")
	lib := preset.Library{
		"wide": preset.FunctionPreset{
			Params:   map[string]string{"turns": "12.0"},
			LoopCaps: map[int]int{0: 8},
		},
	}
	if ok := s.ApplyPreset(lib, "wide"); !ok {
		t.Fatal("expected preset to apply")
	}
	st := s.GetState()
	if st.CustomParams[1] != "12.0" {
		t.Fatalf("expected turns (index 1) set to 12.0, got %+v", st.CustomParams)
	}
	if st.LoopCaps[0] != 8 {
		t.Fatalf("expected loop 0 capped at 8, got %+v", st.LoopCaps)
	}
}

func TestRewriteOptionsSnapshotsOverrides(t *testing.T) {
	s := New()
	s.SetOriginalCode(testShader)
	s.UpdateDebugLine(2, "", "shader.glsl")
	v := "12.0"
	s.SetCustomParameter(1, &v)
	maxIter := 4
	s.SetLoopMaxIterations(0, &maxIter)

	opts := s.RewriteOptions()
	if opts.CustomParams[1] != "12.0" || opts.LoopCaps[0] != 4 {
		t.Fatalf("unexpected options: %+v", opts)
	}

	opts.CustomParams[99] = "mutated"
	if _, ok := s.RewriteOptions().CustomParams[99]; ok {
		t.Fatal("mutating a returned Options leaked back into the session")
	}
}

func TestMarshalStateProducesJSON(t *testing.T) {
	s := New()
	s.SetOriginalCode(testShader)
	s.UpdateDebugLine(7, "", "shader.glsl")
	v := "1.0"
	s.SetCustomParameter(2, &v)

	data, err := s.MarshalState()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output was not valid JSON: %v", err)
	}
	if decoded["filePath"] != "shader.glsl" {
		t.Fatalf("unexpected decoded state: %+v", decoded)
	}
	if decoded["functionName"] != "mainImage" {
		t.Fatalf("expected functionName derived in the wire payload, got %+v", decoded)
	}
}
