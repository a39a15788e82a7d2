package session

import "github.com/gogpu/shaderdbg/preset"

// ApplyPreset resolves named parameter overrides against the current
// function's parameter list (as derived by the last UpdateDebugLine)
// and applies them, along with the preset's loop caps, through the
// normal mutators (so locking and the function-change-clears-overrides
// rule still apply; this never bypasses them).
func (s *DebugSessionState) ApplyPreset(lib preset.Library, name string) bool {
	p, ok := lib[name]
	if !ok {
		return false
	}

	s.mu.Lock()
	var paramNames []string
	if s.functionContext != nil {
		for _, param := range s.functionContext.Parameters {
			paramNames = append(paramNames, param.Name)
		}
	}
	s.mu.Unlock()

	byName := make(map[string]int, len(paramNames))
	for i, name := range paramNames {
		byName[name] = i
	}

	for paramName, value := range p.Params {
		idx, ok := byName[paramName]
		if !ok {
			continue
		}
		v := value
		s.SetCustomParameter(idx, &v)
	}
	for loopIdx, limit := range p.LoopCaps {
		v := limit
		s.SetLoopMaxIterations(loopIdx, &v)
	}
	return true
}
