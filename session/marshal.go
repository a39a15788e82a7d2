package session

import (
	"encoding/json"
	"strconv"
)

// wireState is the JSON shape of State, with loop caps keyed by
// string since encoding/json requires string map keys.
type wireState struct {
	Enabled      bool              `json:"enabled"`
	FilePath     string            `json:"filePath"`
	DebugLine    int               `json:"debugLine"`
	LineContent  string            `json:"lineContent"`
	Locked       bool              `json:"locked"`
	FunctionName string            `json:"functionName"`
	CustomParams map[string]string `json:"customParams"`
	LoopCaps     map[string]int    `json:"loopCaps"`
}

// MarshalState serializes the current state to JSON, for a host that
// persists or ships it across a process boundary. It intentionally
// omits OriginalCode, which can be large and is re-suppliable via
// SetOriginalCode; FunctionContext is reduced to its FunctionName
// since the rest (parameters, loops) is recomputable from OriginalCode
// plus DebugLine and isn't meant to round-trip.
func (s *DebugSessionState) MarshalState() ([]byte, error) {
	st := s.GetState()

	params := make(map[string]string, len(st.CustomParams))
	for k, v := range st.CustomParams {
		params[strconv.Itoa(k)] = v
	}
	caps := make(map[string]int, len(st.LoopCaps))
	for k, v := range st.LoopCaps {
		caps[strconv.Itoa(k)] = v
	}

	functionName := ""
	if st.FunctionContext != nil {
		functionName = st.FunctionContext.FunctionName
	}

	return json.Marshal(wireState{
		Enabled:      st.Enabled,
		FilePath:     st.FilePath,
		DebugLine:    st.DebugLine,
		LineContent:  st.LineContent,
		Locked:       st.Locked,
		FunctionName: functionName,
		CustomParams: params,
		LoopCaps:     caps,
	})
}
