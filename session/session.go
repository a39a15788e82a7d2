// Package session holds the DebugSessionState a host application
// keeps across repeated debug calls for one open shader: which line
// is being debugged, a lock protecting that choice from incidental
// re-selection, and the per-function parameter/loop overrides the
// user has dialed in.
package session

import (
	"sync"

	"github.com/gogpu/shaderdbg/context"
	"github.com/gogpu/shaderdbg/rewrite"
)

// StateChange describes what just happened to a DebugSessionState, for
// a host's SetStateCallback.
type StateChange struct {
	Field string // "enabled", "debugLine", "customParams", "loopCaps", "originalCode", "lock"
	Line  int    // the debug line at the time of the change, 0 if not applicable
}

// State is a defensive-copy snapshot of a DebugSessionState, safe for
// a caller to retain or mutate without affecting the session.
type State struct {
	Enabled         bool
	FilePath        string
	DebugLine       int
	LineContent     string
	Locked          bool
	FunctionContext *context.DebugFunctionContext
	CustomParams    map[int]string
	LoopCaps        map[int]int
	OriginalCode    string
}

// DebugSessionState tracks one open debugging session. All exported
// methods are safe for concurrent use.
type DebugSessionState struct {
	mu sync.Mutex

	enabled         bool
	filePath        string
	debugLine       int
	lineContent     string
	locked          bool
	functionContext *context.DebugFunctionContext
	customParams    map[int]string
	loopCaps        map[int]int
	originalCode    string

	onChange func(StateChange)
}

// New returns a disabled session with no debug line selected.
func New() *DebugSessionState {
	return &DebugSessionState{
		customParams: map[int]string{},
		loopCaps:     map[int]int{},
	}
}

// SetStateCallback registers fn to be invoked synchronously at the end
// of every mutator, after the state change has taken effect. A nil fn
// disables the callback.
func (s *DebugSessionState) SetStateCallback(fn func(StateChange)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

func (s *DebugSessionState) notify(field string) {
	if s.onChange == nil {
		return
	}
	s.onChange(StateChange{Field: field, Line: s.debugLine})
}

// SetEnabled toggles whether debugging is active at all.
func (s *DebugSessionState) SetEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = enabled
	s.notify("enabled")
}

// Enabled reports whether debugging is currently active.
func (s *DebugSessionState) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Locked reports whether the current debug line is locked against
// automatic re-selection.
func (s *DebugSessionState) Locked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Lock prevents UpdateDebugLine from moving the debug line until the
// file path changes or Unlock is called.
func (s *DebugSessionState) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = true
	s.notify("lock")
}

// Unlock releases a lock set by Lock.
func (s *DebugSessionState) Unlock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = false
	s.notify("lock")
}

// UpdateDebugLine moves the debug line to line within filePath, with
// content recording the expected text of that line (a host's own
// staleness signal, the same role content plays in rewrite.Generate).
// If the session is locked and filePath is unchanged from the current
// one, the update is ignored. A file path change always releases the
// lock (the old selection no longer applies to a different document).
//
// The enclosing function is never taken on faith from the caller: it
// is derived from the cached original source via context.Extract, so
// GetState().FunctionContext is always consistent with the debug line
// without the caller having to resolve and pass it in itself. Moving
// to a different function clears any customParams/loopCaps overrides,
// since they were set in terms of that function's own parameter/loop
// indices; moving within the same function preserves them.
func (s *DebugSessionState) UpdateDebugLine(line int, content string, filePath string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fileChanged := filePath != s.filePath
	if s.locked && !fileChanged {
		return
	}
	if fileChanged {
		s.locked = false
	}

	prevFunction := ""
	if s.functionContext != nil {
		prevFunction = s.functionContext.FunctionName
	}

	s.filePath = filePath
	s.debugLine = line
	s.lineContent = content
	s.recomputeFunctionContext()

	newFunction := ""
	if s.functionContext != nil {
		newFunction = s.functionContext.FunctionName
	}
	if newFunction != prevFunction {
		s.customParams = map[int]string{}
		s.loopCaps = map[int]int{}
	}

	s.notify("debugLine")
}

// recomputeFunctionContext re-derives functionContext from originalCode
// and debugLine. Called with s.mu held, whenever either input changes.
// Best-effort: parse diagnostics are not surfaced here, matching
// glslparse's own never-fail-outright philosophy.
func (s *DebugSessionState) recomputeFunctionContext() {
	if s.originalCode == "" {
		s.functionContext = nil
		return
	}
	ctx, _ := context.Extract(s.originalCode, s.debugLine)
	s.functionContext = ctx
}

// SetCustomParameter overrides the argument synthesized for parameter
// index idx. A nil value clears the override, falling back to the
// default.
func (s *DebugSessionState) SetCustomParameter(idx int, value *string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == nil {
		delete(s.customParams, idx)
	} else {
		s.customParams[idx] = *value
	}
	s.notify("customParams")
}

// SetLoopMaxIterations sets the iteration cap for loop loopIndex. A
// nil value clears the cap.
func (s *DebugSessionState) SetLoopMaxIterations(loopIndex int, value *int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value == nil {
		delete(s.loopCaps, loopIndex)
	} else {
		s.loopCaps[loopIndex] = *value
	}
	s.notify("loopCaps")
}

// SetOriginalCode caches the unmodified source for the file currently
// under debug, so repeated debug calls don't need the host to keep
// passing it in. Since functionContext is derived from this source,
// changing it re-derives functionContext for the current debug line.
func (s *DebugSessionState) SetOriginalCode(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.originalCode = code
	s.recomputeFunctionContext()
	s.notify("originalCode")
}

// RewriteOptions snapshots the session's current overrides as a
// rewrite.Options, ready to pass to Options.Generate alongside the
// session's own FilePath/DebugLine.
func (s *DebugSessionState) RewriteOptions() rewrite.Options {
	s.mu.Lock()
	defer s.mu.Unlock()

	params := make(map[int]string, len(s.customParams))
	for k, v := range s.customParams {
		params[k] = v
	}
	caps := make(map[int]int, len(s.loopCaps))
	for k, v := range s.loopCaps {
		caps[k] = v
	}
	return rewrite.Options{CustomParams: params, LoopCaps: caps}
}

// GetState returns a defensive copy of the current state.
func (s *DebugSessionState) GetState() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	params := make(map[int]string, len(s.customParams))
	for k, v := range s.customParams {
		params[k] = v
	}
	caps := make(map[int]int, len(s.loopCaps))
	for k, v := range s.loopCaps {
		caps[k] = v
	}

	return State{
		Enabled:         s.enabled,
		FilePath:        s.filePath,
		DebugLine:       s.debugLine,
		LineContent:     s.lineContent,
		Locked:          s.locked,
		FunctionContext: copyFunctionContext(s.functionContext),
		CustomParams:    params,
		LoopCaps:        caps,
		OriginalCode:    s.originalCode,
	}
}

// copyFunctionContext deep-copies ctx so a caller mutating the
// returned State can't reach back into the session's own slices.
func copyFunctionContext(ctx *context.DebugFunctionContext) *context.DebugFunctionContext {
	if ctx == nil {
		return nil
	}
	out := *ctx
	out.Parameters = append([]context.DebugParameterInfo{}, ctx.Parameters...)
	out.Loops = append([]context.DebugLoopInfo{}, ctx.Loops...)
	return &out
}
