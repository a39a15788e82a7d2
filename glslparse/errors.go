package glslparse

import (
	"fmt"
	"strings"
)

// Error carries a diagnosable message with a source line/column. The
// public transformer entry points report failure by returning ok=false
// rather than surfacing these, but they're kept around for the CLI and
// for tests that want to see best-effort diagnostics.
type Error struct {
	Message string
	Line    int
	Column  int
}

func (e *Error) Error() string {
	if e.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// ErrorList aggregates parse diagnostics.
type ErrorList []*Error

func (el ErrorList) Error() string {
	if len(el) == 0 {
		return "no errors"
	}
	if len(el) == 1 {
		return el[0].Error()
	}
	return fmt.Sprintf("%s (and %d more)", el[0].Error(), len(el)-1)
}

// Add appends a diagnostic.
func (el *ErrorList) Add(message string, line, column int) {
	*el = append(*el, &Error{Message: message, Line: line, Column: column})
}

// HasErrors reports whether any diagnostic was recorded.
func (el ErrorList) HasErrors() bool { return len(el) > 0 }

// FormatAll renders every diagnostic, one per line.
func (el ErrorList) FormatAll() string {
	var sb strings.Builder
	for i, e := range el {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}
