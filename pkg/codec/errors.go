// pkg/codec/errors.go
package codec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCommandRequired is returned when no tool program is configured
	ErrCommandRequired = errors.New("codec command is required")

	// ErrCommandNotFound is returned when the tool program cannot be located
	ErrCommandNotFound = errors.New("codec command not found")
)

// Error describes a failed tool invocation
type Error struct {
	Output string
	Input  string
	Err    error

	// Log holds the tail of the tool's combined stdout/stderr
	Log string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("codec -o %s %s: %v", e.Output, e.Input, e.Err)
	if log := strings.TrimSpace(e.Log); log != "" {
		msg += ": " + lastLine(log)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}
