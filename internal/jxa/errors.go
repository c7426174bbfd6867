package jxa

import (
	"errors"
	"strings"
)

var (
	ErrTimeout      = errors.New("request timed out")
	ErrUnsupported  = errors.New("unsupported platform")
	ErrConnection   = errors.New("could not connect to Things")
	ErrScriptFailed = errors.New("script failed")
	ErrParse        = errors.New("could not parse bridge output")
)

// ScriptError carries the interpreter's diagnostic text.
// It satisfies errors.Is(err, ErrScriptFailed).
type ScriptError struct {
	Stderr   string
	ExitCode int
}

func (e *ScriptError) Error() string {
	msg := strings.TrimSpace(e.Stderr)
	if msg == "" {
		return "script failed"
	}
	return "script failed: " + msg
}

func (e *ScriptError) Is(target error) bool {
	return target == ErrScriptFailed
}
