// Package stack captures the call stack attached to trace-level envelopes.
package stack

import (
	"fmt"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Capture returns one line per frame above the caller of Capture's caller.
//
// The raw stack starts at Capture itself. The first two frames (Capture and
// the trace entry point that called it) and the outermost frame are
// dropped, so Capture must be called directly from that entry point.
//
//go:noinline
func Capture() []string {
	err := errors.New("")
	return trim(Format(err.(stackTracer).StackTrace()))
}

// Format renders frames as "func (file:line)".
func Format(st errors.StackTrace) []string {
	lines := make([]string, 0, len(st))
	for _, f := range st {
		lines = append(lines, fmt.Sprintf("%n (%s:%d)", f, f, f))
	}
	return lines
}

func trim(lines []string) []string {
	if len(lines) < 3 {
		return []string{}
	}
	return lines[2 : len(lines)-1]
}
