package forwarder

import (
	"github.com/predatorx7/thoth/pkg/model"
	"github.com/predatorx7/thoth/pkg/stack"
)

// Assert forwards args at assert level only when condition is false.
func (f *Forwarder) Assert(condition bool, args ...any) (bool, error) {
	if condition {
		return false, nil
	}
	return f.Dispatch(model.LogTypeAssert, args)
}

// Error forwards args at error level.
func (f *Forwarder) Error(args ...any) (bool, error) {
	return f.level(model.LogTypeError, args)
}

// Info forwards args at info level.
func (f *Forwarder) Info(args ...any) (bool, error) {
	return f.level(model.LogTypeInfo, args)
}

// Log forwards args at log level.
func (f *Forwarder) Log(args ...any) (bool, error) {
	return f.level(model.LogTypeLog, args)
}

// Table is Log under another name.
func (f *Forwarder) Table(args ...any) (bool, error) {
	return f.Log(args...)
}

// Warn forwards args at warn level.
func (f *Forwarder) Warn(args ...any) (bool, error) {
	return f.level(model.LogTypeWarn, args)
}

// Trace forwards args at trace level followed by the caller's stack.
//
//go:noinline
func (f *Forwarder) Trace(args ...any) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	// Must stay a direct call: Capture drops its own frame and this one.
	frames := stack.Capture()
	return f.dispatch(model.LogTypeTrace, args, frames)
}

func (f *Forwarder) level(level model.LogType, args []any) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}
	return f.Dispatch(level, args)
}
