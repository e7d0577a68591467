package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/predatorx7/thoth/pkg/forwarder"
)

// parseArgs turns command line words into call arguments. Words that are
// valid JSON are decoded (so 42, true and {"k":1} keep their types);
// anything else is passed as a string.
func parseArgs(words []string) []any {
	args := make([]any, 0, len(words))
	for _, w := range words {
		var v any
		if err := json.Unmarshal([]byte(w), &v); err == nil {
			args = append(args, v)
			continue
		}
		args = append(args, w)
	}
	return args
}

// call routes a level name to the matching forwarder entry point. For
// assert the first word is the condition.
func call(fwd *forwarder.Forwarder, level string, words []string) (bool, error) {
	switch level {
	case "assert":
		if len(words) == 0 {
			return false, fmt.Errorf("assert needs a condition")
		}
		cond, err := strconv.ParseBool(words[0])
		if err != nil {
			return false, fmt.Errorf("assert condition %q: %w", words[0], err)
		}
		return fwd.Assert(cond, parseArgs(words[1:])...)
	case "error":
		return fwd.Error(parseArgs(words)...)
	case "info":
		return fwd.Info(parseArgs(words)...)
	case "log":
		return fwd.Log(parseArgs(words)...)
	case "table":
		return fwd.Table(parseArgs(words)...)
	case "trace":
		return fwd.Trace(parseArgs(words)...)
	case "warn":
		return fwd.Warn(parseArgs(words)...)
	}
	return false, fmt.Errorf("unknown level %q", level)
}
