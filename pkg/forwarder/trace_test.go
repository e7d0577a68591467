package forwarder

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:noinline
func traceFromHelper(f *Forwarder) (bool, error) {
	return f.Trace("checkpoint", map[string]any{"step": 3})
}

func TestTrace_AppendsCallerStack(t *testing.T) {
	fwd, rec, _ := newTestForwarder(scenarioConfig())

	ok, err := traceFromHelper(fwd)
	require.NoError(t, err)
	require.True(t, ok)

	calls := rec.calls()
	require.Len(t, calls, 1)

	var env struct {
		Type string            `json:"type"`
		Info []json.RawMessage `json:"info"`
	}
	require.NoError(t, json.Unmarshal([]byte(calls[0].body), &env))
	assert.Equal(t, "trace", env.Type)
	require.Len(t, env.Info, 3)
	assert.JSONEq(t, `"checkpoint"`, string(env.Info[0]))
	assert.JSONEq(t, `{"step":3}`, string(env.Info[1]))

	var frames []string
	require.NoError(t, json.Unmarshal(env.Info[2], &frames))
	require.NotEmpty(t, frames)
	assert.True(t, strings.HasPrefix(frames[0], "traceFromHelper ("), "first frame: %s", frames[0])
	assert.True(t, strings.HasPrefix(frames[1], "TestTrace_AppendsCallerStack ("), "second frame: %s", frames[1])
}

func TestTrace_SingleArgumentIsNotCollapsed(t *testing.T) {
	fwd, rec, _ := newTestForwarder(scenarioConfig())

	_, err := fwd.Trace("only")
	require.NoError(t, err)

	var env struct {
		Info []json.RawMessage `json:"info"`
	}
	require.NoError(t, json.Unmarshal([]byte(rec.calls()[0].body), &env))
	assert.Len(t, env.Info, 2)
}
