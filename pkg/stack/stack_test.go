package stack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:noinline
func traceEntry() []string {
	return Capture()
}

//go:noinline
func callsTraceEntry() []string {
	return traceEntry()
}

func TestCapture_DropsOwnFrames(t *testing.T) {
	frames := callsTraceEntry()
	require.NotEmpty(t, frames)

	assert.True(t, strings.HasPrefix(frames[0], "callsTraceEntry ("), "first frame: %s", frames[0])
	assert.Contains(t, frames[0], "stack_test.go:")
	assert.True(t, strings.HasPrefix(frames[1], "TestCapture_DropsOwnFrames ("), "second frame: %s", frames[1])

	for _, f := range frames {
		assert.False(t, strings.HasPrefix(f, "Capture ("), f)
		assert.False(t, strings.HasPrefix(f, "traceEntry ("), f)
		assert.False(t, strings.HasPrefix(f, "goexit ("), f)
	}
}

func TestTrim(t *testing.T) {
	assert.Equal(t, []string{}, trim(nil))
	assert.Equal(t, []string{}, trim([]string{"a", "b"}))
	assert.Equal(t, []string{}, trim([]string{"a", "b", "c"}))
	assert.Equal(t, []string{"c", "d"}, trim([]string{"a", "b", "c", "d", "e"}))
}
