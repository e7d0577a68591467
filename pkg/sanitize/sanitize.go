// Package sanitize turns arbitrary call arguments into JSON-safe deep copies.
package sanitize

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// UnserializableArgumentError reports an argument that JSON cannot
// represent: functions, channels, complex numbers, NaN or infinite floats,
// cyclic values, or a failing MarshalJSON.
type UnserializableArgumentError struct {
	Index int
	Err   error
}

func (e *UnserializableArgumentError) Error() string {
	return fmt.Sprintf("argument %d is not JSON serializable: %v", e.Index, e.Err)
}

func (e *UnserializableArgumentError) Unwrap() error { return e.Err }

// Cause lets errors.Cause reach the underlying encoding error.
func (e *UnserializableArgumentError) Cause() error { return e.Err }

// Arguments returns a JSON round-tripped copy of every argument, in order.
// The copies share no memory with the inputs. Numbers decode as
// json.Number so integers keep their exact text.
func Arguments(args []any) ([]any, error) {
	data := make([]any, 0, len(args))
	for i, arg := range args {
		v, err := Value(arg)
		if err != nil {
			return nil, &UnserializableArgumentError{Index: i, Err: err}
		}
		data = append(data, v)
	}
	return data, nil
}

// Value round-trips a single value through JSON.
func Value(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encode")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode")
	}
	return out, nil
}
