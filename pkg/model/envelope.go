package model

import (
	"encoding/json"

	"github.com/predatorx7/thoth/pkg/fingerprint"
)

// LogType is the level carried in an envelope's "type" field.
type LogType string

const (
	LogTypeAssert LogType = "assert"
	LogTypeError  LogType = "error"
	LogTypeInfo   LogType = "info"
	LogTypeLog    LogType = "log"
	LogTypeTrace  LogType = "trace"
	LogTypeWarn   LogType = "warn"
)

// LogTypes lists every level in wire order.
var LogTypes = []LogType{
	LogTypeAssert,
	LogTypeError,
	LogTypeInfo,
	LogTypeLog,
	LogTypeTrace,
	LogTypeWarn,
}

// Valid reports whether t is one of the known levels.
func (t LogType) Valid() bool {
	for _, known := range LogTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Info is the payload of an envelope. A call with exactly one argument
// carries that argument bare; any other count is sent as an array.
type Info struct {
	values []any
	single bool
}

// Single wraps one value that is sent without an enclosing array.
func Single(v any) Info {
	return Info{values: []any{v}, single: true}
}

// Multiple wraps an ordered list of values sent as an array.
func Multiple(vs []any) Info {
	if vs == nil {
		vs = []any{}
	}
	return Info{values: vs}
}

// NewInfo collapses a one-element list to Single and keeps everything
// else as Multiple.
func NewInfo(data []any) Info {
	if len(data) == 1 {
		return Single(data[0])
	}
	return Multiple(data)
}

// IsSingle reports whether the payload is a bare value.
func (i Info) IsSingle() bool { return i.single }

// Values returns the payload values in order. A Single payload yields a
// one-element slice.
func (i Info) Values() []any { return i.values }

// Value returns the payload as it appears on the wire: the bare value for
// Single, the slice for Multiple.
func (i Info) Value() any {
	if i.single {
		return i.values[0]
	}
	if i.values == nil {
		return []any{}
	}
	return i.values
}

func (i Info) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Value())
}

// Envelope is the JSON object posted for every forwarded call. Field order
// is part of the wire format.
type Envelope struct {
	App    string                  `json:"app"`
	Client fingerprint.Fingerprint `json:"client"`
	Type   LogType                 `json:"type"`
	Info   Info                    `json:"info"`
}
