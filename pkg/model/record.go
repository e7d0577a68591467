package model

import (
	"encoding/json"
	"time"
)

// Record is an envelope as received by the collector.
//
// Info is kept as raw JSON: once on the wire a single array argument and a
// multi-argument call look the same, so the collector does not try to
// recover the distinction.
type Record struct {
	ID         string            `json:"id"`
	ReceivedAt time.Time         `json:"received_at"`
	ClientIP   string            `json:"client_ip,omitempty"`
	ClientID   string            `json:"client_id,omitempty"`
	App        string            `json:"app"`
	Client     map[string]string `json:"client"`
	Type       LogType           `json:"type"`
	Info       json.RawMessage   `json:"info"`
}

// IncomingEnvelope is the decoding shape of a posted envelope.
type IncomingEnvelope struct {
	App    string            `json:"app"`
	Client map[string]string `json:"client"`
	Type   LogType           `json:"type"`
	Info   json.RawMessage   `json:"info"`
}
