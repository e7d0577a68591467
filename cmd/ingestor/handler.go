package main

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/predatorx7/thoth/pkg/auth"
	"github.com/predatorx7/thoth/pkg/broker"
	"github.com/predatorx7/thoth/pkg/model"
)

// maxEnvelopeBytes bounds a single posted envelope.
const maxEnvelopeBytes = 1 << 20

type Handler struct {
	Broker   broker.Broker
	Verifier func(string) (bool, string, error)
}

func NewHandler(b broker.Broker, verifier func(string) (bool, string, error)) *Handler {
	return &Handler{
		Broker:   b,
		Verifier: verifier,
	}
}

// HandleLogs accepts one envelope per request. Forwarders post it as
// text/plain, so the Content-Type header is not checked.
func (h *Handler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	// Forwarders attach no headers; the key travels in the endpoint URL.
	apiKey := auth.KeyFromURL(r.URL)
	if apiKey == "" {
		rejectedEnvelopes.WithLabelValues("missing_key").Inc()
		http.Error(w, "Missing API Key", http.StatusUnauthorized)
		return
	}

	valid, clientID, err := h.Verifier(apiKey)
	if !valid || err != nil {
		rejectedEnvelopes.WithLabelValues("invalid_key").Inc()
		http.Error(w, "Invalid API Key", http.StatusUnauthorized)
		return
	}

	var env model.IncomingEnvelope
	if err := json.NewDecoder(io.LimitReader(r.Body, maxEnvelopeBytes)).Decode(&env); err != nil {
		rejectedEnvelopes.WithLabelValues("bad_payload").Inc()
		http.Error(w, "Invalid Payload", http.StatusBadRequest)
		return
	}
	if !env.Type.Valid() || env.App == "" || len(env.Info) == 0 {
		rejectedEnvelopes.WithLabelValues("bad_envelope").Inc()
		http.Error(w, "Invalid Envelope", http.StatusBadRequest)
		return
	}

	// middleware.RealIP has already rewritten RemoteAddr when behind a proxy.
	record := model.Record{
		ID:         uuid.NewString(),
		ReceivedAt: time.Now(),
		ClientIP:   r.RemoteAddr,
		ClientID:   clientID,
		App:        env.App,
		Client:     env.Client,
		Type:       env.Type,
		Info:       env.Info,
	}
	if record.Client == nil {
		record.Client = map[string]string{}
	}

	if err := h.Broker.Publish(r.Context(), []model.Record{record}); err != nil {
		rejectedEnvelopes.WithLabelValues("broker").Inc()
		http.Error(w, "Failed to ingest envelope", http.StatusInternalServerError)
		return
	}
	receivedEnvelopes.WithLabelValues(string(record.Type)).Inc()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(acceptedResponse{Status: "accepted", ID: record.ID})
}

type acceptedResponse struct {
	Status string `json:"status"`
	ID     string `json:"id"`
}
