// Package transport delivers serialized envelopes to the collection
// endpoint.
//
// Delivery is fire-and-forget: Send returns before the request completes,
// and the outcome (network error, any status code, the response body) is
// never reported back or retried. Telemetry failures must not reach the
// application. Send must stay non-blocking.
package transport

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"k8s.io/klog/v2"
)

// ContentType is sent with every envelope. text/plain keeps browser
// collectors from requiring a CORS preflight.
const ContentType = "text/plain"

// Transport sends one envelope body to endpoint without waiting.
type Transport interface {
	Send(endpoint string, body []byte)
}

// Func adapts a plain function to Transport.
type Func func(endpoint string, body []byte)

func (f Func) Send(endpoint string, body []byte) { f(endpoint, body) }

// HTTP posts envelopes on a detached goroutine per call.
type HTTP struct {
	Client *http.Client
	Log    logr.Logger

	mu       sync.Mutex
	inflight int
	idle     chan struct{} // closed when inflight drops to zero
}

// NewHTTP returns an HTTP transport. A nil client gets a default one whose
// transport is wrapped with otelhttp, so trace context is propagated when
// the process has an OpenTelemetry propagator installed.
func NewHTTP(client *http.Client) *HTTP {
	if client == nil {
		client = NewTracedClient(nil)
	}
	return &HTTP{
		Client: client,
		Log:    klog.Background().WithName("transport"),
	}
}

// NewTracedClient wraps base (http.DefaultTransport when nil) in otelhttp.
func NewTracedClient(base http.RoundTripper) *http.Client {
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Transport: otelhttp.NewTransport(base),
	}
}

// Send issues a POST of body to endpoint and returns immediately.
func (t *HTTP) Send(endpoint string, body []byte) {
	req, err := http.NewRequest(http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		t.Log.V(4).Info("Dropping envelope, bad endpoint", "endpoint", endpoint, "error", err.Error())
		return
	}
	req.Header.Set("Content-Type", ContentType)

	t.mu.Lock()
	if t.inflight == 0 {
		t.idle = make(chan struct{})
	}
	t.inflight++
	t.mu.Unlock()

	go t.do(req)
}

// Flush waits up to timeout for requests already issued to finish and
// reports whether they all did. It is meant for short-lived processes
// that would otherwise exit before their envelopes leave; Send itself
// never waits. Sends issued while Flush is waiting are waited for too.
func (t *HTTP) Flush(timeout time.Duration) bool {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()

	for {
		t.mu.Lock()
		if t.inflight == 0 {
			t.mu.Unlock()
			return true
		}
		idle := t.idle
		t.mu.Unlock()

		select {
		case <-idle:
		case <-deadline.C:
			return false
		}
	}
}

func (t *HTTP) finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inflight--
	if t.inflight == 0 {
		close(t.idle)
	}
}

func (t *HTTP) do(req *http.Request) {
	defer t.finish()

	resp, err := t.Client.Do(req)
	if err != nil {
		t.Log.V(4).Info("Envelope delivery failed", "endpoint", req.URL.Redacted(), "error", err.Error())
		return
	}
	// Drain so the connection can be reused; the body itself is ignored.
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	t.Log.V(5).Info("Envelope delivered", "endpoint", req.URL.Redacted(), "status", resp.StatusCode)
}
