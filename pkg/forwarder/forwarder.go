// Package forwarder turns application log calls into envelopes and posts
// them to a collection endpoint.
//
//	cfg := config.New("https://collect.example/log", "myapp", fingerprint.Host(), false)
//	fwd := forwarder.New(cfg)
//	fwd.Info("hello", 42)
//
// Every entry point returns (sent, err). sent is false when the call was a
// no-op (no arguments, a passing assertion) or the configuration is
// incomplete. err is non-nil only when an argument cannot be encoded as
// JSON; that is a bug in the caller and is returned rather than dropped.
package forwarder

import (
	"encoding/json"
	"sync"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/predatorx7/thoth/pkg/config"
	"github.com/predatorx7/thoth/pkg/fingerprint"
	"github.com/predatorx7/thoth/pkg/model"
	"github.com/predatorx7/thoth/pkg/sanitize"
	"github.com/predatorx7/thoth/pkg/transport"
)

// ErrNotInitialized is logged when a call arrives before an endpoint, app
// name and client environment have all been configured.
var ErrNotInitialized = errors.New("no server, app, or client info provided")

// Forwarder builds and sends envelopes for one configuration.
type Forwarder struct {
	mu        sync.RWMutex
	cfg       config.Config
	transport transport.Transport
	log       logr.Logger
}

// Option customizes a Forwarder.
type Option func(*Forwarder)

// WithTransport replaces the default HTTP transport.
func WithTransport(t transport.Transport) Option {
	return func(f *Forwarder) {
		f.transport = t
	}
}

// WithLogger sets the local diagnostic logger. Defaults to klog.
func WithLogger(l logr.Logger) Option {
	return func(f *Forwarder) {
		f.log = l
	}
}

// New returns a Forwarder for cfg. A nil cfg is allowed and behaves as an
// uninitialized forwarder until Reconfigure is called.
func New(cfg *config.Config, opts ...Option) *Forwarder {
	f := &Forwarder{
		log: klog.Background().WithName("thoth"),
	}
	if cfg != nil {
		f.cfg = *cfg
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.transport == nil {
		f.transport = transport.NewHTTP(nil)
	}
	return f
}

// Reconfigure replaces the whole configuration. Nothing from the previous
// one is kept.
func (f *Forwarder) Reconfigure(cfg *config.Config) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cfg == nil {
		f.cfg = config.Config{}
		return
	}
	f.cfg = *cfg
}

// Config returns a copy of the current configuration.
func (f *Forwarder) Config() config.Config {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.cfg
}

// Build assembles the envelope for one call. data must already be
// sanitized and, for trace calls, end with the stack frames.
func Build(cfg config.Config, level model.LogType, data []any) model.Envelope {
	return model.Envelope{
		App:    cfg.AppName,
		Client: fingerprint.Collect(cfg.Client),
		Type:   level,
		Info:   model.NewInfo(data),
	}
}

// Dispatch sanitizes args, wraps them in an envelope and hands it to the
// transport. It does not wait for delivery.
func (f *Forwarder) Dispatch(level model.LogType, args []any) (bool, error) {
	return f.dispatch(level, args, nil)
}

func (f *Forwarder) dispatch(level model.LogType, args []any, frames []string) (bool, error) {
	cfg := f.Config()
	if !cfg.Ready() {
		f.log.Error(ErrNotInitialized, "Dropping log call, configure the forwarder first", "type", level)
		return false, nil
	}

	data, err := sanitize.Arguments(args)
	if err != nil {
		return false, err
	}
	if level == model.LogTypeTrace {
		if frames == nil {
			frames = []string{}
		}
		data = append(data, frames)
	}

	env := Build(cfg, level, data)
	body, err := json.Marshal(env)
	if err != nil {
		return false, errors.Wrap(err, "encode envelope")
	}

	if cfg.MirrorToConsole {
		f.mirror(env)
	}

	f.transport.Send(cfg.Endpoint, body)
	return true, nil
}

func (f *Forwarder) mirror(env model.Envelope) {
	switch env.Type {
	case model.LogTypeError, model.LogTypeAssert:
		f.log.Error(nil, "Forwarded", "app", env.App, "type", env.Type, "info", env.Info.Value())
	default:
		f.log.Info("Forwarded", "app", env.App, "type", env.Type, "info", env.Info.Value())
	}
}
