// Package config holds the forwarder configuration: where envelopes go,
// which application they belong to, and which host environment they
// describe.
//
// A Config is built once at startup and passed to the forwarder. Replacing
// it means building a new one; fields are never merged.
//
// Sources, lowest priority first when combined by the CLI:
//  1. YAML file (Load)
//  2. Environment variables THOTH_SERVER, THOTH_APP, THOTH_TO_CONSOLE (FromEnv)
//  3. Command line flags (Options.AddFlags)
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/predatorx7/thoth/pkg/fingerprint"
)

const (
	EnvServer    = "THOTH_SERVER"
	EnvApp       = "THOTH_APP"
	EnvToConsole = "THOTH_TO_CONSOLE"
)

// ErrIncomplete is wrapped by Validate when a required field is unset.
var ErrIncomplete = errors.New("incomplete configuration")

// Config is what the forwarder reads on every dispatch.
type Config struct {
	Endpoint        string
	AppName         string
	Client          fingerprint.Environment
	MirrorToConsole bool
}

// New is the positional form: endpoint, application name, host environment
// and the console mirroring flag.
func New(endpoint, appName string, client fingerprint.Environment, mirrorToConsole bool) *Config {
	if fingerprint.Absent(client) {
		client = nil
	}
	return &Config{
		Endpoint:        endpoint,
		AppName:         appName,
		Client:          client,
		MirrorToConsole: mirrorToConsole,
	}
}

// Options is the named-field form. Zero fields stay zero in the Config.
type Options struct {
	Server    string              `yaml:"server"`
	App       string              `yaml:"app"`
	Client    *fingerprint.Static `yaml:"client"`
	ToConsole bool                `yaml:"toConsole"`
}

// FromOptions builds a Config from named fields.
func FromOptions(o Options) *Config {
	cfg := &Config{
		Endpoint:        o.Server,
		AppName:         o.App,
		MirrorToConsole: o.ToConsole,
	}
	// Keep Client a nil interface when no environment was given.
	if o.Client != nil {
		cfg.Client = o.Client
	}
	return cfg
}

// Load reads Options from a YAML file:
//
//	server: https://collect.example/log
//	app: myapp
//	toConsole: false
//	client:
//	  userAgent: UA/1.0
//	  platform: Linux x86_64
func Load(path string) (Options, error) {
	var o Options
	data, err := os.ReadFile(path)
	if err != nil {
		return o, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &o); err != nil {
		return o, errors.Wrapf(err, "parse config %s", path)
	}
	return o, nil
}

// FromEnv overlays the THOTH_* environment variables onto o. Unset
// variables leave the existing value alone.
func FromEnv(o Options) (Options, error) {
	if v := os.Getenv(EnvServer); v != "" {
		o.Server = v
	}
	if v := os.Getenv(EnvApp); v != "" {
		o.App = v
	}
	if v := os.Getenv(EnvToConsole); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return o, errors.Wrapf(err, "parse %s", EnvToConsole)
		}
		o.ToConsole = b
	}
	return o, nil
}

// AddFlags binds the option fields to fs. Values already in o become the
// flag defaults, so call it after Load and FromEnv.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Server, "server", o.Server, "collection endpoint URL envelopes are posted to")
	fs.StringVar(&o.App, "app", o.App, "application name reported in every envelope")
	fs.BoolVar(&o.ToConsole, "to-console", o.ToConsole, "also write every forwarded call to the local log")
}

// Validate reports the first missing required field. Dispatch does not
// call it; an incomplete Config is rejected at send time instead.
func (c *Config) Validate() error {
	switch {
	case c == nil:
		return errors.Wrap(ErrIncomplete, "no configuration")
	case c.Endpoint == "":
		return errors.Wrap(ErrIncomplete, "endpoint is empty")
	case c.AppName == "":
		return errors.Wrap(ErrIncomplete, "app name is empty")
	case fingerprint.Absent(c.Client):
		return errors.Wrap(ErrIncomplete, "client environment is missing")
	}
	return nil
}

// Ready reports whether every field required for sending is set.
func (c *Config) Ready() bool {
	return c != nil && c.Endpoint != "" && c.AppName != "" && !fingerprint.Absent(c.Client)
}
