// Command thoth forwards a single log call to a collection endpoint.
//
//	thoth --server https://collect.example/log --app myapp info "hello" 42
//
// Settings come from --config (YAML), then THOTH_* environment variables,
// then flags.
package main

import (
	"errors"
	goflag "flag"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/predatorx7/thoth/pkg/config"
	"github.com/predatorx7/thoth/pkg/fingerprint"
	"github.com/predatorx7/thoth/pkg/forwarder"
	"github.com/predatorx7/thoth/pkg/transport"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	defer klog.Flush()

	fs := pflag.NewFlagSet("thoth", pflag.ContinueOnError)
	fs.AddGoFlagSet(klogFlags)
	fs.SetInterspersed(false)

	configPath := fs.String("config", "", "YAML file with server, app, toConsole and client settings")
	var flagOpts config.Options
	flagOpts.AddFlags(fs)
	wait := fs.Duration("wait", 5*time.Second, "how long to wait for the envelope to leave before exiting")
	if err := fs.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	opts, err := loadOptions(*configPath)
	if err != nil {
		return err
	}
	if fs.Changed("server") {
		opts.Server = flagOpts.Server
	}
	if fs.Changed("app") {
		opts.App = flagOpts.App
	}
	if fs.Changed("to-console") {
		opts.ToConsole = flagOpts.ToConsole
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return fmt.Errorf("usage: thoth [flags] <assert|error|info|log|table|trace|warn> [args...]")
	}

	if opts.Client == nil {
		opts.Client = fingerprint.Host()
	}
	cfg := config.FromOptions(opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	tr := transport.NewHTTP(nil)
	fwd := forwarder.New(cfg, forwarder.WithTransport(tr))

	sent, err := call(fwd, rest[0], rest[1:])
	if err != nil {
		return err
	}
	if !sent {
		klog.V(1).Info("Nothing forwarded")
		return nil
	}

	if !tr.Flush(*wait) {
		klog.Warningf("Envelope still in flight after %s, exiting anyway", *wait)
	}
	return nil
}

// loadOptions reads the config file, if any, and overlays the environment.
func loadOptions(path string) (config.Options, error) {
	var opts config.Options
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}
	return config.FromEnv(opts)
}
