package main

import (
	"context"
	goflag "flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"github.com/predatorx7/thoth/pkg/auth"
	"github.com/predatorx7/thoth/pkg/broker"
	"github.com/predatorx7/thoth/pkg/subscriber/file"
)

func main() {
	klog.InitFlags(nil)
	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)

	port := pflag.String("port", envOr("PORT", "8080"), "port the ingestion service listens on")
	authSecret := pflag.String("auth-secret", os.Getenv("AUTH_SECRET"), "secret used to verify API keys")
	enableFile := pflag.Bool("enable-file-logging", os.Getenv("ENABLE_FILE_LOGGING") == "true", "append received envelopes to per-app files")
	fileDir := pflag.String("file-log-dir", envOr("FILE_LOG_DIR", "./logs"), "directory for per-app envelope files")
	pflag.Parse()
	defer klog.Flush()

	pflag.VisitAll(func(flag *pflag.Flag) {
		if flag.Name != "auth-secret" {
			klog.V(2).Infof("FLAG: --%s=%q", flag.Name, flag.Value)
		}
	})

	// 1. Initialize Broker (In-Memory for now)
	logBroker := broker.NewMemoryBroker()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1.5 Start Subscribers
	if *enableFile {
		fileSub := file.NewSubscriber(logBroker, *fileDir)
		go func() {
			if err := fileSub.Start(ctx); err != nil && err != context.Canceled {
				klog.Errorf("File subscriber exited with error: %v", err)
			}
		}()
		klog.V(0).Infof("File logging enabled (dir: %s)", *fileDir)
	}

	// 2. Setup Auth Secret
	if *authSecret == "" {
		// Only for dev, ideally strict
		klog.Warning("AUTH_SECRET not set, using default 'dev-secret'")
		*authSecret = "dev-secret"
	}
	secret := []byte(*authSecret)
	verifier := func(key string) (bool, string, error) {
		return auth.VerifyAPIKey(key, secret)
	}

	// 3. Metrics + Router
	reg := prometheus.NewRegistry()
	registerMetrics(reg, logBroker)

	handler := NewHandler(logBroker, verifier)
	r := newRouter(handler, logBroker, reg)

	// 4. Start Server
	addr := ":" + *port
	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		klog.V(0).Infof("Starting Ingestion Service on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			klog.Fatalf("listen: %s", err)
		}
	}()

	// 5. Graceful Shutdown
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		klog.Errorf("Server Shutdown: %v", err)
	}
	klog.V(0).Info("Server exiting")
}

func newRouter(h *Handler, b broker.Broker, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP) // To get correct ClientIP

	r.Post("/v1/logs", h.HandleLogs)
	r.Get("/status", HandleStatus(b))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
