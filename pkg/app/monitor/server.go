// Package monitor serves health and Prometheus metrics while a long command runs.
package monitor

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/glipgg/btx-ops/pkg/app/httpserver"
	"github.com/glipgg/btx-ops/pkg/config"
)

const (
	defaultGracefulShutdownTimeout = 5 * time.Second
	defaultHTTPMiddlewareTimeout   = 10 * time.Second
	defaultHTTPReadTimeout         = 5 * time.Second
	defaultHTTPWriteTimeout        = 10 * time.Second
	defaultHTTPIdleTimeout         = 60 * time.Second
)

// Server exposes /health, /ready and /metrics
type Server struct {
	cfg    config.MonitoringConfig
	logger *zap.Logger
	ready  atomic.Bool
}

// NewServer creates a monitoring server
func NewServer(cfg config.MonitoringConfig, logger *zap.Logger) *Server {
	return &Server{cfg: cfg, logger: logger}
}

// SetReady flips the readiness probe
func (s *Server) SetReady(ready bool) {
	s.ready.Store(ready)
}

// Router builds the HTTP handler
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(defaultHTTPMiddlewareTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/ready", func(w http.ResponseWriter, _ *http.Request) {
		if !s.ready.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("NOT_READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	})

	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Start serves in the background until ctx is cancelled or the returned stop is called.
// stop waits for the graceful shutdown and returns its error. When monitoring is
// disabled Start does nothing and stop returns nil.
func (s *Server) Start(ctx context.Context) (stop func() error) {
	if !s.cfg.Enabled {
		return func() error { return nil }
	}

	srv := &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s.Router(),
		ReadTimeout:  defaultHTTPReadTimeout,
		WriteTimeout: defaultHTTPWriteTimeout,
		IdleTimeout:  defaultHTTPIdleTimeout,
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- httpserver.ServeAndWait(ctx, s.logger, srv, defaultGracefulShutdownTimeout)
	}()

	return func() error {
		cancel()
		return <-done
	}
}
