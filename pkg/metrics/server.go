package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/cuemby/dcdc/pkg/log"
)

// Server exposes the metrics and health endpoints over HTTP:
// /metrics (Prometheus exposition), /health, /ready, and /live.
type Server struct {
	httpServer *http.Server
}

// NewServer creates the metrics/health HTTP server bound to addr. It does
// not start listening until Start is called.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", HealthHandler())
	mux.HandleFunc("/ready", ReadyHandler())
	mux.HandleFunc("/live", LivenessHandler())

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start serves HTTP until Stop is called. It blocks; callers run it on its
// own goroutine. A server shut down via Stop returns nil.
func (s *Server) Start() error {
	log.Logger.Info().
		Str("component", "metrics").
		Str("address", s.httpServer.Addr).
		Msg("starting metrics server")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts the HTTP server down, waiting for in-flight
// requests up to the context deadline.
func (s *Server) Stop(ctx context.Context) error {
	log.Logger.Info().
		Str("component", "metrics").
		Msg("stopping metrics server")

	return s.httpServer.Shutdown(ctx)
}
