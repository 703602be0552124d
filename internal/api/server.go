// Package api serves reconciliations over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cstore-prefill/internal/common/logger"
	"cstore-prefill/internal/models"
)

// Reconciler is the reconciliation entry point the API fronts.
type Reconciler interface {
	Reconcile(ctx context.Context, address string) (*models.ReconcileResult, error)
}

// ReadinessCheck reports whether a dependency can take traffic.
type ReadinessCheck func(ctx context.Context) error

type Server struct {
	router     *mux.Router
	reconciler Reconciler
	checks     map[string]ReadinessCheck
	logger     logger.Logger
}

type Option func(*Server)

// WithReadinessCheck adds a named dependency to GET /ready.
func WithReadinessCheck(name string, check ReadinessCheck) Option {
	return func(s *Server) {
		s.checks[name] = check
	}
}

func NewServer(reconciler Reconciler, log logger.Logger, opts ...Option) *Server {
	s := &Server{
		reconciler: reconciler,
		checks:     make(map[string]ReadinessCheck),
		logger:     log.WithFields(map[string]interface{}{"component": "api"}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/prefill", s.handlePrefill).Methods(http.MethodPost)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/ready", s.handleReady).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	s.router.Use(requestID)
	s.router.Use(s.requestLogging)
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}
