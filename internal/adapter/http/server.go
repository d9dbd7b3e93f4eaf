package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/clim-settings-service/internal/clim"
	"github.com/couchcryptid/clim-settings-service/internal/observability"
)

// Server exposes the catalog, job submission, health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	settings   *clim.Settings
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the /v1 API plus /healthz, /readyz, and /metrics routes.
func NewServer(addr string, settings *clim.Settings, ready sharedobs.ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger) *Server {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		settings: settings,
		metrics:  metrics,
		logger:   logger,
	}

	r.Get("/healthz", sharedobs.LivenessHandler())
	r.Get("/readyz", sharedobs.ReadinessHandler(ready))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/variables", s.handleVariables)
		r.Get("/variables/{name}", s.handleVariable)
		r.Get("/experiments", s.handleCollections)
		r.Get("/experiments/{name}", s.handleCollection)
		r.Get("/constraints", s.handleConstraints)
		r.Get("/labels", s.handleLabels)
		r.Get("/plotargs/datasets", s.handleDatasetPlotArgs)
		r.Get("/plotargs/variables", s.handleVariablePlotArgs)
		r.Get("/shapes", s.handleShapes)
		r.Get("/shapes/{region}", s.handleShape)
		r.Post("/jobs/{routine}", s.handleSubmitJob)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // client may have gone away
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
