package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/couchcryptid/unit-converter-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Converter runs conversions and reports readiness.
type Converter interface {
	Convert(ctx context.Context, req domain.Request) (domain.Result, error)
	Units(category domain.Category) ([]string, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the converter pages, the JSON API, and health, readiness
// and metrics endpoints.
type Server struct {
	httpServer *http.Server
	converter  Converter
	logger     *slog.Logger
}

// NewServer creates an HTTP server with page, API, /healthz, /readyz and /metrics routes.
func NewServer(addr string, conv Converter, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		converter: conv,
		logger:    logger,
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /{category}", s.handleForm)
	mux.HandleFunc("GET /result/{category}", s.handleResultPage)
	mux.HandleFunc("POST /result/{category}", s.handleResultSubmit)

	mux.HandleFunc("POST /api/convert/{category}", s.handleAPIConvert)
	mux.HandleFunc("GET /api/units/{category}", s.handleAPIUnits)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(conv))
	mux.Handle("GET /metrics", promhttp.Handler())

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

// writeJSON encodes v before committing the status, so an encoding failure
// still yields a well-formed 500 response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"Something went wrong. Please try again.","kind":"internal"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n')) //nolint:errcheck // best-effort response
}
