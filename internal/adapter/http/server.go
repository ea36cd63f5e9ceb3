package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/nvdata-service/internal/domain"
	"github.com/couchcryptid/nvdata-service/internal/observability"
	"github.com/couchcryptid/nvdata-service/internal/regions"
	"github.com/couchcryptid/nvdata-service/internal/service"
)

// API answers the public JSON queries.
type API interface {
	Region(ctx context.Context, regionID string) domain.BulletinRecord
	Coordinates(ctx context.Context, x, y string) ([]domain.BulletinRecord, bool)
	Navigation(ctx context.Context) *regions.Node
	Advisory(ctx context.Context) domain.AdvisoryRecord
	Index(ctx context.Context) service.Links
}

// Server exposes the bulletin API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	api        API
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the API routes and /healthz, /readyz, and /metrics.
func NewServer(addr string, api API, ready sharedobs.ReadinessChecker, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      accessLog(logger, metrics)(mux),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		api:    api,
		logger: logger,
	}

	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /aineva/{region}", s.handleRegion)
	mux.HandleFunc("GET /aineva/coordinates/{x}/{y}", s.handleCoordinates)
	mux.HandleFunc("GET /aineva-navigation", s.handleNavigation)
	mux.HandleFunc("GET "+service.AdvisoryPath, s.handleAdvisory)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
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

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.api.Index(r.Context()))
}

func (s *Server) handleRegion(w http.ResponseWriter, r *http.Request) {
	rec := s.api.Region(r.Context(), r.PathValue("region"))
	if rec.IsZero() {
		sharedobs.WriteJSON(w, http.StatusOK, struct{}{})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCoordinates(w http.ResponseWriter, r *http.Request) {
	records, matched := s.api.Coordinates(r.Context(), r.PathValue("x"), r.PathValue("y"))
	if !matched {
		sharedobs.WriteJSON(w, http.StatusOK, []domain.BulletinRecord{})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, service.LimitResults(records, maxResults(r)))
}

// maxResults reads the max_results query parameter. Missing or non-integer
// values read as 0, which disables the limit.
func maxResults(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("max_results"))
	if err != nil {
		return 0
	}
	return n
}

func (s *Server) handleNavigation(w http.ResponseWriter, r *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.api.Navigation(r.Context()))
}

func (s *Server) handleAdvisory(w http.ResponseWriter, r *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.api.Advisory(r.Context()))
}
