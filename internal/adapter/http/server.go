package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/quake-map-service/internal/adapter/geojson"
	"github.com/couchcryptid/quake-map-service/internal/adapter/leaflet"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
)

// SnapshotSource builds one snapshot of the feed per call.
type SnapshotSource interface {
	sharedobs.ReadinessChecker
	Snapshot(ctx context.Context) (domain.Snapshot, error)
}

// PageRenderer writes a map scene as HTML.
type PageRenderer interface {
	Render(w io.Writer, s leaflet.Scene) error
}

// Server exposes the map page, the marker API, and health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	source     SnapshotSource
	renderer   PageRenderer
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with /, /api/earthquakes, /healthz, /readyz, and /metrics routes.
func NewServer(addr string, source SnapshotSource, renderer PageRenderer, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		source:   source,
		renderer: renderer,
		logger:   logger,
		metrics:  metrics,
	}

	mux.HandleFunc("GET /{$}", s.handleMap)
	mux.HandleFunc("GET /api/earthquakes", s.handleEarthquakes)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(source))
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

// handleMap fetches the feed once and renders the map page.
func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, leaflet.BuildScene(snap.Markers, snap.FetchedAt)); err != nil {
		s.metrics.RenderErrors.Inc()
		s.logger.Error("render map page failed", "error", err)
		http.Error(w, "failed to render map", http.StatusInternalServerError)
		return
	}
	s.metrics.PagesRendered.Inc()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// handleEarthquakes returns the snapshot's markers as GeoJSON.
func (s *Server) handleEarthquakes(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshot(w, r)
	if !ok {
		return
	}

	data, err := geojson.Marshal(snap)
	if err != nil {
		s.logger.Error("encode markers failed", "error", err)
		http.Error(w, "failed to encode markers", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) (domain.Snapshot, bool) {
	snap, err := s.source.Snapshot(r.Context())
	if err == nil {
		return snap, true
	}

	var fe *domain.FeedError
	if errors.As(err, &fe) {
		http.Error(w, "earthquake feed unavailable", http.StatusBadGateway)
		return domain.Snapshot{}, false
	}
	s.logger.Error("snapshot failed", "error", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
	return domain.Snapshot{}, false
}
