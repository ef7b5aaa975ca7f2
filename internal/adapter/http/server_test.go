package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpadapter "github.com/couchcryptid/quake-map-service/internal/adapter/http"
	"github.com/couchcryptid/quake-map-service/internal/adapter/leaflet"
	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSource struct {
	snap     domain.Snapshot
	err      error
	readyErr error
}

func (m *mockSource) CheckReadiness(_ context.Context) error { return m.readyErr }

func (m *mockSource) Snapshot(_ context.Context) (domain.Snapshot, error) {
	return m.snap, m.err
}

type failingRenderer struct{}

func (failingRenderer) Render(io.Writer, leaflet.Scene) error { return errors.New("template broke") }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testSnapshot() domain.Snapshot {
	return domain.Snapshot{
		FetchedAt: time.Date(2023, time.November, 15, 0, 0, 0, 0, time.UTC),
		Markers: []domain.Marker{{
			ID:          "us7000test",
			Position:    domain.LatLng{Lat: 35, Lng: -100},
			Radius:      420000,
			FillColor:   domain.ColorModerate,
			Description: domain.Describe("10km NE of Testville", 1700000000000, 4.2, 45, time.UTC),
		}},
	}
}

func newTestServer(t *testing.T, src *mockSource) (*httpadapter.Server, *observability.Metrics) {
	t.Helper()
	renderer, err := leaflet.NewRenderer()
	require.NoError(t, err)
	metrics := observability.NewMetricsForTesting()
	return httpadapter.NewServer(":0", src, renderer, discardLogger(), metrics), metrics
}

func get(srv http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestMapPageReturns200(t *testing.T) {
	srv, metrics := newTestServer(t, &mockSource{snap: testSnapshot()})

	rec := get(srv, "/")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "leaflet.js")
	assert.Contains(t, rec.Body.String(), "Testville")
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.PagesRendered), 1e-9)
}

func TestMapPageReturns502OnFeedError(t *testing.T) {
	src := &mockSource{err: &domain.FeedError{Kind: domain.FeedErrorNetwork, URL: "http://feed", Err: errors.New("dial tcp")}}
	srv, _ := newTestServer(t, src)

	rec := get(srv, "/")

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "earthquake feed unavailable")
}

func TestMapPageReturns500OnUnexpectedError(t *testing.T) {
	srv, _ := newTestServer(t, &mockSource{err: errors.New("something else")})

	rec := get(srv, "/")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestMapPageReturns500OnRenderError(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	srv := httpadapter.NewServer(":0", &mockSource{snap: testSnapshot()}, failingRenderer{}, discardLogger(), metrics)

	rec := get(srv, "/")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.InDelta(t, 1.0, testutil.ToFloat64(metrics.RenderErrors), 1e-9)
}

func TestUnknownPathReturns404(t *testing.T) {
	srv, _ := newTestServer(t, &mockSource{snap: testSnapshot()})

	rec := get(srv, "/does-not-exist")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEarthquakesReturnsGeoJSON(t *testing.T) {
	srv, _ := newTestServer(t, &mockSource{snap: testSnapshot()})

	rec := get(srv, "/api/earthquakes")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	var body struct {
		Type     string `json:"type"`
		Features []struct {
			ID         string         `json:"id"`
			Geometry   map[string]any `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "FeatureCollection", body.Type)
	require.Len(t, body.Features, 1)
	assert.Equal(t, "us7000test", body.Features[0].ID)
	assert.Equal(t, []any{-100.0, 35.0}, body.Features[0].Geometry["coordinates"])
	assert.Equal(t, "#FFF176", body.Features[0].Properties["fill_color"])
}

func TestEarthquakesReturns502OnFeedError(t *testing.T) {
	srv, _ := newTestServer(t, &mockSource{err: &domain.FeedError{Kind: domain.FeedErrorPayload, Err: errors.New("bad json")}})

	rec := get(srv, "/api/earthquakes")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHealthzReturns200(t *testing.T) {
	srv, _ := newTestServer(t, &mockSource{})

	rec := get(srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	srv, _ := newTestServer(t, &mockSource{})

	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ready", body["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv, _ := newTestServer(t, &mockSource{readyErr: fmt.Errorf("no snapshot has been built yet")})

	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "no snapshot has been built yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &mockSource{})

	rec := get(srv, "/metrics")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestReadyzReportsFeedFailure(t *testing.T) {
	feedErr := &domain.FeedError{Kind: domain.FeedErrorStatus, URL: "http://feed", StatusCode: http.StatusServiceUnavailable, Err: errors.New("maintenance")}
	srv, _ := newTestServer(t, &mockSource{readyErr: feedErr})

	rec := get(srv, "/readyz")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, feedErr.Error(), body["error"])
}
