package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/quake-map-service/internal/domain"
	"github.com/couchcryptid/quake-map-service/internal/observability"
)

// FeedFetcher issues one fetch of the earthquake feed.
type FeedFetcher interface {
	Fetch(ctx context.Context) ([]domain.RawFeature, error)
}

// Publisher fans out a built snapshot to an external sink.
type Publisher interface {
	Publish(ctx context.Context, snap domain.Snapshot) error
}

// Service runs the fetch -> build -> publish sequence for one page load.
type Service struct {
	fetcher   FeedFetcher
	publisher Publisher
	location  *time.Location
	logger    *slog.Logger
	metrics   *observability.Metrics

	mu      sync.Mutex
	lastErr error
	ran     bool
}

// New creates a Service. publisher may be nil to disable fan-out; loc is the
// zone used for popup dates.
func New(fetcher FeedFetcher, publisher Publisher, loc *time.Location, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		fetcher:   fetcher,
		publisher: publisher,
		location:  loc,
		logger:    logger,
		metrics:   metrics,
	}
}

// Snapshot fetches the feed once and derives its markers. A failed fetch is
// returned as-is; there is no retry. Features missing required fields are
// skipped and counted. Publish failures are logged and do not fail the snapshot.
func (s *Service) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	start := time.Now()
	features, err := s.fetcher.Fetch(ctx)
	s.metrics.FeedFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.FeedFetches.WithLabelValues(fetchOutcome(err)).Inc()
		s.logger.Error("feed fetch failed", "error", err)
		s.record(err)
		return domain.Snapshot{}, err
	}
	s.metrics.FeedFetches.WithLabelValues("success").Inc()
	s.metrics.FeedFeatures.Observe(float64(len(features)))

	markers, buildErr := domain.BuildMarkers(features, s.location)
	skipped := len(features) - len(markers)
	if buildErr != nil {
		s.metrics.FeatureErrors.Add(float64(skipped))
		s.logger.Warn("features skipped", "skipped", skipped, "error", buildErr)
	}
	s.metrics.MarkersBuilt.Add(float64(len(markers)))
	s.metrics.SnapshotSize.Set(float64(len(markers)))

	snap := domain.Snapshot{
		Markers:   markers,
		Skipped:   skipped,
		FetchedAt: domain.Now(),
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, snap); err != nil {
			s.metrics.PublishErrors.Inc()
			s.logger.Warn("publish markers failed", "error", err, "markers", len(markers))
		} else {
			s.metrics.MarkersPublished.Add(float64(len(markers)))
		}
	}

	s.logger.Info("snapshot built",
		"features", len(features),
		"markers", len(markers),
		"skipped", skipped,
		"duration", time.Since(start),
	)
	s.record(nil)
	return snap, nil
}

// CheckReadiness returns nil once a snapshot has been built and the most
// recent one succeeded.
func (s *Service) CheckReadiness(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.ran {
		return errors.New("no snapshot has been built yet")
	}
	return s.lastErr
}

func (s *Service) record(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ran = true
	s.lastErr = err
}

func fetchOutcome(err error) string {
	var fe *domain.FeedError
	if errors.As(err, &fe) {
		return string(fe.Kind)
	}
	return "error"
}
