package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the map service.
type Metrics struct {
	FeedFetches       *prometheus.CounterVec // labels: outcome={success,network,status,payload}
	FeedFetchDuration prometheus.Histogram
	FeedFeatures      prometheus.Histogram

	MarkersBuilt  prometheus.Counter
	FeatureErrors prometheus.Counter
	SnapshotSize  prometheus.Gauge

	PagesRendered prometheus.Counter
	RenderErrors  prometheus.Counter

	MarkersPublished prometheus.Counter
	PublishErrors    prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FeedFetches,
		m.FeedFetchDuration,
		m.FeedFeatures,
		m.MarkersBuilt,
		m.FeatureErrors,
		m.SnapshotSize,
		m.PagesRendered,
		m.RenderErrors,
		m.MarkersPublished,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "feed_fetches_total",
			Help:      "Feed fetches by outcome.",
		}, []string{"outcome"}),
		FeedFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quakemap",
			Name:      "feed_fetch_duration_seconds",
			Help:      "Duration of a complete feed fetch and decode.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		FeedFeatures: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quakemap",
			Name:      "feed_features",
			Help:      "Number of features per fetched feed document.",
			Buckets:   []float64{0, 10, 50, 100, 250, 500, 1000, 2500, 5000},
		}),
		MarkersBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "markers_built_total",
			Help:      "Total markers derived from feed features.",
		}),
		FeatureErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "feature_errors_total",
			Help:      "Total features skipped for missing required fields.",
		}),
		SnapshotSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quakemap",
			Name:      "snapshot_markers",
			Help:      "Marker count of the most recent snapshot.",
		}),
		PagesRendered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "pages_rendered_total",
			Help:      "Total map pages rendered.",
		}),
		RenderErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "render_errors_total",
			Help:      "Total map page render failures.",
		}),
		MarkersPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "markers_published_total",
			Help:      "Total markers written to the Kafka topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "quakemap",
			Name:      "publish_errors_total",
			Help:      "Total failed marker publish batches.",
		}),
	}
}
