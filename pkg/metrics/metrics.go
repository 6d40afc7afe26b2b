// Package metrics provides Prometheus metrics for the riichirank service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace string
	buckets   []float64
	registry  prometheus.Registerer

	// Rating engine metrics.
	gamesRated      *prometheus.CounterVec
	gamesSkipped    *prometheus.CounterVec
	passDuration    *prometheus.HistogramVec
	passesCompleted *prometheus.CounterVec
	playersTracked  prometheus.Gauge

	// Import pipeline metrics.
	importBatches prometheus.Counter
	importRows    prometheus.Counter
	duplicateRows prometheus.Counter
	rejectedRows  prometheus.Counter

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace overrides the metric namespace.
func WithNamespace(ns string) Option {
	return func(m *Manager) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithHistogramBuckets overrides the duration histogram buckets.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// WithRegistry sets the registerer collectors are attached to.
func WithRegistry(r prometheus.Registerer) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// customRegistry avoids pulling in the default Go process collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "riichirank",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)

	m.gamesRated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "games_rated_total",
		Help:      "Games folded into the belief store, per model",
	}, []string{"model"})

	m.gamesSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "games_skipped_total",
		Help:      "Malformed games skipped under the lenient policy, per model",
	}, []string{"model"})

	m.passDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "rating_pass_duration_seconds",
		Help:      "Duration of a full rating pass over the game history",
		Buckets:   m.buckets,
	}, []string{"model"})

	m.passesCompleted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "rating_passes_total",
		Help:      "Completed rating passes, per model",
	}, []string{"model"})

	m.playersTracked = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "players_tracked",
		Help:      "Distinct players known to the record store",
	})

	m.importBatches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "import_batches_total",
		Help:      "Score sheet import batches processed",
	})

	m.importRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "import_rows_total",
		Help:      "Score sheet rows imported",
	})

	m.duplicateRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "import_rows_duplicate_total",
		Help:      "Score sheet rows dropped as duplicates",
	})

	m.rejectedRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "import_rows_rejected_total",
		Help:      "Score sheet rows rejected during reconciliation",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request latency by endpoint, method and status",
		Buckets:   m.buckets,
	}, []string{"endpoint", "method", "status"})

	return m
}

// GetRegistry exposes the custom registry for the /healthz scrape handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers on the global manager.

// RecordGameRated counts one game folded into a model's belief store.
func RecordGameRated(model string) {
	globalManager.gamesRated.WithLabelValues(model).Inc()
}

// RecordGameSkipped counts one malformed game skipped under lenient policy.
func RecordGameSkipped(model string) {
	globalManager.gamesSkipped.WithLabelValues(model).Inc()
}

// RecordRatingPass records the outcome of a completed rating pass.
func RecordRatingPass(model string, seconds float64) {
	globalManager.passesCompleted.WithLabelValues(model).Inc()
	globalManager.passDuration.WithLabelValues(model).Observe(seconds)
}

// UpdatePlayersTracked sets the distinct player gauge.
func UpdatePlayersTracked(n int) {
	globalManager.playersTracked.Set(float64(n))
}

// RecordImportBatch counts one import batch.
func RecordImportBatch() {
	globalManager.importBatches.Inc()
}

// RecordImportRow counts one imported score sheet row.
func RecordImportRow() {
	globalManager.importRows.Inc()
}

// RecordDuplicateRow counts one duplicate score sheet row.
func RecordDuplicateRow() {
	globalManager.duplicateRows.Inc()
}

// RecordRejectedRow counts one row rejected during reconciliation.
func RecordRejectedRow() {
	globalManager.rejectedRows.Inc()
}

// RecordHTTPRequest counts one request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes request latency in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}
