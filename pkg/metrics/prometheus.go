// Package metrics provides Prometheus metrics for the DUEL ranking
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics
	comparisonsRecorded *prometheus.CounterVec
	undosTotal          prometheus.Counter
	redosTotal          prometheus.Counter

	// Session and store health
	activeSessions  prometheus.Gauge
	listItems       *prometheus.GaugeVec
	saveLatency     prometheus.Histogram
	selectorLatency prometheus.Histogram

	// HTTP performance
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error tracking
	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "duel",
		subsystem:        "ranker",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.comparisonsRecorded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "comparisons_recorded_total",
		Help:      "Total number of recorded comparisons by outcome",
	}, []string{"outcome"})

	m.undosTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "undos_total",
		Help:      "Total number of undone comparisons",
	})

	m.redosTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "redos_total",
		Help:      "Total number of reapplied comparisons",
	})

	m.activeSessions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "active_sessions",
		Help:      "Number of ranking sessions currently held in memory",
	})

	m.listItems = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "list_items",
		Help:      "Number of items tracked per list",
	}, []string{"list"})

	m.saveLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "save_latency_milliseconds",
		Help:      "Histogram of atomic rating-file save latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.selectorLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "selector_latency_milliseconds",
		Help:      "Histogram of pair-selection latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "Total errors by component and kind",
	}, []string{"component", "kind"})
}

// GetRegistry returns the registry backing the global manager, for serving
// /healthz.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers operating on the global manager.

// RecordComparison counts one recorded comparison with the given outcome.
func RecordComparison(outcome string) {
	globalManager.comparisonsRecorded.WithLabelValues(outcome).Inc()
}

// RecordUndo counts one undone comparison.
func RecordUndo() {
	globalManager.undosTotal.Inc()
}

// RecordRedo counts one reapplied comparison.
func RecordRedo() {
	globalManager.redosTotal.Inc()
}

// UpdateActiveSessions sets the in-memory session gauge.
func UpdateActiveSessions(n int) {
	globalManager.activeSessions.Set(float64(n))
}

// UpdateListItems sets the item count gauge for a list.
func UpdateListItems(list string, n int) {
	globalManager.listItems.WithLabelValues(list).Set(float64(n))
}

// RecordSaveLatency observes one save duration in milliseconds.
func RecordSaveLatency(ms float64) {
	globalManager.saveLatency.Observe(ms)
}

// RecordSelectorLatency observes one pair-selection duration in
// milliseconds.
func RecordSelectorLatency(ms float64) {
	globalManager.selectorLatency.Observe(ms)
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request duration in
// milliseconds.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// RecordErrorByComponent counts one error for a component/kind pair.
func RecordErrorByComponent(component, kind string) {
	globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
}
