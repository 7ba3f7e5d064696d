// Package metrics provides Prometheus metrics for the scoring pipeline and
// its read API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Pipeline
	rowsNormalized  prometheus.Counter
	fieldDefaults   *prometheus.CounterVec
	loadsTotal      *prometheus.CounterVec
	loadDuration    prometheus.Histogram
	evaluations     prometheus.Gauge
	lastLoadUnix    prometheus.Gauge
	rankEstimations prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "brokerscore",
		subsystem:        "engine",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		enabled:          true,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.rowsNormalized = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rows_normalized_total",
		Help:        "Total number of source rows turned into evaluations",
		ConstLabels: labels,
	})

	m.fieldDefaults = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "field_defaults_total",
		Help:        "Fields that fell back to their default, by reason (missing or malformed)",
		ConstLabels: labels,
	}, []string{"reason"})

	m.loadsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "loads_total",
		Help:        "Dataset loads by outcome (ok, empty_dataset, acquisition_failure, error)",
		ConstLabels: labels,
	}, []string{"outcome"})

	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "load_duration_milliseconds",
		Help:        "Time to acquire, normalize and index one dataset",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.evaluations = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "evaluations",
		Help:        "Number of evaluations in the active dataset",
		ConstLabels: labels,
	})

	m.lastLoadUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "last_load_timestamp_seconds",
		Help:        "Unix time of the last successful load",
		ConstLabels: labels,
	})

	m.rankEstimations = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rank_estimations_total",
		Help:        "Ranks served from the degraded population-size estimate",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "requests_total",
		Help:        "HTTP requests by endpoint, method and status",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "http",
		Name:        "request_duration_milliseconds",
		Help:        "HTTP request latency in milliseconds",
		Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordRowNormalized increments the normalized rows counter.
func (m *Manager) RecordRowNormalized() {
	if m.enabled {
		m.rowsNormalized.Inc()
	}
}

// RecordFieldDefault counts a defaulted field by reason.
func (m *Manager) RecordFieldDefault(reason string) {
	if m.enabled {
		m.fieldDefaults.WithLabelValues(reason).Inc()
	}
}

// RecordLoad records one load attempt.
func (m *Manager) RecordLoad(outcome string, took time.Duration) {
	if !m.enabled {
		return
	}
	m.loadsTotal.WithLabelValues(outcome).Inc()
	m.loadDuration.Observe(float64(took.Milliseconds()))
}

// UpdateEvaluations sets the active dataset size and load time.
func (m *Manager) UpdateEvaluations(count int, at time.Time) {
	if !m.enabled {
		return
	}
	m.evaluations.Set(float64(count))
	m.lastLoadUnix.Set(float64(at.Unix()))
}

// RecordRankEstimation counts a degraded rank.
func (m *Manager) RecordRankEstimation() {
	if m.enabled {
		m.rankEstimations.Inc()
	}
}

// RecordHTTPRequest records an HTTP request and its latency.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordRowNormalized increments the normalized rows counter.
func RecordRowNormalized() { globalManager.RecordRowNormalized() }

// RecordFieldDefault counts a defaulted field by reason.
func RecordFieldDefault(reason string) { globalManager.RecordFieldDefault(reason) }

// RecordLoad records one load attempt.
func RecordLoad(outcome string, took time.Duration) { globalManager.RecordLoad(outcome, took) }

// UpdateEvaluations sets the active dataset size and load time.
func UpdateEvaluations(count int, at time.Time) { globalManager.UpdateEvaluations(count, at) }

// RecordRankEstimation counts a degraded rank.
func RecordRankEstimation() { globalManager.RecordRankEstimation() }

// RecordHTTPRequest records an HTTP request and its latency.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
