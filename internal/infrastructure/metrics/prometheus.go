package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusExporter exports metrics to Prometheus format.
type PrometheusExporter struct {
	collector *Collector

	// Prometheus metrics
	sessionHits        prometheus.Counter
	sessionMisses      prometheus.Counter
	sessionHitRate     prometheus.Gauge
	sessionKeys        prometheus.Gauge
	sessionMemoryBytes prometheus.Gauge
	sessionEvictions   prometheus.Counter
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	httpErrors         *prometheus.CounterVec
}

// NewPrometheusExporter creates a new Prometheus exporter.
func NewPrometheusExporter(collector *Collector) *PrometheusExporter {
	return &PrometheusExporter{
		collector: collector,
		sessionHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "giveaway_session_cache_hits_total",
			Help: "Total number of session cache hits",
		}),
		sessionMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "giveaway_session_cache_misses_total",
			Help: "Total number of session cache misses",
		}),
		sessionHitRate: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "giveaway_session_cache_hit_rate",
			Help: "Current session cache hit rate (0.0 to 1.0)",
		}),
		sessionKeys: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "giveaway_session_cache_keys_current",
			Help: "Current number of active sessions in the cache",
		}),
		sessionMemoryBytes: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "giveaway_session_cache_memory_bytes",
			Help: "Current memory usage of the session cache in bytes",
		}),
		sessionEvictions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "giveaway_session_cache_evictions_total",
			Help: "Total number of session evictions due to memory limits",
		}),
		httpRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "giveaway_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"route"},
		),
		httpDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "giveaway_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 10.0},
			},
			[]string{"route"},
		),
		httpErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "giveaway_http_errors_total",
				Help: "Total number of HTTP error responses",
			},
			[]string{"route"},
		),
	}
}

// Update updates Gauge metrics from the collector.
// Counters are updated via middleware, so only update gauges here.
// This should be called periodically (e.g., every 10 seconds).
func (e *PrometheusExporter) Update() {
	sessionMetrics := e.collector.GetSessionMetrics()
	e.sessionHitRate.Set(sessionMetrics.HitRate)
	e.sessionKeys.Set(float64(sessionMetrics.KeysCurrent))
	e.sessionMemoryBytes.Set(float64(sessionMetrics.MemoryBytes))
}

// RecordRequest records a request in Prometheus.
func (e *PrometheusExporter) RecordRequest(route string) {
	e.httpRequests.WithLabelValues(route).Inc()
}

// RecordDuration records a duration in Prometheus.
func (e *PrometheusExporter) RecordDuration(route string, durationSeconds float64) {
	e.httpDuration.WithLabelValues(route).Observe(durationSeconds)
}

// RecordError records an error in Prometheus.
func (e *PrometheusExporter) RecordError(route string) {
	e.httpErrors.WithLabelValues(route).Inc()
}

// RecordSessionHit records a session cache hit.
func (e *PrometheusExporter) RecordSessionHit() {
	e.sessionHits.Inc()
}

// RecordSessionMiss records a session cache miss.
func (e *PrometheusExporter) RecordSessionMiss() {
	e.sessionMisses.Inc()
}

// RecordSessionEviction records a session cache eviction.
func (e *PrometheusExporter) RecordSessionEviction() {
	e.sessionEvictions.Inc()
}
