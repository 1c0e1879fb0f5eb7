package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics interface for dependency injection
type Metrics interface {
	RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration)
	RecordEventProcessed(source, status string)
	RecordCycle(duration time.Duration)
	RecordDBQuery(operation, status string)
	SetDBConnectionsActive(count float64)
	RecordPushDelivery(status string)
	SetSubscriberCount(count float64)
	Handler() http.Handler
}

// NoOpMetrics provides a no-op implementation
type NoOpMetrics struct{}

func (m *NoOpMetrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
}
func (m *NoOpMetrics) RecordEventProcessed(source, status string) {}
func (m *NoOpMetrics) RecordCycle(duration time.Duration)         {}
func (m *NoOpMetrics) RecordDBQuery(operation, status string)     {}
func (m *NoOpMetrics) SetDBConnectionsActive(count float64)       {}
func (m *NoOpMetrics) RecordPushDelivery(status string)           {}
func (m *NoOpMetrics) SetSubscriberCount(count float64)           {}
func (m *NoOpMetrics) Handler() http.Handler                      { return http.NotFoundHandler() }

// PrometheusMetrics implements Metrics with the default Prometheus registry.
type PrometheusMetrics struct {
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	eventsProcessed *prometheus.CounterVec
	cycleDuration   prometheus.Histogram
	dbQueries       *prometheus.CounterVec
	dbConnsActive   prometheus.Gauge
	pushDeliveries  *prometheus.CounterVec
	subscribers     prometheus.Gauge
}

// NewPrometheusMetrics creates and registers all service metrics.
func NewPrometheusMetrics() *PrometheusMetrics {
	m := &PrometheusMetrics{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "deprem",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, path and status code.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "deprem",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"method", "path"}),
		eventsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "deprem",
			Name:      "events_processed_total",
			Help:      "Earthquake events by source and processing status.",
		}, []string{"source", "status"}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "deprem",
			Name:      "ingest_cycle_duration_seconds",
			Help:      "Duration of a complete fetch-normalize-store cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		dbQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "deprem",
			Name:      "db_queries_total",
			Help:      "Database statements by operation and outcome.",
		}, []string{"operation", "status"}),
		dbConnsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "deprem",
			Name:      "db_connections_active",
			Help:      "Connections currently acquired from the pool.",
		}),
		pushDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "deprem",
			Name:      "push_deliveries_total",
			Help:      "Web push delivery attempts by outcome.",
		}, []string{"status"}),
		subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "deprem",
			Name:      "push_subscribers",
			Help:      "Registered push subscribers.",
		}),
	}

	prometheus.MustRegister(
		m.httpRequests, m.httpDuration, m.eventsProcessed, m.cycleDuration,
		m.dbQueries, m.dbConnsActive, m.pushDeliveries, m.subscribers,
	)

	return m
}

func (m *PrometheusMetrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, endpoint, httpStatusLabel(statusCode)).Inc()
	m.httpDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordEventProcessed(source, status string) {
	m.eventsProcessed.WithLabelValues(source, status).Inc()
}

func (m *PrometheusMetrics) RecordCycle(duration time.Duration) {
	m.cycleDuration.Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordDBQuery(operation, status string) {
	m.dbQueries.WithLabelValues(operation, status).Inc()
}

func (m *PrometheusMetrics) SetDBConnectionsActive(count float64) {
	m.dbConnsActive.Set(count)
}

func (m *PrometheusMetrics) RecordPushDelivery(status string) {
	m.pushDeliveries.WithLabelValues(status).Inc()
}

func (m *PrometheusMetrics) SetSubscriberCount(count float64) {
	m.subscribers.Set(count)
}

func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.Handler()
}

func httpStatusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// Global metrics instance
var globalMetrics Metrics = &NoOpMetrics{}

// Init installs the Prometheus-backed implementation
func Init() {
	globalMetrics = NewPrometheusMetrics()
}

// Handler returns the metrics handler
func Handler() http.Handler {
	return globalMetrics.Handler()
}

// RecordHTTPRequest records HTTP request metrics
func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	globalMetrics.RecordHTTPRequest(method, endpoint, statusCode, duration)
}

// RecordEventProcessed records event processing metrics
func RecordEventProcessed(source, status string) {
	globalMetrics.RecordEventProcessed(source, status)
}

// RecordCycle records ingestion cycle metrics
func RecordCycle(duration time.Duration) {
	globalMetrics.RecordCycle(duration)
}

// RecordDBQuery records database query metrics
func RecordDBQuery(operation, status string) {
	globalMetrics.RecordDBQuery(operation, status)
}

// SetDBConnectionsActive sets the number of active database connections
func SetDBConnectionsActive(count float64) {
	globalMetrics.SetDBConnectionsActive(count)
}

// RecordPushDelivery records a web push delivery attempt
func RecordPushDelivery(status string) {
	globalMetrics.RecordPushDelivery(status)
}

// SetSubscriberCount sets the current subscriber count
func SetSubscriberCount(count float64) {
	globalMetrics.SetSubscriberCount(count)
}
