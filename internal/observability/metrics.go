package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce        sync.Once
	apiRequestsTotal    *prometheus.CounterVec
	apiLatencySeconds   *prometheus.HistogramVec
	apiErrorsTotal      *prometheus.CounterVec
	auditWriteFailures  prometheus.Counter
	bulkImportRowsTotal *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "campus_api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		auditWriteFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "campus_audit_log_write_failures_total",
			Help: "Audit log entries that could not be persisted.",
		})

		bulkImportRowsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "campus_bulk_import_rows_total",
			Help: "Rows processed by bulk imports, labelled by entity and outcome.",
		}, []string{"entity", "outcome"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			auditWriteFailures,
			bulkImportRowsTotal,
		)
	})
}

// APIRequests exposes the counter for served requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// AuditWriteFailures exposes the counter for dropped audit entries.
func AuditWriteFailures() prometheus.Counter {
	RegisterMetrics()
	return auditWriteFailures
}

// BulkImportRows exposes the counter for bulk import row outcomes.
func BulkImportRows() *prometheus.CounterVec {
	RegisterMetrics()
	return bulkImportRowsTotal
}
