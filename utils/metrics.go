package utils

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks inbound request latency (seconds).
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "beu_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)

	// BackendCallDuration tracks calls to the BE-U REST backend (seconds).
	BackendCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "beu_backend_call_duration_seconds",
			Help:    "Backend API call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~20s
		},
		[]string{"method", "endpoint", "status"},
	)

	// OptimisticRollbacks counts local mutations undone after a backend failure.
	OptimisticRollbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beu_optimistic_rollbacks_total",
			Help: "Total number of optimistic updates rolled back",
		},
		[]string{"command"},
	)

	// ScheduleValidationFailures counts rejected availability saves by rule.
	ScheduleValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beu_schedule_validation_failures_total",
			Help: "Total number of schedule saves rejected by validation",
		},
		[]string{"rule"},
	)
)

// RecordHTTPRequest records an inbound request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordBackendCall records a call to the backend API.
func RecordBackendCall(method, endpoint, status string, duration time.Duration) {
	BackendCallDuration.WithLabelValues(method, endpoint, status).Observe(duration.Seconds())
}

// RecordRollback records an undone optimistic command.
func RecordRollback(command string) {
	OptimisticRollbacks.WithLabelValues(command).Inc()
}

// RecordValidationFailure records a rejected schedule save.
func RecordValidationFailure(rule string) {
	ScheduleValidationFailures.WithLabelValues(rule).Inc()
}
