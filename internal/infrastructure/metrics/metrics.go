// Package metrics holds the process-wide Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meeting_recovery_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	creditOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_recovery_credit_operations_total",
			Help: "Credit ledger operations by kind and outcome",
		},
		[]string{"operation", "outcome"},
	)
	gatewayCalls = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meeting_recovery_gateway_call_duration_seconds",
			Help:    "Model call duration by outcome kind",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60, 90},
		},
		[]string{"outcome"},
	)
	analyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_recovery_analyses_total",
			Help: "Analysis requests by mode and final state",
		},
		[]string{"mode", "state"},
	)
)

// Credit operation names
const (
	OpCharge    = "charge"
	OpSettle    = "settle"
	OpRefund    = "refund"
	OpRedeem    = "redeem"
	OpReconcile = "reconcile"
)

// ObserveHTTP records one served request
func ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	httpRequestDuration.WithLabelValues(method, path, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// RecordCredit counts a ledger operation outcome ("ok" or an error class)
func RecordCredit(operation, outcome string) {
	creditOperations.WithLabelValues(operation, outcome).Inc()
}

// ObserveGateway records one model call. outcome is "ok" or the error kind.
func ObserveGateway(outcome string, elapsed time.Duration) {
	gatewayCalls.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// RecordAnalysis counts an analysis reaching a terminal state
func RecordAnalysis(mode, state string) {
	analyses.WithLabelValues(mode, state).Inc()
}
