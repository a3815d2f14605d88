// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreOperations counts mutating roster operations by backend and operation.
	StoreOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorboard_store_operations_total",
			Help: "Mutating roster store operations",
		},
		[]string{"backend", "operation"},
	)

	// GateAttempts counts shared-secret confirmations by action and result.
	GateAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mentorboard_gate_attempts_total",
			Help: "Shared-secret confirmation attempts",
		},
		[]string{"action", "result"},
	)

	// ImportedRows counts rows accepted by spreadsheet imports.
	ImportedRows = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mentorboard_import_rows_total",
			Help: "Rows imported from spreadsheets",
		},
	)

	// ImportFailures counts imports rejected before reaching the store.
	ImportFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mentorboard_import_failures_total",
			Help: "Spreadsheet imports aborted by a parse error",
		},
	)

	// OpenDrafts tracks editing sessions currently held by the editor service.
	OpenDrafts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mentorboard_open_drafts",
			Help: "Editing sessions currently open",
		},
	)

	// RPCDuration observes RPC latency in seconds.
	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mentorboard_rpc_duration_seconds",
			Help:    "RPC handling duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"procedure", "code"},
	)
)

// ObserveRPC records one RPC outcome.
func ObserveRPC(procedure, code string, d time.Duration) {
	RPCDuration.WithLabelValues(procedure, code).Observe(d.Seconds())
}

// GateResult returns the label value for a gate attempt.
func GateResult(ok bool) string {
	if ok {
		return "granted"
	}
	return "denied"
}
