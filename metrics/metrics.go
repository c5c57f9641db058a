// Package metrics provides Prometheus metrics for the Wikipedia as-of MCP
// server: tool call counts and latencies, upstream API performance, and
// content truncation counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics.
const Namespace = "wikipedia_asof_mcp"

var (
	// RequestsTotal counts MCP tool calls by tool name and status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures tool call latency distribution.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Tool call latency distribution by tool",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing tool calls.
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of tool calls currently being processed",
	}, []string{"tool"})

	// WikiAPIRequestsTotal counts Action API requests by operation and status.
	WikiAPIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wiki_api_requests_total",
		Help:      "Total Wikipedia API requests by operation and status",
	}, []string{"operation", "status"})

	// WikiAPILatency measures Action API call latency by operation.
	WikiAPILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "wiki_api_latency_seconds",
		Help:      "Wikipedia API call latency by operation",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	// WikiAPIErrors counts Action API errors by operation and error code.
	WikiAPIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "wiki_api_errors_total",
		Help:      "Wikipedia API errors by operation and error code",
	}, []string{"operation", "error_code"})

	// ContentSize tracks returned content sizes by format.
	ContentSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "content_size_chars",
		Help:      "Returned content size distribution in characters",
		Buckets:   []float64{100, 1000, 10000, 25000, 50000, 100000, 250000, 500000},
	}, []string{"format"})

	// TruncationsTotal counts plain-text extracts cut at the budget.
	TruncationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "extract_truncations_total",
		Help:      "Plain-text extracts truncated at the character budget",
	})

	// PanicsRecovered counts recovered panics in tool handlers.
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})
)

// RecordRequest records a completed tool call with its duration and status.
func RecordRequest(tool string, duration float64, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	RequestsTotal.WithLabelValues(tool, status).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records an upstream Action API call.
func RecordAPICall(operation string, duration float64, success bool, errorCode string) {
	status := "success"
	if !success {
		status = "error"
	}
	WikiAPIRequestsTotal.WithLabelValues(operation, status).Inc()
	WikiAPILatency.WithLabelValues(operation).Observe(duration)
	if errorCode != "" {
		WikiAPIErrors.WithLabelValues(operation, errorCode).Inc()
	}
}

// RecordContentSize records the size of a returned content payload.
func RecordContentSize(format string, chars int) {
	ContentSize.WithLabelValues(format).Observe(float64(chars))
}

// RecordTruncation counts one truncated extract.
func RecordTruncation() {
	TruncationsTotal.Inc()
}
