// Copyright (c) 2025 Druid MCP
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package metrics exposes Prometheus counters and histograms for tool calls,
// Imply API requests and the optional HTTP transport.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "imply_druid_mcp"

var (
	/* Tool metrics */
	toolCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "Total number of MCP tool calls",
		},
		[]string{"tool", "outcome"},
	)

	toolCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tool_call_duration_seconds",
			Help:      "MCP tool call duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"tool"},
	)

	/* Imply API metrics */
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of Imply API requests",
		},
		[]string{"operation", "method", "status"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Imply API request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	/* HTTP transport metrics */
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests served",
		},
		[]string{"method", "endpoint", "status"},
	)
)

// Tool call outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid"
	OutcomeError       = "error"
	OutcomeUpstream    = "upstream"
	OutcomeUnknownTool = "unknown_tool"
)

// RecordToolCall records one tool invocation.
func RecordToolCall(tool, outcome string, d time.Duration) {
	toolCallsTotal.WithLabelValues(tool, outcome).Inc()
	toolCallDuration.WithLabelValues(tool).Observe(d.Seconds())
}

// RecordUpstream records one Imply API request. A zero status means the request
// never got a response.
func RecordUpstream(operation, method string, status int, d time.Duration) {
	upstreamRequestsTotal.WithLabelValues(operation, method, statusLabel(status)).Inc()
	upstreamRequestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordHTTPRequest records one request served by the HTTP transport.
func RecordHTTPRequest(method, endpoint string, status int) {
	httpRequestsTotal.WithLabelValues(method, endpoint, statusLabel(status)).Inc()
}

func statusLabel(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
