// Package observability provides Prometheus metrics and gRPC
// interceptors for monitoring the bruecke bridge.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// RPCsTotal counts all RPCs by method and final status code.
	RPCsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bruecke_rpcs_total",
			Help: "Total RPCs",
		},
		[]string{"method", "code"},
	)

	// RPCDuration records RPC duration in seconds by method.
	RPCDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bruecke_rpc_duration_seconds",
			Help:    "RPC duration",
			Buckets: LLMBuckets,
		},
		[]string{"method"},
	)

	// StreamingCalls tracks the number of in-flight streaming RPCs.
	StreamingCalls = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bruecke_streaming_calls_active",
			Help: "Active streaming RPCs",
		},
	)

	// BackendRequestsTotal counts requests sent to the inference backend
	// by call shape and outcome.
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bruecke_backend_requests_total",
			Help: "Backend requests",
		},
		[]string{"mode", "outcome"},
	)

	// BackendLatency records backend roundtrip latency in seconds by call
	// shape. For streams this covers the time to the last chunk.
	BackendLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bruecke_backend_latency_seconds",
			Help:    "Backend latency",
			Buckets: LLMBuckets,
		},
		[]string{"mode"},
	)

	// BackendChunksTotal counts decoded stream chunks.
	BackendChunksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bruecke_backend_chunks_total",
			Help: "Decoded stream chunks",
		},
	)

	// BackendMalformedLinesTotal counts stream lines skipped because they
	// failed to parse.
	BackendMalformedLinesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bruecke_backend_malformed_lines_total",
			Help: "Skipped malformed stream lines",
		},
	)

	// BackendStreamTruncatedTotal counts streams that ended without a
	// completion-flagged chunk.
	BackendStreamTruncatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bruecke_backend_stream_truncated_total",
			Help: "Streams ended without a final chunk",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RPCsTotal,
		RPCDuration,
		StreamingCalls,
		BackendRequestsTotal,
		BackendLatency,
		BackendChunksTotal,
		BackendMalformedLinesTotal,
		BackendStreamTruncatedTotal,
	)
}
