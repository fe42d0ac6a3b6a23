package observability

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// UnaryMetrics returns an interceptor that records per-call metrics:
// bruecke_rpcs_total by method and status code, and
// bruecke_rpc_duration_seconds by method.
func UnaryMetrics() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		record(info.FullMethod, start, err)
		return resp, err
	}
}

// StreamMetrics is the streaming variant of UnaryMetrics. Duration is
// recorded when the stream ends.
func StreamMetrics() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		record(info.FullMethod, start, err)
		return err
	}
}

func record(method string, start time.Time, err error) {
	RPCsTotal.WithLabelValues(method, status.Code(err).String()).Inc()
	RPCDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}
