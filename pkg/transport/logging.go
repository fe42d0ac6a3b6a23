package transport

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// UnaryLogging returns an interceptor that emits one structured log
// entry per unary call: method, duration, request ID, and final status
// code.
func UnaryLogging(logger *slog.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logCall(ctx, logger, info.FullMethod, start, err)
		return resp, err
	}
}

// StreamLogging is the streaming variant of UnaryLogging. The entry is
// emitted when the stream ends, so the duration covers the whole call.
func StreamLogging(logger *slog.Logger) grpc.StreamServerInterceptor {
	if logger == nil {
		logger = slog.Default()
	}
	return func(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		err := handler(srv, ss)
		logCall(ss.Context(), logger, info.FullMethod, start, err)
		return err
	}
}

func logCall(ctx context.Context, logger *slog.Logger, method string, start time.Time, err error) {
	attrs := []slog.Attr{
		slog.String("method", method),
		slog.String("request_id", RequestIDFromContext(ctx)),
		slog.Duration("duration", time.Since(start)),
		slog.String("code", status.Code(err).String()),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		logger.LogAttrs(ctx, slog.LevelError, "call failed", attrs...)
	} else {
		logger.LogAttrs(ctx, slog.LevelInfo, "call completed", attrs...)
	}
}
