package transport

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnaryRecovery returns an interceptor that catches panics in the
// handler and converts them to Internal status errors. The server keeps
// accepting calls after a panic is recovered.
func UnaryRecovery() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, retErr error) {
		defer func() {
			if r := recover(); r != nil {
				retErr = status.Errorf(codes.Internal, "internal server error: %v", r)
			}
		}()
		return handler(ctx, req)
	}
}

// StreamRecovery is the streaming variant of UnaryRecovery.
func StreamRecovery() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) (retErr error) {
		defer func() {
			if r := recover(); r != nil {
				retErr = status.Errorf(codes.Internal, "internal server error: %v", r)
			}
		}()
		return handler(srv, ss)
	}
}
