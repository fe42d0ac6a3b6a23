package transport

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// requestIDMetadataKey is the inbound/outbound metadata key carrying the
// request ID.
const requestIDMetadataKey = "x-request-id"

// requestIDKeyType is the context key type for request IDs.
type requestIDKeyType struct{}

// requestIDKey is the context key for storing and retrieving request IDs.
var requestIDKey = requestIDKeyType{}

// RequestIDFromContext extracts the request ID from the context.
// Returns an empty string if no request ID is set.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithRequestID returns a new context with the given request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// UnaryRequestID returns an interceptor that assigns a unique request ID
// to each unary call. If the incoming metadata carries an x-request-id,
// that value is used; otherwise a new ID is generated. The ID is stored
// in the context and echoed in the response headers.
func UnaryRequestID() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		ctx = withRequestID(ctx)
		_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDMetadataKey, RequestIDFromContext(ctx)))
		return handler(ctx, req)
	}
}

// StreamRequestID is the streaming variant of UnaryRequestID.
func StreamRequestID() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		ctx := withRequestID(ss.Context())
		_ = ss.SetHeader(metadata.Pairs(requestIDMetadataKey, RequestIDFromContext(ctx)))
		return handler(srv, &wrappedStream{ServerStream: ss, ctx: ctx})
	}
}

// withRequestID resolves the request ID for a call: incoming metadata
// first, otherwise freshly generated.
func withRequestID(ctx context.Context) context.Context {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if vals := md.Get(requestIDMetadataKey); len(vals) > 0 && vals[0] != "" {
			return ContextWithRequestID(ctx, vals[0])
		}
	}
	return ContextWithRequestID(ctx, generateRequestID())
}

// generateRequestID creates a new unique request ID as a hex string.
func generateRequestID() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// wrappedStream overrides the stream context so downstream handlers see
// the enriched context.
type wrappedStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (w *wrappedStream) Context() context.Context {
	return w.ctx
}
