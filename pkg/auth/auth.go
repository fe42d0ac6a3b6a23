// Package auth provides optional API key authentication for the bridge.
// Bearer tokens from gRPC metadata are validated against a static key
// store using SHA-256 hashing and constant-time comparison.
package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// keyEntry maps a key hash to a subject for logging.
type keyEntry struct {
	keyHash [32]byte
	subject string
}

// RawKeyEntry is the configuration format for API keys.
type RawKeyEntry struct {
	Key     string
	Subject string
}

// Authenticator validates bearer tokens against a static key store.
type Authenticator struct {
	keys []keyEntry
}

// New creates an API key authenticator from a list of raw keys.
// Keys are hashed immediately; plaintext keys are not stored.
func New(entries []RawKeyEntry) *Authenticator {
	a := &Authenticator{}
	for _, e := range entries {
		a.keys = append(a.keys, keyEntry{
			keyHash: sha256.Sum256([]byte(e.Key)),
			subject: e.Subject,
		})
	}
	return a
}

// Authenticate extracts the bearer token from the call metadata and
// validates it. Returns the matching subject, or a gRPC status error
// with codes.Unauthenticated.
func (a *Authenticator) Authenticate(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "missing metadata")
	}

	vals := md.Get("authorization")
	if len(vals) == 0 {
		return "", status.Error(codes.Unauthenticated, "missing authorization token")
	}

	token, ok := strings.CutPrefix(vals[0], "Bearer ")
	if !ok {
		return "", status.Error(codes.Unauthenticated, "authorization must be a bearer token")
	}

	hash := sha256.Sum256([]byte(token))
	for _, e := range a.keys {
		if subtle.ConstantTimeCompare(hash[:], e.keyHash[:]) == 1 {
			return e.subject, nil
		}
	}
	return "", status.Error(codes.Unauthenticated, "invalid API key")
}

// UnaryInterceptor returns an interceptor that rejects unauthenticated
// unary calls before the handler runs.
func (a *Authenticator) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, err := a.Authenticate(ctx); err != nil {
			return nil, err
		}
		return handler(ctx, req)
	}
}

// StreamInterceptor is the streaming variant of UnaryInterceptor. The
// check runs once at stream start, before any backend work.
func (a *Authenticator) StreamInterceptor() grpc.StreamServerInterceptor {
	return func(srv any, ss grpc.ServerStream, _ *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		if _, err := a.Authenticate(ss.Context()); err != nil {
			return err
		}
		return handler(srv, ss)
	}
}
