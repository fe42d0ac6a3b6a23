// Package transport provides gRPC server interceptors for the bridge:
// request-ID propagation, structured request logging, and panic
// recovery. Interceptors come in unary and stream variants and are
// chained in cmd/server with grpc.ChainUnaryInterceptor and
// grpc.ChainStreamInterceptor.
package transport
