// Package service implements the LLMService gRPC server on top of a
// backend client. It translates each RPC into exactly one backend call,
// forwards stream chunks as they arrive, and maps backend failures to
// gRPC status codes.
package service
