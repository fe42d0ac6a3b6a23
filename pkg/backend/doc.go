// Package backend defines the interface between the generation service
// and a remote inference backend, along with the chunk and error types
// shared by implementations. The ollama subpackage provides the HTTP
// implementation.
package backend
