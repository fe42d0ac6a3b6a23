package backend

import "fmt"

// ErrorKind categorizes a backend failure.
type ErrorKind string

const (
	// ErrorKindTimeout is a request that exceeded the configured timeout.
	ErrorKindTimeout ErrorKind = "timeout"
	// ErrorKindConnection is any other transport-level failure.
	ErrorKindConnection ErrorKind = "connection"
	// ErrorKindStatus is a non-2xx HTTP status from the backend.
	ErrorKindStatus ErrorKind = "status"
	// ErrorKindMalformed is an unparsable backend response. Individual
	// malformed stream lines are skipped rather than surfaced; this kind
	// appears only for an unparsable non-streaming body.
	ErrorKindMalformed ErrorKind = "malformed"
)

// Error is a categorized backend failure. It carries a human-readable
// message and never carries partial output.
type Error struct {
	Kind       ErrorKind
	StatusCode int // set for ErrorKindStatus
	Message    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Kind == ErrorKindStatus && e.StatusCode != 0 {
		return fmt.Sprintf("backend %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend %s: %s", e.Kind, e.Message)
}

// NewTimeoutError creates an Error for a timed-out backend request.
func NewTimeoutError(message string) *Error {
	return &Error{Kind: ErrorKindTimeout, Message: message}
}

// NewConnectionError creates an Error for a transport-level failure.
func NewConnectionError(message string) *Error {
	return &Error{Kind: ErrorKindConnection, Message: message}
}

// NewStatusError creates an Error for a non-success HTTP status.
func NewStatusError(statusCode int, message string) *Error {
	return &Error{Kind: ErrorKindStatus, StatusCode: statusCode, Message: message}
}

// NewMalformedError creates an Error for an unparsable backend response.
func NewMalformedError(message string) *Error {
	return &Error{Kind: ErrorKindMalformed, Message: message}
}
