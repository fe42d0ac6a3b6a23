package ollama

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"

	"github.com/bruecke-dev/bruecke/pkg/backend"
)

// mapNetworkError converts a transport-level error into a backend.Error.
// Context cancellation is passed through untranslated so callers can
// distinguish a dead client from a dead backend.
func mapNetworkError(err error) error {
	if errors.Is(err, context.Canceled) {
		return context.Canceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return backend.NewTimeoutError(err.Error())
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return backend.NewTimeoutError(err.Error())
	}
	return backend.NewConnectionError(err.Error())
}

// mapHTTPError converts a non-2xx HTTP response into a backend.Error
// carrying the status and (truncated) body text.
func mapHTTPError(resp *http.Response) *backend.Error {
	body := readErrorBody(resp.Body)
	if body == "" {
		body = http.StatusText(resp.StatusCode)
	}
	return backend.NewStatusError(resp.StatusCode, body)
}

// readErrorBody reads up to 4 KiB of an error response body.
func readErrorBody(body io.Reader) string {
	if body == nil {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}
	return string(data)
}

// truncate limits a string to maxLen characters for log output.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
