package ollama

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/bruecke-dev/bruecke/pkg/backend"
)

// fakeNetError implements net.Error for timeout testing.
type fakeNetError struct{ timeout bool }

func (e *fakeNetError) Error() string   { return "fake network error" }
func (e *fakeNetError) Timeout() bool   { return e.timeout }
func (e *fakeNetError) Temporary() bool { return false }

func TestMapNetworkError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind backend.ErrorKind
	}{
		{"deadline exceeded", fmt.Errorf("request: %w", context.DeadlineExceeded), backend.ErrorKindTimeout},
		{"net timeout", fmt.Errorf("request: %w", &fakeNetError{timeout: true}), backend.ErrorKindTimeout},
		{"net failure", fmt.Errorf("request: %w", &fakeNetError{}), backend.ErrorKindConnection},
		{"plain error", errors.New("connection refused"), backend.ErrorKindConnection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var bErr *backend.Error
			if !errors.As(mapNetworkError(tt.err), &bErr) {
				t.Fatalf("mapNetworkError(%v) is not *backend.Error", tt.err)
			}
			if bErr.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", bErr.Kind, tt.wantKind)
			}
		})
	}
}

func TestMapNetworkErrorPreservesCancellation(t *testing.T) {
	err := mapNetworkError(fmt.Errorf("request: %w", context.Canceled))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("mapNetworkError = %v, want context.Canceled", err)
	}
	var bErr *backend.Error
	if errors.As(err, &bErr) {
		t.Error("cancellation was wrapped in a backend error")
	}
}

func TestMapHTTPError(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusBadGateway,
		Body:       io.NopCloser(strings.NewReader("upstream worker died")),
	}

	bErr := mapHTTPError(resp)
	if bErr.Kind != backend.ErrorKindStatus {
		t.Errorf("kind = %q, want %q", bErr.Kind, backend.ErrorKindStatus)
	}
	if bErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", bErr.StatusCode)
	}
	if !strings.Contains(bErr.Message, "upstream worker died") {
		t.Errorf("message = %q, want body text included", bErr.Message)
	}
}

func TestMapHTTPErrorEmptyBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusServiceUnavailable,
		Body:       io.NopCloser(strings.NewReader("")),
	}

	bErr := mapHTTPError(resp)
	if bErr.Message == "" {
		t.Error("message is empty, want status text fallback")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("somewhat longer text", 8); got != "somewhat..." {
		t.Errorf("truncate = %q", got)
	}
}
