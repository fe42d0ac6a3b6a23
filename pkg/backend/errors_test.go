package backend

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorMessageFormats(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want []string
	}{
		{
			name: "timeout",
			err:  NewTimeoutError("request timed out after 30s"),
			want: []string{"timeout", "request timed out after 30s"},
		},
		{
			name: "connection",
			err:  NewConnectionError("connection refused"),
			want: []string{"connection", "connection refused"},
		},
		{
			name: "status carries code",
			err:  NewStatusError(500, "model exploded"),
			want: []string{"HTTP 500", "model exploded"},
		},
		{
			name: "malformed",
			err:  NewMalformedError("unexpected end of JSON input"),
			want: []string{"malformed", "unexpected end of JSON input"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.want {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, want it to contain %q", msg, want)
				}
			}
		})
	}
}

func TestErrorKinds(t *testing.T) {
	if NewTimeoutError("x").Kind != ErrorKindTimeout {
		t.Error("NewTimeoutError kind mismatch")
	}
	if NewConnectionError("x").Kind != ErrorKindConnection {
		t.Error("NewConnectionError kind mismatch")
	}
	if NewStatusError(404, "x").Kind != ErrorKindStatus {
		t.Error("NewStatusError kind mismatch")
	}
	if NewMalformedError("x").Kind != ErrorKindMalformed {
		t.Error("NewMalformedError kind mismatch")
	}
}

func TestErrorAsTarget(t *testing.T) {
	wrapped := errors.Join(NewStatusError(503, "unavailable"))

	var bErr *Error
	if !errors.As(wrapped, &bErr) {
		t.Fatal("errors.As failed to find *Error")
	}
	if bErr.StatusCode != 503 {
		t.Errorf("StatusCode = %d, want 503", bErr.StatusCode)
	}
}
