package ollama

import (
	"log/slog"
	"time"
)

// Config holds configuration for the Ollama backend adapter.
type Config struct {
	// BaseURL is the Ollama server URL (e.g., "http://localhost:11434").
	BaseURL string

	// Model is the model name passed on every request.
	Model string

	// Timeout for a request. Applies to the non-streaming roundtrip and,
	// as a deadline, to the whole streaming read. Defaults to 30s.
	Timeout time.Duration

	// Logger receives diagnostic output. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig(baseURL, model string) Config {
	return Config{
		BaseURL: baseURL,
		Model:   model,
		Timeout: 30 * time.Second,
	}
}
