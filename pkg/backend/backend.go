package backend

import "context"

// Params holds the sampling parameters for a single generation call.
// A Params value is owned by the call that built it and is never
// mutated after construction.
type Params struct {
	Temperature      float32
	MaxTokens        int32
	TopP             float32
	PresencePenalty  float32
	FrequencyPenalty float32
}

// Chunk is one decoded unit of backend output. IsComplete is true on
// the final chunk of a generation.
type Chunk struct {
	Text       string
	IsComplete bool
}

// StreamEvent is a single element of a generation stream. Exactly one
// of Chunk or Err is meaningful: an event with a non-nil Err terminates
// the stream and no further events follow it.
type StreamEvent struct {
	Chunk Chunk
	Err   error
}

// Client is the interface the generation service uses to talk to an
// inference backend. Implementations must be safe for concurrent use;
// calls share no state beyond the client's immutable configuration and
// its connection pool.
type Client interface {
	// Generate performs a single non-streaming generation and returns
	// the complete text.
	Generate(ctx context.Context, prompt string, params Params) (string, error)

	// GenerateStream starts a streaming generation. The returned channel
	// yields chunks in backend arrival order and is closed after the
	// final chunk, after a terminal error event, or once ctx is
	// cancelled. The stream is finite and cannot be restarted.
	GenerateStream(ctx context.Context, prompt string, params Params) (<-chan StreamEvent, error)

	// Close releases the client's connection pool.
	Close() error
}
