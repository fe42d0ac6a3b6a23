package ollama

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/bruecke-dev/bruecke/pkg/backend"
	"github.com/bruecke-dev/bruecke/pkg/observability"
)

// maxLineSize bounds a single NDJSON line from the backend.
const maxLineSize = 1 << 20

// readStream reads newline-delimited JSON chunks from body, translates
// each into a StreamEvent, and sends them on ch. The channel is NOT
// closed by this function; the caller is responsible for closing it.
//
// The watchdog is the idle timer armed in GenerateStream; every line
// that arrives re-arms it, so only a silent backend trips it. An
// expired watchdog cancels ctx with a DeadlineExceeded cause, which is
// how this function tells a timeout apart from caller cancellation.
//
// Line handling:
//   - blank lines are skipped
//   - unparsable lines are logged, counted, and skipped without ending
//     the stream
//   - the first chunk with done=true ends the stream without waiting
//     for the backend to close the connection
//   - EOF before a done chunk is a normal end of stream, logged and
//     counted so protocol drift stays observable
//
// A transport failure or timeout mid-stream sends a single terminal
// error event. Cancellation from the caller's side stops reading
// immediately without an event. The returned error mirrors what was
// sent on ch, for metric labeling.
func (c *Client) readStream(ctx context.Context, body io.Reader, watchdog *time.Timer, ch chan<- backend.StreamEvent) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	sawDone := false
	for scanner.Scan() {
		// A line arrived, so the backend is alive.
		watchdog.Reset(c.cfg.Timeout)

		if ctx.Err() != nil {
			return c.finishExpired(ctx, ch)
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var chunk generateResponse
		if err := json.Unmarshal(line, &chunk); err != nil {
			observability.BackendMalformedLinesTotal.Inc()
			c.log.Warn("skipping malformed stream line",
				"error", err.Error(),
				"line", truncate(string(line), 200),
			)
			continue
		}

		observability.BackendChunksTotal.Inc()
		ev := backend.StreamEvent{
			Chunk: backend.Chunk{
				Text:       chunk.Response,
				IsComplete: chunk.Done,
			},
		}
		select {
		case ch <- ev:
		case <-ctx.Done():
			return c.finishExpired(ctx, ch)
		}

		if chunk.Done {
			sawDone = true
			break
		}
	}

	if err := scanner.Err(); err != nil {
		if ctx.Err() != nil {
			return c.finishExpired(ctx, ch)
		}
		mapped := mapNetworkError(err)
		// The watchdog unblocks this send if the consumer goes away
		// without canceling.
		select {
		case ch <- backend.StreamEvent{Err: mapped}:
		case <-ctx.Done():
		}
		return mapped
	}

	if !sawDone {
		observability.BackendStreamTruncatedTotal.Inc()
		c.log.Warn("stream ended without a completion chunk", "model", c.cfg.Model)
	}
	return nil
}

// finishExpired ends a read whose context is already done. An idle
// timeout (DeadlineExceeded cause from the watchdog, or an expired
// caller deadline) is a backend failure the consumer must see;
// cancellation means the consumer is gone and the read just stops. The
// channel buffer normally has room for the terminal event; if the
// consumer stopped draining long enough for it to fill, the event is
// dropped rather than blocking forever.
func (c *Client) finishExpired(ctx context.Context, ch chan<- backend.StreamEvent) error {
	cause := context.Cause(ctx)
	if errors.Is(cause, context.DeadlineExceeded) {
		mapped := backend.NewTimeoutError("no data from backend within request timeout")
		select {
		case ch <- backend.StreamEvent{Err: mapped}:
		default:
		}
		return mapped
	}
	return cause
}
