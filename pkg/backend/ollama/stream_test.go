package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bruecke-dev/bruecke/pkg/backend"
)

// streamServer returns an httptest server whose /api/generate handler
// writes the given raw lines as an NDJSON body, flushing after each.
func streamServer(t *testing.T, lines []string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.Write([]byte(`{"models":[{"name":"test-model"}]}`))
			return
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		flusher := w.(http.Flusher)
		for _, line := range lines {
			fmt.Fprintln(w, line)
			flusher.Flush()
		}
	}))
}

// collect drains a stream into chunks and at most one terminal error.
func collect(t *testing.T, ch <-chan backend.StreamEvent) ([]backend.Chunk, error) {
	t.Helper()
	var chunks []backend.Chunk
	for ev := range ch {
		if ev.Err != nil {
			return chunks, ev.Err
		}
		chunks = append(chunks, ev.Chunk)
	}
	return chunks, nil
}

func TestGenerateStream_ChunksInOrder(t *testing.T) {
	srv := streamServer(t, []string{
		`{"response":"Hi","done":false}`,
		`{"response":" there","done":true}`,
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL, 5*time.Second)
	defer c.Close()

	ch, err := c.GenerateStream(context.Background(), "Hello", backend.Params{})
	if err != nil {
		t.Fatalf("GenerateStream: %v", err)
	}

	chunks, err := collect(t, ch)
	if err != nil {
		t.Fatalf("stream error: %v", err)
	}
	want := []backend.Chunk{
		{Text: "Hi", IsComplete: false},
		{Text: " there", IsComplete: true},
	}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d: %+v", len(chunks), len(want), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %+v, want %+v", i, chunks[i], want[i])
		}
	}
}

func TestGenerateStream_MalformedLineSkipped(t *testing.T) {
	srv := streamServer(t, []string{
		`{"response":"Hi","done":false}`,
		`{this is not valid json}`,
		`{"response":"!","done":true}`,
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL, 5*time.Second)
	defer c.Close()

	ch, err := c.GenerateStream(context.Background(), "Hello", backend.Params{})
	if err != nil {
		t.Fatalf("GenerateStream: %v", err)
	}

	chunks, err := collect(t, ch)
	if err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2 (malformed skipped): %+v", len(chunks), chunks)
	}
	if chunks[0].Text != "Hi" || chunks[1].Text != "!" {
		t.Errorf("chunks = %+v", chunks)
	}
	if !chunks[1].IsComplete {
		t.Error("final chunk not marked complete")
	}
}

func TestGenerateStream_BlankLinesSkipped(t *testing.T) {
	srv := streamServer(t, []string{
		``,
		`{"response":"a","done":false}`,
		``,
		`{"response":"b","done":true}`,
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL, 5*time.Second)
	defer c.Close()

	ch, err := c.GenerateStream(context.Background(), "Hello", backend.Params{})
	if err != nil {
		t.Fatalf("GenerateStream: %v", err)
	}

	chunks, err := collect(t, ch)
	if err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if len(chunks) != 2 {
		t.Errorf("got %d chunks, want 2: %+v", len(chunks), chunks)
	}
}

func TestGenerateStream_StopsAtDoneChunk(t *testing.T) {
	// Lines after the done chunk must never surface.
	srv := streamServer(t, []string{
		`{"response":"end","done":true}`,
		`{"response":"ghost","done":false}`,
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL, 5*time.Second)
	defer c.Close()

	ch, err := c.GenerateStream(context.Background(), "Hello", backend.Params{})
	if err != nil {
		t.Fatalf("GenerateStream: %v", err)
	}

	chunks, err := collect(t, ch)
	if err != nil {
		t.Fatalf("stream error: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1: %+v", len(chunks), chunks)
	}
	if !chunks[0].IsComplete {
		t.Error("chunk not marked complete")
	}
}

func TestGenerateStream_EOFWithoutDoneIsNormalEnd(t *testing.T) {
	srv := streamServer(t, []string{
		`{"response":"a","done":false}`,
		`{"response":"b","done":false}`,
	})
	defer srv.Close()

	c := newTestClient(t, srv.URL, 5*time.Second)
	defer c.Close()

	ch, err := c.GenerateStream(context.Background(), "Hello", backend.Params{})
	if err != nil {
		t.Fatalf("GenerateStream: %v", err)
	}

	chunks, err := collect(t, ch)
	if err != nil {
		t.Fatalf("truncated stream reported error: %v", err)
	}
	if len(chunks) != 2 {
		t.Errorf("got %d chunks, want 2: %+v", len(chunks), chunks)
	}
	for _, chunk := range chunks {
		if chunk.IsComplete {
			t.Errorf("no chunk should be complete, got %+v", chunk)
		}
	}
}

func TestGenerateStream_MidStreamConnectionDrop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.Write([]byte(`{"models":[]}`))
			return
		}
		flusher := w.(http.Flusher)
		fmt.Fprintln(w, `{"response":"Hi","done":false}`)
		flusher.Flush()
		// Abort the response mid-body so the client sees a read error.
		panic(http.ErrAbortHandler)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 5*time.Second)
	defer c.Close()

	ch, err := c.GenerateStream(context.Background(), "Hello", backend.Params{})
	if err != nil {
		t.Fatalf("GenerateStream: %v", err)
	}

	chunks, err := collect(t, ch)
	if len(chunks) != 1 {
		t.Errorf("got %d chunks before failure, want 1", len(chunks))
	}
	var bErr *backend.Error
	if !errors.As(err, &bErr) {
		t.Fatalf("stream error = %v, want *backend.Error", err)
	}
	if bErr.Kind != backend.ErrorKindConnection {
		t.Errorf("kind = %q, want %q", bErr.Kind, backend.ErrorKindConnection)
	}
}

func TestGenerateStream_StatusErrorBeforeStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.Write([]byte(`{"models":[]}`))
			return
		}
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, 5*time.Second)
	defer c.Close()

	_, err := c.GenerateStream(context.Background(), "Hello", backend.Params{})
	var bErr *backend.Error
	if !errors.As(err, &bErr) {
		t.Fatalf("GenerateStream error = %v, want *backend.Error", err)
	}
	if bErr.Kind != backend.ErrorKindStatus {
		t.Errorf("kind = %q, want %q", bErr.Kind, backend.ErrorKindStatus)
	}
	if bErr.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", bErr.StatusCode)
	}
}

func TestGenerateStream_CancellationStopsReadPromptly(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.Write([]byte(`{"models":[]}`))
			return
		}
		flusher := w.(http.Flusher)
		fmt.Fprintln(w, `{"response":"Hi","done":false}`)
		flusher.Flush()
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, srv.URL, time.Minute)
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := c.GenerateStream(ctx, "Hello", backend.Params{})
	if err != nil {
		t.Fatalf("GenerateStream: %v", err)
	}

	// Read the first chunk, then cancel client-side.
	ev := <-ch
	if ev.Err != nil || ev.Chunk.Text != "Hi" {
		t.Fatalf("first event = %+v", ev)
	}
	cancel()

	// The channel must close promptly without an error event.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if ev.Err != nil {
				t.Fatalf("cancellation surfaced as error event: %v", ev.Err)
			}
		case <-deadline:
			t.Fatal("stream did not close after cancellation")
		}
	}
}

func TestGenerateStream_SteadyStreamOutlivesTimeout(t *testing.T) {
	// The timeout is an idle window between chunks, not a total stream
	// deadline: a generation that keeps producing must run to completion
	// even when it takes far longer than the configured timeout.
	const chunkCount = 8
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.Write([]byte(`{"models":[]}`))
			return
		}
		flusher := w.(http.Flusher)
		for i := 0; i < chunkCount; i++ {
			done := i == chunkCount-1
			fmt.Fprintf(w, `{"response":"c%d","done":%t}`+"\n", i, done)
			flusher.Flush()
			time.Sleep(100 * time.Millisecond)
		}
	}))
	defer srv.Close()

	// 300ms idle window; the full stream takes ~800ms but no gap between
	// chunks exceeds 100ms.
	c := newTestClient(t, srv.URL, 300*time.Millisecond)
	defer c.Close()

	ch, err := c.GenerateStream(context.Background(), "Hello", backend.Params{})
	if err != nil {
		t.Fatalf("GenerateStream: %v", err)
	}

	chunks, err := collect(t, ch)
	if err != nil {
		t.Fatalf("steady stream aborted: %v", err)
	}
	if len(chunks) != chunkCount {
		t.Fatalf("got %d chunks, want %d: %+v", len(chunks), chunkCount, chunks)
	}
	if !chunks[chunkCount-1].IsComplete {
		t.Error("final chunk not marked complete")
	}
}

func TestGenerateStream_AbandonedConsumerClosesChannel(t *testing.T) {
	// A consumer that walks away without canceling must not wedge the
	// reader goroutine: the idle watchdog tears the stream down and the
	// channel still closes.
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.Write([]byte(`{"models":[]}`))
			return
		}
		flusher := w.(http.Flusher)
		fmt.Fprintln(w, `{"response":"Hi","done":false}`)
		flusher.Flush()
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, srv.URL, 200*time.Millisecond)
	defer c.Close()

	ch, err := c.GenerateStream(context.Background(), "Hello", backend.Params{})
	if err != nil {
		t.Fatalf("GenerateStream: %v", err)
	}

	// Ignore the stream entirely for longer than the timeout, then drain.
	time.Sleep(500 * time.Millisecond)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("stream did not close after consumer abandoned it")
		}
	}
}

func TestGenerateStream_TimeoutMidStream(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/tags" {
			w.Write([]byte(`{"models":[]}`))
			return
		}
		flusher := w.(http.Flusher)
		fmt.Fprintln(w, `{"response":"Hi","done":false}`)
		flusher.Flush()
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, srv.URL, 200*time.Millisecond)
	defer c.Close()

	ch, err := c.GenerateStream(context.Background(), "Hello", backend.Params{})
	if err != nil {
		t.Fatalf("GenerateStream: %v", err)
	}

	chunks, err := collect(t, ch)
	if len(chunks) != 1 {
		t.Errorf("got %d chunks before timeout, want 1", len(chunks))
	}
	var bErr *backend.Error
	if !errors.As(err, &bErr) {
		t.Fatalf("stream error = %v, want *backend.Error", err)
	}
	if bErr.Kind != backend.ErrorKindTimeout {
		t.Errorf("kind = %q, want %q", bErr.Kind, backend.ErrorKindTimeout)
	}
}
