// Command mock-backend runs a deterministic Ollama-protocol server for
// manual testing of the bridge. It echoes a canned completion for the
// prompt, word by word when streaming. Failure modes are scriptable via
// prompt keywords:
//
//	FAIL500    - respond with HTTP 500
//	GARBAGE    - inject an unparsable line mid-stream
//	TRUNCATE   - close the stream before the done chunk
//
// Configuration:
//
//	MOCK_PORT - Listen port (default: 11434)
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

func main() {
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "11434"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate", handleGenerate)
	mux.HandleFunc("GET /api/tags", handleTags)

	srv := &http.Server{Addr: ":" + port, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("mock backend starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("mock backend failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("mock backend shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateChunk struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func handleTags(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"models":[{"name":"mock-model:latest"}]}`)
}

func handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	if strings.Contains(req.Prompt, "FAIL500") {
		http.Error(w, "mock backend error", http.StatusInternalServerError)
		return
	}

	completion := "This is a deterministic mock completion for: " + req.Prompt

	if !req.Stream {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(generateChunk{Model: req.Model, Response: completion, Done: true})
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)

	words := strings.SplitAfter(completion, " ")
	for i, word := range words {
		if strings.Contains(req.Prompt, "GARBAGE") && i == 1 {
			fmt.Fprintln(w, "{not json")
		}
		last := i == len(words)-1
		if last && strings.Contains(req.Prompt, "TRUNCATE") {
			return
		}
		enc.Encode(generateChunk{Model: req.Model, Response: word, Done: last})
		if flusher != nil {
			flusher.Flush()
		}
		time.Sleep(20 * time.Millisecond)
	}
}
