package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bruecke-dev/bruecke/pkg/backend"
	"github.com/bruecke-dev/bruecke/pkg/observability"
)

// probeTimeout bounds the construction-time reachability probe.
const probeTimeout = 5 * time.Second

// Client implements backend.Client against the Ollama HTTP API.
type Client struct {
	cfg    Config
	client *http.Client
	log    *slog.Logger
}

// Ensure Client implements backend.Client at compile time.
var _ backend.Client = (*Client)(nil)

// New creates a new Ollama client. The backend is probed once for
// diagnostics; an unreachable backend or missing model logs a warning
// but never fails construction, so service startup is decoupled from
// backend availability.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("ollama: BaseURL is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("ollama: Model is required")
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	c := &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: cfg.Logger,
	}
	c.probe()
	return c, nil
}

// probe checks backend reachability and model availability. Diagnostic
// only: every failure path is a warning.
func (c *Client) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/api/tags", nil)
	if err != nil {
		c.log.Warn("could not build backend probe request", "error", err)
		return
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("could not reach backend, proceeding anyway",
			"url", c.cfg.BaseURL,
			"error", err,
		)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn("backend probe returned non-success status",
			"url", c.cfg.BaseURL,
			"status", resp.StatusCode,
		)
		return
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		c.log.Warn("could not parse backend tags response", "error", err)
		return
	}

	names := make([]string, 0, len(tags.Models))
	found := false
	for _, m := range tags.Models {
		names = append(names, m.Name)
		if strings.Contains(m.Name, c.cfg.Model) {
			found = true
		}
	}
	if !found {
		c.log.Warn("model not found on backend, it may be pulled on first request",
			"model", c.cfg.Model,
			"available", strings.Join(names, ", "),
		)
	}
}

// Generate performs a single non-streaming generation and returns the
// backend's response text verbatim.
func (c *Client) Generate(ctx context.Context, prompt string, params backend.Params) (string, error) {
	start := time.Now()
	text, err := c.generate(ctx, prompt, params)
	observability.BackendLatency.WithLabelValues("generate").Observe(time.Since(start).Seconds())
	observability.BackendRequestsTotal.WithLabelValues("generate", outcomeLabel(err)).Inc()
	return text, err
}

func (c *Client) generate(ctx context.Context, prompt string, params backend.Params) (string, error) {
	body, err := json.Marshal(c.newGenerateRequest(prompt, params, false))
	if err != nil {
		return "", backend.NewMalformedError("marshal request: " + err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", backend.NewConnectionError("build request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", mapNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", mapHTTPError(resp)
	}

	var genResp generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return "", backend.NewMalformedError("parse response: " + err.Error())
	}
	return genResp.Response, nil
}

// GenerateStream starts a streaming generation. The returned channel
// yields chunks in line-arrival order and is closed after the final
// chunk, a terminal error event, or context cancellation. The response
// body is released on every exit path.
//
// The configured timeout is an idle window, not a total deadline: it is
// re-armed on every line from the backend, so a generation that keeps
// producing chunks can run for as long as it needs. Only a backend that
// goes silent for the whole window times out.
func (c *Client) GenerateStream(ctx context.Context, prompt string, params backend.Params) (<-chan backend.StreamEvent, error) {
	body, err := json.Marshal(c.newGenerateRequest(prompt, params, true))
	if err != nil {
		return nil, backend.NewMalformedError("marshal request: " + err.Error())
	}

	ctx, cancel := context.WithCancelCause(ctx)
	watchdog := time.AfterFunc(c.cfg.Timeout, func() {
		cancel(context.DeadlineExceeded)
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		watchdog.Stop()
		cancel(nil)
		return nil, backend.NewConnectionError("build request: " + err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	// The shared client's Timeout would cut the body read short; reuse
	// its transport and let the context govern the stream lifetime.
	streamClient := &http.Client{
		Transport: c.client.Transport,
	}

	start := time.Now()
	resp, err := streamClient.Do(req)
	if err != nil {
		watchdog.Stop()
		mapped := mapNetworkError(err)
		if errors.Is(context.Cause(ctx), context.DeadlineExceeded) {
			// The watchdog fired while the connection was still being
			// established.
			mapped = backend.NewTimeoutError("no response from backend within request timeout")
		}
		cancel(nil)
		observability.BackendRequestsTotal.WithLabelValues("stream", outcomeLabel(mapped)).Inc()
		return nil, mapped
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		mapped := mapHTTPError(resp)
		resp.Body.Close()
		watchdog.Stop()
		cancel(nil)
		observability.BackendRequestsTotal.WithLabelValues("stream", outcomeLabel(mapped)).Inc()
		return nil, mapped
	}

	ch := make(chan backend.StreamEvent, 16)
	go func() {
		defer close(ch)
		defer cancel(nil)
		defer watchdog.Stop()
		defer resp.Body.Close()
		err := c.readStream(ctx, resp.Body, watchdog, ch)
		observability.BackendLatency.WithLabelValues("stream").Observe(time.Since(start).Seconds())
		observability.BackendRequestsTotal.WithLabelValues("stream", outcomeLabel(err)).Inc()
	}()
	return ch, nil
}

// Close releases the client's connection pool.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

func (c *Client) newGenerateRequest(prompt string, params backend.Params, stream bool) generateRequest {
	return generateRequest{
		Model:  c.cfg.Model,
		Prompt: prompt,
		Stream: stream,
		Options: generateOptions{
			Temperature:      params.Temperature,
			NumPredict:       params.MaxTokens,
			TopP:             params.TopP,
			PresencePenalty:  params.PresencePenalty,
			FrequencyPenalty: params.FrequencyPenalty,
		},
	}
}

// outcomeLabel maps a backend call result to a metric label value.
func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var bErr *backend.Error
	if errors.As(err, &bErr) {
		return string(bErr.Kind)
	}
	return "canceled"
}
