package backend

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the token-bucket limiter in front of a
// backend client.
type RateLimitConfig struct {
	// RequestsPerMinute is the sustained request rate.
	RequestsPerMinute float64
	// Burst is the maximum burst size above the sustained rate.
	Burst int
}

// RateLimited wraps a Client with token-bucket rate limiting. Waiting
// for a token respects the call context; a context that expires during
// the wait surfaces as a timeout-kind error. Requests are never dropped,
// only delayed.
type RateLimited struct {
	inner   Client
	limiter *rate.Limiter
}

// NewRateLimited wraps inner with rate limiting using cfg.
func NewRateLimited(inner Client, cfg RateLimitConfig) (*RateLimited, error) {
	if cfg.RequestsPerMinute <= 0 {
		return nil, fmt.Errorf("rate limit: RequestsPerMinute must be > 0")
	}
	if cfg.Burst <= 0 {
		return nil, fmt.Errorf("rate limit: Burst must be > 0")
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute/60.0), cfg.Burst)
	return &RateLimited{inner: inner, limiter: limiter}, nil
}

var _ Client = (*RateLimited)(nil)

// Generate waits for a token, then delegates to the wrapped client.
func (r *RateLimited) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	if err := r.wait(ctx); err != nil {
		return "", err
	}
	return r.inner.Generate(ctx, prompt, params)
}

// GenerateStream waits for a token, then delegates to the wrapped client.
// The token covers the whole stream; individual chunks are not limited.
func (r *RateLimited) GenerateStream(ctx context.Context, prompt string, params Params) (<-chan StreamEvent, error) {
	if err := r.wait(ctx); err != nil {
		return nil, err
	}
	return r.inner.GenerateStream(ctx, prompt, params)
}

// Close delegates to the wrapped client.
func (r *RateLimited) Close() error {
	return r.inner.Close()
}

func (r *RateLimited) wait(ctx context.Context) error {
	if err := r.limiter.Wait(ctx); err != nil {
		if ctx.Err() != nil {
			// Preserve cancellation so callers don't map it as a
			// backend failure.
			return ctx.Err()
		}
		return NewTimeoutError("rate limit wait: " + err.Error())
	}
	return nil
}
