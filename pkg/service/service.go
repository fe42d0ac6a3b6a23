package service

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bruecke-dev/bruecke/pkg/backend"
	"github.com/bruecke-dev/bruecke/pkg/llmpb"
	"github.com/bruecke-dev/bruecke/pkg/observability"
)

// Service implements llmpb.LLMServiceServer. Each call makes at most
// one backend request; there are no retries and no state shared across
// calls beyond the client and the configured defaults.
type Service struct {
	llmpb.UnimplementedLLMServiceServer

	client   backend.Client
	defaults backend.Params
	log      *slog.Logger
}

// New creates a Service. Zero-valued request parameters are replaced by
// defaults before the backend call.
func New(client backend.Client, defaults backend.Params, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:   client,
		defaults: defaults,
		log:      logger,
	}
}

// Generate handles the unary call shape: one backend roundtrip, one
// response carrying the full text. A backend failure aborts the call
// with an Internal status carrying the underlying error text.
func (s *Service) Generate(ctx context.Context, req *llmpb.LLMRequest) (*llmpb.LLMCompleteResponse, error) {
	params := s.mergeParams(req.GetParameters())

	text, err := s.client.Generate(ctx, req.GetPrompt(), params)
	if err != nil {
		return nil, s.mapError(ctx, err)
	}
	return &llmpb.LLMCompleteResponse{Text: text}, nil
}

// GenerateStream handles the server-streaming call shape. Chunks are
// forwarded 1:1 in arrival order as soon as the backend yields them;
// nothing is buffered. Messages sent before a mid-stream failure stand;
// the failure is signaled as the call's final status.
func (s *Service) GenerateStream(req *llmpb.LLMRequest, stream grpc.ServerStreamingServer[llmpb.LLMResponse]) error {
	ctx := stream.Context()
	params := s.mergeParams(req.GetParameters())

	observability.StreamingCalls.Inc()
	defer observability.StreamingCalls.Dec()

	ch, err := s.client.GenerateStream(ctx, req.GetPrompt(), params)
	if err != nil {
		return s.mapError(ctx, err)
	}

	for ev := range ch {
		if ev.Err != nil {
			return s.mapError(ctx, ev.Err)
		}
		msg := &llmpb.LLMResponse{
			Text:       ev.Chunk.Text,
			IsComplete: ev.Chunk.IsComplete,
		}
		if err := stream.Send(msg); err != nil {
			// Returning cancels the call context, which tears down the
			// backend read.
			return err
		}
	}
	return nil
}

// mergeParams fills zero-valued request parameters from the configured
// defaults. proto3 cannot distinguish "absent" from an explicit zero,
// so a zero always takes the default.
func (s *Service) mergeParams(p *llmpb.GenerationParameters) backend.Params {
	merged := s.defaults
	if p == nil {
		return merged
	}
	if p.GetTemperature() != 0 {
		merged.Temperature = p.GetTemperature()
	}
	if p.GetMaxTokens() != 0 {
		merged.MaxTokens = p.GetMaxTokens()
	}
	if p.GetTopP() != 0 {
		merged.TopP = p.GetTopP()
	}
	if p.GetPresencePenalty() != 0 {
		merged.PresencePenalty = p.GetPresencePenalty()
	}
	if p.GetFrequencyPenalty() != 0 {
		merged.FrequencyPenalty = p.GetFrequencyPenalty()
	}
	return merged
}

// mapError converts a backend failure into the call's terminal status.
// Client-side cancellation is reported as Canceled and an expired call
// deadline as DeadlineExceeded, never as a backend fault. Everything
// else maps uniformly to Internal with the underlying error text as
// detail; stack traces never leak.
func (s *Service) mapError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled) {
		return status.Error(codes.Canceled, "call canceled by client")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, "call deadline exceeded")
	}
	s.log.Error("generation failed", "error", err)
	return status.Errorf(codes.Internal, "generation failed: %s", err.Error())
}
