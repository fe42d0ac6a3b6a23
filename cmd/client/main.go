// Command client is a small example caller for the bruecke bridge. It
// issues one unary generation followed by one streaming generation and
// prints fragments as they arrive.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/bruecke-dev/bruecke/pkg/llmpb"
)

func main() {
	if err := run(); err != nil {
		slog.Error("client failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "localhost:50051", "bridge address")
	prompt := flag.String("prompt", "Why is the sky blue?", "prompt to send")
	apiKey := flag.String("api-key", "", "API key (optional)")
	timeout := flag.Duration("timeout", 2*time.Minute, "per-call timeout")
	flag.Parse()

	conn, err := grpc.NewClient(*addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", *addr, err)
	}
	defer conn.Close()

	client := llmpb.NewLLMServiceClient(conn)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if *apiKey != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+*apiKey)
	}

	req := &llmpb.LLMRequest{
		Prompt: *prompt,
		Parameters: &llmpb.GenerationParameters{
			Temperature: 0.7,
			MaxTokens:   256,
			TopP:        0.95,
		},
	}

	fmt.Println("--- unary ---")
	resp, err := client.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("Generate: %w", err)
	}
	fmt.Println(resp.GetText())

	fmt.Println("--- streaming ---")
	stream, err := client.GenerateStream(ctx, req)
	if err != nil {
		return fmt.Errorf("GenerateStream: %w", err)
	}
	for {
		msg, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("stream recv: %w", err)
		}
		fmt.Print(msg.GetText())
		if msg.GetIsComplete() {
			break
		}
	}
	fmt.Println()
	return nil
}
