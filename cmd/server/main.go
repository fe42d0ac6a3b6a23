// Command server runs the bruecke gRPC text-generation bridge.
//
// Configuration is layered: built-in defaults, a YAML config file
// (-config flag, BRUECKE_CONFIG, ./config.yaml, /etc/bruecke/config.yaml),
// BRUECKE_* environment variables, then command-line flag overrides.
// A .env file in the working directory is loaded into the environment
// first if present.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/bruecke-dev/bruecke/pkg/auth"
	"github.com/bruecke-dev/bruecke/pkg/backend"
	"github.com/bruecke-dev/bruecke/pkg/backend/ollama"
	"github.com/bruecke-dev/bruecke/pkg/config"
	"github.com/bruecke-dev/bruecke/pkg/llmpb"
	"github.com/bruecke-dev/bruecke/pkg/observability"
	"github.com/bruecke-dev/bruecke/pkg/service"
	"github.com/bruecke-dev/bruecke/pkg/transport"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to configuration file")
	port := flag.Int("port", 0, "port to listen on (overrides config)")
	backendURL := flag.String("backend-url", "", "backend API URL (overrides config)")
	model := flag.String("model", "", "model name to use (overrides config)")
	logLevel := flag.String("log-level", "", "logging level (overrides config)")
	flag.Parse()

	// Best effort; a missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *backendURL != "" {
		cfg.Backend.URL = *backendURL
	}
	if *model != "" {
		cfg.Backend.Model = *model
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	logger.Info("starting bruecke",
		"port", cfg.Server.Port,
		"backend", cfg.Backend.URL,
		"model", cfg.Backend.Model,
	)

	// Backend client; the reachability probe inside New only warns.
	var client backend.Client
	client, err = ollama.New(ollama.Config{
		BaseURL: cfg.Backend.URL,
		Model:   cfg.Backend.Model,
		Timeout: cfg.Backend.RequestTimeout,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("creating backend client: %w", err)
	}
	defer client.Close()

	if cfg.RateLimit.Enabled {
		client, err = backend.NewRateLimited(client, backend.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
		})
		if err != nil {
			return fmt.Errorf("creating rate limiter: %w", err)
		}
		logger.Info("backend rate limiting enabled",
			"requests_per_minute", cfg.RateLimit.RequestsPerMinute,
			"burst", cfg.RateLimit.Burst,
		)
	}

	svc := service.New(client, backend.Params{
		Temperature:      cfg.Generation.Temperature,
		MaxTokens:        cfg.Generation.MaxTokens,
		TopP:             cfg.Generation.TopP,
		PresencePenalty:  cfg.Generation.PresencePenalty,
		FrequencyPenalty: cfg.Generation.FrequencyPenalty,
	}, logger)

	opts, err := serverOptions(cfg, logger)
	if err != nil {
		return err
	}

	srv := grpc.NewServer(opts...)
	llmpb.RegisterLLMServiceServer(srv, svc)

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus("llm.LLMService", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, healthSrv)

	if cfg.Observability.Metrics.Enabled {
		go serveMetrics(cfg.Observability.Metrics, logger)
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", cfg.Server.Port, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", lis.Addr().String())
		if err := srv.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down gracefully")
		healthSrv.Shutdown()
		done := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(10 * time.Second):
			srv.Stop()
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// serverOptions assembles the interceptor chain and optional TLS.
// Recovery runs outermost so panics in later interceptors are caught too.
func serverOptions(cfg *config.Config, logger *slog.Logger) ([]grpc.ServerOption, error) {
	unary := []grpc.UnaryServerInterceptor{
		transport.UnaryRecovery(),
		transport.UnaryRequestID(),
		transport.UnaryLogging(logger),
		observability.UnaryMetrics(),
	}
	stream := []grpc.StreamServerInterceptor{
		transport.StreamRecovery(),
		transport.StreamRequestID(),
		transport.StreamLogging(logger),
		observability.StreamMetrics(),
	}

	if cfg.Auth.Type == "apikey" {
		entries := make([]auth.RawKeyEntry, 0, len(cfg.Auth.APIKeys))
		for _, k := range cfg.Auth.APIKeys {
			entries = append(entries, auth.RawKeyEntry{Key: k.Key, Subject: k.Subject})
		}
		authn := auth.New(entries)
		unary = append(unary, authn.UnaryInterceptor())
		stream = append(stream, authn.StreamInterceptor())
		logger.Info("API key authentication enabled", "keys", len(entries))
	}

	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(unary...),
		grpc.ChainStreamInterceptor(stream...),
	}

	if cfg.Server.MaxConcurrentStreams > 0 {
		opts = append(opts, grpc.MaxConcurrentStreams(cfg.Server.MaxConcurrentStreams))
	}

	if cfg.Server.TLS.Enabled {
		creds, err := credentials.NewServerTLSFromFile(cfg.Server.TLS.CertFile, cfg.Server.TLS.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("loading TLS credentials: %w", err)
		}
		opts = append(opts, grpc.Creds(creds))
		logger.Info("TLS enabled", "cert", cfg.Server.TLS.CertFile)
	}

	return opts, nil
}

// serveMetrics runs the Prometheus endpoint on its own listener so the
// gRPC port stays protocol-clean.
func serveMetrics(cfg config.MetricsConfig, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, promhttp.Handler())
	logger.Info("metrics listening", "addr", cfg.Addr, "path", cfg.Path)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		logger.Error("metrics server failed", "error", err)
	}
}

// newLogger builds the process logger from config.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	ho := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, ho))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, ho))
}
