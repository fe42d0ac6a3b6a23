// Package config provides unified configuration for the bruecke bridge.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (BRUECKE_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the bridge.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Backend       BackendConfig       `yaml:"backend"`
	Generation    GenerationConfig    `yaml:"generation"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"`
	Auth          AuthConfig          `yaml:"auth"`
	Logging       LoggingConfig       `yaml:"logging"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds gRPC server settings.
type ServerConfig struct {
	Port                 int       `yaml:"port"`                   // default: 50051
	MaxConcurrentStreams uint32    `yaml:"max_concurrent_streams"` // default: 0 (gRPC default)
	TLS                  TLSConfig `yaml:"tls"`
}

// TLSConfig holds optional TLS serving settings.
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// BackendConfig holds inference backend settings.
type BackendConfig struct {
	URL            string        `yaml:"url"`             // default: http://localhost:11434
	Model          string        `yaml:"model"`           // default: "model-name" placeholder
	RequestTimeout time.Duration `yaml:"request_timeout"` // default: 30s
}

// GenerationConfig holds the default sampling parameters applied when a
// request leaves them unset.
type GenerationConfig struct {
	Temperature      float32 `yaml:"temperature"`       // default: 0.7
	MaxTokens        int32   `yaml:"max_tokens"`        // default: 2048
	TopP             float32 `yaml:"top_p"`             // default: 0.95
	PresencePenalty  float32 `yaml:"presence_penalty"`  // default: 0
	FrequencyPenalty float32 `yaml:"frequency_penalty"` // default: 0
}

// RateLimitConfig holds the optional backend request limiter settings.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"` // default: false
	RequestsPerMinute float64 `yaml:"requests_per_minute"`
	Burst             int     `yaml:"burst"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	Type    string         `yaml:"type"`     // "none" or "apikey", default: "none"
	APIKeys []APIKeyConfig `yaml:"api_keys"` // API key entries for type=apikey
}

// APIKeyConfig describes a single API key entry.
type APIKeyConfig struct {
	Key     string `yaml:"key"`
	KeyFile string `yaml:"key_file"` // _file variant for key
	Subject string `yaml:"subject"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug|info|warn|error, default: "info"
	Format string `yaml:"format"` // "text" or "json", default: "text"
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Addr    string `yaml:"addr"`    // default: ":9100"
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port: 50051,
		},
		Backend: BackendConfig{
			URL:            "http://localhost:11434",
			Model:          "model-name",
			RequestTimeout: 30 * time.Second,
		},
		Generation: GenerationConfig{
			Temperature: 0.7,
			MaxTokens:   2048,
			TopP:        0.95,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: 60,
			Burst:             10,
		},
		Auth: AuthConfig{
			Type: "none",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Addr:    ":9100",
				Path:    "/metrics",
			},
		},
	}
}
