package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in [1,65535], got %d", c.Server.Port))
	}

	if c.Server.TLS.Enabled {
		if c.Server.TLS.CertFile == "" || c.Server.TLS.KeyFile == "" {
			errs = append(errs, fmt.Errorf("server.tls.cert_file and server.tls.key_file are required when TLS is enabled"))
		}
	}

	if !strings.HasPrefix(c.Backend.URL, "http://") && !strings.HasPrefix(c.Backend.URL, "https://") {
		errs = append(errs, fmt.Errorf("backend.url must start with http:// or https://, got %q", c.Backend.URL))
	}

	if c.Backend.Model == "" {
		errs = append(errs, fmt.Errorf("backend.model is required"))
	}

	if c.Backend.RequestTimeout < time.Second {
		errs = append(errs, fmt.Errorf("backend.request_timeout must be >= 1s, got %s", c.Backend.RequestTimeout))
	}

	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		errs = append(errs, fmt.Errorf("generation.temperature must be in [0,2], got %g", c.Generation.Temperature))
	}

	if c.Generation.MaxTokens < 1 {
		errs = append(errs, fmt.Errorf("generation.max_tokens must be >= 1, got %d", c.Generation.MaxTokens))
	}

	if c.Generation.TopP <= 0 || c.Generation.TopP > 1 {
		errs = append(errs, fmt.Errorf("generation.top_p must be in (0,1], got %g", c.Generation.TopP))
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.RequestsPerMinute <= 0 {
			errs = append(errs, fmt.Errorf("rate_limit.requests_per_minute must be > 0, got %g", c.RateLimit.RequestsPerMinute))
		}
		if c.RateLimit.Burst <= 0 {
			errs = append(errs, fmt.Errorf("rate_limit.burst must be > 0, got %d", c.RateLimit.Burst))
		}
	}

	switch c.Auth.Type {
	case "none", "apikey":
		// valid
	default:
		errs = append(errs, fmt.Errorf("auth.type must be \"none\" or \"apikey\", got %q", c.Auth.Type))
	}

	if c.Auth.Type == "apikey" && len(c.Auth.APIKeys) == 0 {
		errs = append(errs, fmt.Errorf("auth.api_keys must not be empty when auth.type is \"apikey\""))
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
		// valid
	default:
		errs = append(errs, fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level))
	}

	switch c.Logging.Format {
	case "text", "json":
		// valid
	default:
		errs = append(errs, fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}
