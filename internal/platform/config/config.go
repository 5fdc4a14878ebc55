package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the employee API.
type Config struct {
	Addr            string          `env:"API_ADDR" envDefault:":8080"`
	LogLevel        string          `env:"LOG_LEVEL" envDefault:"info"`
	Realm           string          `env:"AUTH_REALM"` // empty sends a bare "Basic" challenge
	SeedFile        string          `env:"SEED_FILE"`  // YAML users and employees; empty uses the built-in seed
	MaxBodyBytes    int64           `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	ShutdownTimeout time.Duration   `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RateLimit       RateLimitConfig `envPrefix:"RATE_LIMIT_"`
}

// RateLimitConfig holds token bucket parameters for per-IP rate limiting.
type RateLimitConfig struct {
	Rate  float64 `env:"RATE" envDefault:"100"`
	Burst int     `env:"BURST" envDefault:"20"`
}

// Load reads configuration from environment variables, falling back to defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	if cfg.RateLimit.Rate <= 0 || cfg.RateLimit.Burst <= 0 {
		return Config{}, fmt.Errorf("rate limit rate and burst must be positive")
	}
	return cfg, nil
}
