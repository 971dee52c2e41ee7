// Package config loads application configuration from the environment.
// All variables are prefixed HEARTH_, e.g. HEARTH_SESSION_SECRET.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port          string `default:"8080"`
	DBPath        string `envconfig:"DB_PATH" default:"hearth.db"`
	SessionSecret string `envconfig:"SESSION_SECRET" default:"dev-secret-change-me"`
	// SessionSecure marks the session cookie HTTPS-only. Off by default
	// for local use; turn on behind TLS.
	SessionSecure bool   `envconfig:"SESSION_SECURE" default:"false"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	// LoginRateLimit is the per-IP cap on login attempts per minute.
	LoginRateLimit int `envconfig:"LOGIN_RATE_LIMIT" default:"20"`
}

func Load() (*Config, error) {
	var c Config
	if err := envconfig.Process("hearth", &c); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if c.LoginRateLimit < 1 {
		return nil, fmt.Errorf("login rate limit must be at least 1, got %d", c.LoginRateLimit)
	}
	return &c, nil
}
