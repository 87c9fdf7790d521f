// Package config provides client configuration from environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds client configuration.
type Config struct {
	// APIBaseURL is the base URL of the report backend
	APIBaseURL string `env:"PRIMA_API_BASE_URL" envDefault:"http://localhost:8000"`

	// DBPath is the path to the local BoltDB database
	DBPath string `env:"PRIMA_DB_PATH" envDefault:"primacli.db"`

	// HTTPTimeout bounds every backend call, including report generation
	HTTPTimeout time.Duration `env:"PRIMA_HTTP_TIMEOUT" envDefault:"120s"`

	// RefreshCheckInterval is the period of the token expiry watcher
	RefreshCheckInterval time.Duration `env:"PRIMA_REFRESH_CHECK_INTERVAL" envDefault:"30s"`

	// AccessTokenLookahead refreshes the access token this long before it expires
	AccessTokenLookahead time.Duration `env:"PRIMA_ACCESS_TOKEN_LOOKAHEAD" envDefault:"60s"`

	// CreatedBy is the backend user id stamped on generated reports
	CreatedBy int `env:"PRIMA_CREATED_BY" envDefault:"1"`

	// Debug enables debug logging
	Debug bool `env:"PRIMA_DEBUG" envDefault:"false"`
}

// New parses configuration from the environment.
func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
