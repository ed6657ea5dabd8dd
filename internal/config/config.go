package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is populated from CHATTY_* environment variables; flags in cmd/server
// override individual fields.
type Config struct {
	ServerAddr     string   `envconfig:"SERVER_ADDR" default:"localhost:8000"`
	DatabaseDSN    string   `envconfig:"DATABASE_DSN" default:"host=localhost user=postgres password=postgres dbname=postgres sslmode=disable"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("chatty", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.ServerAddr == "" {
		return fmt.Errorf("server address cannot be empty")
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database DSN cannot be empty")
	}

	return nil
}
