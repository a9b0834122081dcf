package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Environment represents different deployment environments
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvTesting     Environment = "testing"
	EnvProduction  Environment = "production"
)

// Config holds the configuration for the meshwork service.
// Environment variables are parsed from the MESHWORK_ prefix.
type Config struct {
	Environment Environment `envconfig:"ENVIRONMENT" default:"development"`

	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Document store driver: memory, sqlite or postgres
	DocStoreDriver string `envconfig:"DOCSTORE_DRIVER" default:"sqlite"`
	SQLitePath     string `envconfig:"SQLITE_PATH" default:"./data/meshwork.db"`
	PostgresDSN    string `envconfig:"POSTGRES_DSN" default:""`

	// Text generation / classification (OpenAI-compatible endpoint).
	// When disabled, notifications fall back to raw subject text and
	// moderation review approves nothing.
	GenAIEnabled    bool   `envconfig:"GENAI_ENABLED" default:"true"`
	GenModel        string `envconfig:"GEN_MODEL" default:"gpt-4o-mini"`
	ModerationModel string `envconfig:"MODERATION_MODEL" default:"omni-moderation-latest"`
}

// ResolveDefaults validates the docstore driver selection and derived values.
func (c *Config) ResolveDefaults() error {
	allowed := map[string]bool{"memory": true, "sqlite": true, "postgres": true}
	if !allowed[c.DocStoreDriver] {
		return fmt.Errorf("unsupported DOCSTORE_DRIVER: %s", c.DocStoreDriver)
	}
	if c.DocStoreDriver == "postgres" && c.PostgresDSN == "" {
		return fmt.Errorf("DOCSTORE_DRIVER=postgres requires POSTGRES_DSN")
	}
	if c.DocStoreDriver == "sqlite" && c.SQLitePath == "" {
		return fmt.Errorf("DOCSTORE_DRIVER=sqlite requires SQLITE_PATH")
	}
	return nil
}

// New creates a new Config by parsing environment variables.
// Example: MESHWORK_HTTP_PORT, MESHWORK_DOCSTORE_DRIVER.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("MESHWORK", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Info().
		Str("environment", string(cfg.Environment)).
		Int("port", cfg.HTTPPort).
		Str("docstore_driver", cfg.DocStoreDriver).
		Bool("genai_enabled", cfg.GenAIEnabled).
		Str("gen_model", cfg.GenModel).
		Str("moderation_model", cfg.ModerationModel).
		Msg("Configuration loaded")

	return &cfg, nil
}

// NewForTesting creates a config specifically for testing.
func NewForTesting() *Config {
	return &Config{
		Environment:     EnvTesting,
		HTTPPort:        8080,
		DocStoreDriver:  "memory",
		GenAIEnabled:    false,
		GenModel:        "gpt-4o-mini",
		ModerationModel: "omni-moderation-latest",
	}
}

// IsTesting returns true if the environment is set to testing
func (c *Config) IsTesting() bool {
	return c.Environment == EnvTesting
}

// IsProduction returns true if the environment is set to production
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// GetHTTPAddr returns the HTTP server address
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
