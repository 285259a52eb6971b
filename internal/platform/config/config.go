// Copyright (c) 2026 Filmdeck. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to the catalogue sources and session manager via constructors.
  - Source selection: FILM_SOURCE decides between the remote REST service
    and the local PostgreSQL mirror. Redis caching is enabled by REDIS_URL.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Source Kinds

const (
	SourceREST     = "rest"
	SourcePostgres = "postgres"
)

// # Configuration Schema

// Config holds all runtime configuration for the Filmdeck server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// FilmSource selects where the catalogue is loaded from.
	FilmSource string `env:"FILM_SOURCE" envDefault:"rest"`

	// Remote film service
	RemoteBaseURL   string        `env:"REMOTE_BASE_URL"`
	RemoteAuthToken string        `env:"REMOTE_AUTH_TOKEN"`
	RemoteTimeout   time.Duration `env:"REMOTE_TIMEOUT" envDefault:"10s"`

	// Catalogue loading
	LoadTimeout     time.Duration `env:"LOAD_TIMEOUT"     envDefault:"20s"`
	LoadConcurrency int           `env:"LOAD_CONCURRENCY" envDefault:"8"`

	// Relational Database (PostgreSQL mirror), optional for the rest source.
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis), optional.
	RedisURL        string        `env:"REDIS_URL"`
	CatalogCacheTTL time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`

	// UI sessions
	SessionTTL    time.Duration `env:"SESSION_TTL"    envDefault:"30m"`
	CommentAuthor string        `env:"COMMENT_AUTHOR" envDefault:"Movie Buff"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"filmdeck.app"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Map environment variables to struct fields.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings that depend on each other.
func (c *Config) Validate() error {
	switch c.FilmSource {
	case SourceREST:
		if c.RemoteBaseURL == "" {
			return fmt.Errorf("config: REMOTE_BASE_URL is required when FILM_SOURCE=%s", SourceREST)
		}
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required when FILM_SOURCE=%s", SourcePostgres)
		}
	default:
		return fmt.Errorf("config: unknown FILM_SOURCE %q", c.FilmSource)
	}

	if c.LoadConcurrency < 1 {
		return fmt.Errorf("config: LOAD_CONCURRENCY must be positive, got %d", c.LoadConcurrency)
	}

	return nil
}

// HasDatabase reports whether a PostgreSQL mirror is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// HasCache reports whether a Redis cache is configured.
func (c *Config) HasCache() bool {
	return c.RedisURL != ""
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
