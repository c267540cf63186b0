package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - backend.go: Backend selection
//   - database.go: Database, Redis and cache configuration
//   - http.go: HTTP server configuration
//   - observability.go: Logging, metrics and notifications
type AppConfig struct {
	// IsDev controls development mode behavior.
	// Set DEV=true or GO_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Backend selects the repository implementation.
	Backend BackendMode `env:"BACKEND" envDefault:"memory"`

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`
	Cache    CacheConfig

	// HTTP server configuration
	HTTP HTTPConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Backend = ParseBackend(string(c.Backend))
	c.Postgres.Sanitize()
	c.Redis.Sanitize()
	c.HTTP.Sanitize()
	c.Cache.Sanitize()
	c.Observability.Sanitize()

	c.detectDevMode()
}

// detectDevMode falls back to GO_ENV when DEV is not set.
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		goEnv := strings.ToLower(os.Getenv("GO_ENV"))
		c.IsDev = goEnv == "development" || goEnv == "dev"
	}
}

// UsesPostgres reports whether the PostgreSQL backend is selected.
func (c *AppConfig) UsesPostgres() bool { return c.Backend == BackendPostgres }

// UsesRedis reports whether a Redis connection is needed.
func (c *AppConfig) UsesRedis() bool { return c.Cache.Enabled }
