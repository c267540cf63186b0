package config

import (
	"strings"
	"time"
)

// DBConfig contains PostgreSQL database configuration.
type DBConfig struct {
	Host     string `env:"HOST"     envDefault:"localhost"`
	Port     int    `env:"PORT"     envDefault:"5432"`
	User     string `env:"USER"     envDefault:"studio"`
	Password string `env:"PASSWORD" envDefault:"studio"`
	Name     string `env:"NAME"     envDefault:"studio"`
	SSLMode  string `env:"SSL_MODE" envDefault:"disable"` // Use 'disable' for local dev, 'require' for production
	// RunMigrationsOnStart controls whether the application automatically applies migrations during startup.
	RunMigrationsOnStart bool `env:"RUN_MIGRATIONS_ON_START" envDefault:"true"`

	MaxOpenConns    int           `env:"MAX_OPEN_CONNS"     envDefault:"25"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS"     envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME"  envDefault:"5m"`
	ConnectTimeout  time.Duration `env:"CONNECT_TIMEOUT"    envDefault:"5s"`
}

// Sanitize keeps the pool usable: at least one open connection, idle never above open.
func (c *DBConfig) Sanitize() {
	c.MaxOpenConns = max(c.MaxOpenConns, 1)
	c.MaxIdleConns = min(max(c.MaxIdleConns, 0), c.MaxOpenConns)
	c.ConnMaxLifetime = max(c.ConnMaxLifetime, 0)
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 5 * time.Second
	}
	if c.SSLMode = strings.TrimSpace(c.SSLMode); c.SSLMode == "" {
		c.SSLMode = "disable"
	}
}

// RedisConfig contains Redis configuration. URI is either host:port or a redis:// or
// rediss:// URL; a URL carries its own db and falls back to Password.
type RedisConfig struct {
	URI         string        `env:"URI"          envDefault:"localhost:6379"`
	Password    string        `env:"PASSWORD"     envDefault:""`
	DB          int           `env:"DB"           envDefault:"0"`
	PoolSize    int           `env:"POOL_SIZE"    envDefault:"10"`
	DialTimeout time.Duration `env:"DIAL_TIMEOUT" envDefault:"5s"`
}

// Sanitize trims the URI and restores defaults for non-positive pool settings.
func (c *RedisConfig) Sanitize() {
	if c.URI = strings.TrimSpace(c.URI); c.URI == "" {
		c.URI = "localhost:6379"
	}
	c.DB = max(c.DB, 0)
	if c.PoolSize <= 0 {
		c.PoolSize = 10
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
}

// CacheConfig controls the resource store and its optional Redis tier.
type CacheConfig struct {
	// Enabled turns on the shared Redis tier and cross-replica invalidation.
	Enabled bool `env:"CACHE_ENABLED" envDefault:"false"`

	// CollectionTTL is the expiry of collections written to Redis.
	CollectionTTL time.Duration `env:"CACHE_COLLECTION_TTL" envDefault:"5m"`

	// StaleAfter bounds local freshness. Zero keeps data fresh until invalidated.
	StaleAfter time.Duration `env:"CACHE_STALE_AFTER" envDefault:"0s"`

	// Grace is how long a collection survives after its last subscriber leaves.
	Grace time.Duration `env:"CACHE_GRACE" envDefault:"5m"`

	// FetchTimeout bounds one backend fetch.
	FetchTimeout time.Duration `env:"CACHE_FETCH_TIMEOUT" envDefault:"15s"`

	// InvalidationChannel is the Redis pub/sub channel shared by replicas.
	InvalidationChannel string `env:"CACHE_INVALIDATION_CHANNEL" envDefault:"studio:invalidations"`
}

// Sanitize clamps negative durations to zero and restores an empty channel name.
func (c *CacheConfig) Sanitize() {
	c.CollectionTTL = max(c.CollectionTTL, 0)
	c.StaleAfter = max(c.StaleAfter, 0)
	c.Grace = max(c.Grace, 0)
	c.FetchTimeout = max(c.FetchTimeout, 0)
	if c.InvalidationChannel = strings.TrimSpace(c.InvalidationChannel); c.InvalidationChannel == "" {
		c.InvalidationChannel = "studio:invalidations"
	}
}
