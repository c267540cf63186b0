package config

import (
	"log/slog"
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestParseBackend(t *testing.T) {
	tests := []struct {
		input    string
		expected BackendMode
	}{
		{input: "postgres", expected: BackendPostgres},
		{input: " PostgreSQL ", expected: BackendPostgres},
		{input: "pg", expected: BackendPostgres},
		{input: "memory", expected: BackendMemory},
		{input: "", expected: BackendMemory},
		{input: "mysql", expected: BackendMemory},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseBackend(tt.input); got != tt.expected {
				t.Fatalf("ParseBackend(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.UsesPostgres() {
		t.Fatal("expected memory backend by default")
	}
	if cfg.UsesRedis() {
		t.Fatal("expected the redis tier to be off by default")
	}
	if cfg.Cache.CollectionTTL != 5*time.Minute {
		t.Fatalf("unexpected collection ttl %v", cfg.Cache.CollectionTTL)
	}
	if cfg.Cache.StaleAfter != 0 {
		t.Fatalf("expected data to stay fresh until invalidated, got %v", cfg.Cache.StaleAfter)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.HTTP.Addr)
	}
	if !reflect.DeepEqual(cfg.Observability.Notifications.IgnoreKinds, []string{"validation"}) {
		t.Fatalf("unexpected ignore kinds %v", cfg.Observability.Notifications.IgnoreKinds)
	}
}

func TestAppConfig_ParseEnv(t *testing.T) {
	t.Setenv("BACKEND", "postgres")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("REDIS_URI", "cache:6380")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")
	t.Setenv("DB_MAX_IDLE_CONNS", "9")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_COLLECTION_TTL", "90s")
	t.Setenv("CACHE_STALE_AFTER", "30s")
	t.Setenv("CACHE_INVALIDATION_CHANNEL", "  ")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("OBSERVABILITY_NOTIFICATIONS_IGNORE_KINDS", "Validation, conflict")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if !cfg.UsesPostgres() || !cfg.UsesRedis() {
		t.Fatalf("expected postgres and redis, got backend=%q cache=%v", cfg.Backend, cfg.Cache.Enabled)
	}
	if cfg.Postgres.Host != "db.internal" || cfg.Postgres.Port != 6543 {
		t.Fatalf("unexpected db config %#v", cfg.Postgres)
	}
	if cfg.Postgres.MaxOpenConns != 4 || cfg.Postgres.MaxIdleConns != 4 {
		t.Fatalf("expected idle conns clamped to open conns, got %#v", cfg.Postgres)
	}
	if cfg.Redis.URI != "cache:6380" || cfg.Redis.DB != 3 {
		t.Fatalf("unexpected redis config %#v", cfg.Redis)
	}
	if cfg.Cache.CollectionTTL != 90*time.Second || cfg.Cache.StaleAfter != 30*time.Second {
		t.Fatalf("unexpected cache durations %#v", cfg.Cache)
	}
	if cfg.Cache.InvalidationChannel != "studio:invalidations" {
		t.Fatalf("expected default channel, got %q", cfg.Cache.InvalidationChannel)
	}
	if cfg.Observability.Logging.SlogLevel() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.Observability.Logging.SlogLevel())
	}
	if !reflect.DeepEqual(cfg.Observability.Notifications.IgnoreKinds, []string{"validation", "conflict"}) {
		t.Fatalf("unexpected ignore kinds %v", cfg.Observability.Notifications.IgnoreKinds)
	}
}

func TestCacheConfig_Sanitize(t *testing.T) {
	cfg := CacheConfig{CollectionTTL: -time.Second, StaleAfter: -time.Minute, Grace: -1, FetchTimeout: -1}
	cfg.Sanitize()

	if cfg.CollectionTTL != 0 || cfg.StaleAfter != 0 || cfg.Grace != 0 || cfg.FetchTimeout != 0 {
		t.Fatalf("expected negative durations to clamp to zero, got %#v", cfg)
	}
}

func TestDBConfig_Sanitize(t *testing.T) {
	cfg := DBConfig{MaxOpenConns: 0, MaxIdleConns: -2, ConnMaxLifetime: -time.Second, SSLMode: " "}
	cfg.Sanitize()

	if cfg.MaxOpenConns != 1 || cfg.MaxIdleConns != 0 || cfg.ConnMaxLifetime != 0 {
		t.Fatalf("unexpected pool settings %#v", cfg)
	}
	if cfg.ConnectTimeout != 5*time.Second || cfg.SSLMode != "disable" {
		t.Fatalf("expected defaults restored, got %#v", cfg)
	}
}

func TestRedisConfig_Sanitize(t *testing.T) {
	cfg := RedisConfig{URI: "  ", DB: -1, PoolSize: -3}
	cfg.Sanitize()

	if cfg.URI != "localhost:6379" || cfg.DB != 0 || cfg.PoolSize != 10 || cfg.DialTimeout != 5*time.Second {
		t.Fatalf("expected defaults restored, got %#v", cfg)
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	cfg := HTTPConfig{WriteTimeout: -time.Second}
	cfg.Sanitize()

	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.ReadHeaderTimeout <= 0 || cfg.ShutdownTimeout <= 0 {
		t.Fatalf("expected timeouts to fall back to defaults, got %#v", cfg)
	}
	if cfg.WriteTimeout != 0 {
		t.Fatalf("expected write timeout clamped to zero, got %v", cfg.WriteTimeout)
	}
}

func TestLoggingConfig_Sanitize(t *testing.T) {
	cfg := LoggingConfig{Level: " Warn ", Format: "yaml"}
	cfg.Sanitize()

	if cfg.Format != "json" {
		t.Fatalf("expected json fallback, got %q", cfg.Format)
	}
	if cfg.SlogLevel() != slog.LevelWarn {
		t.Fatalf("expected warn level, got %v", cfg.SlogLevel())
	}
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " ",
	}

	cfg.Sanitize()

	if cfg.Enabled {
		t.Fatalf("expected enabled to be false when address is empty")
	}

	cfg = ObservabilityMetricsConfig{
		Enabled:       true,
		StatsdAddress: " statsd:1234 ",
	}

	cfg.Sanitize()

	if !cfg.IsEnabled() {
		t.Fatalf("expected metrics to remain enabled")
	}
	if cfg.StatsdAddress != "statsd:1234" {
		t.Fatalf("expected address to be trimmed, got %q", cfg.StatsdAddress)
	}
}

func TestObservabilityNotificationsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityNotificationsConfig{
		Enabled:    true,
		Timeout:    0,
		RetryLimit: -1,
		Slack: SlackNotificationConfig{
			Enabled:    true,
			WebhookURL: " ",
			Channel:    "  ",
			Username:   "",
		},
		PagerDuty: PagerDutyNotificationConfig{
			Enabled:    true,
			RoutingKey: " ",
		},
	}

	cfg.Sanitize()

	if cfg.Timeout <= 0 {
		t.Fatalf("expected timeout to fall back to default, got %v", cfg.Timeout)
	}
	if cfg.RetryLimit < 0 {
		t.Fatalf("expected retry limit to be clamped to >= 0, got %d", cfg.RetryLimit)
	}
	if cfg.Slack.Enabled {
		t.Fatal("expected slack to be disabled without a webhook url")
	}
	if cfg.Slack.Username != "studio" {
		t.Fatalf("expected slack username default, got %q", cfg.Slack.Username)
	}
	if cfg.PagerDuty.Enabled {
		t.Fatal("expected pagerduty to be disabled without a routing key")
	}
	if cfg.PagerDuty.Source != "studio" || cfg.PagerDuty.Component != "studio" {
		t.Fatalf("expected pagerduty defaults, got %q/%q", cfg.PagerDuty.Source, cfg.PagerDuty.Component)
	}

	// Disabled top-level should disable child sinks.
	cfg = ObservabilityNotificationsConfig{
		Enabled: false,
		Slack: SlackNotificationConfig{
			Enabled:    true,
			WebhookURL: "https://hooks.slack.com/services/test",
		},
		PagerDuty: PagerDutyNotificationConfig{
			Enabled:    true,
			RoutingKey: "abc",
		},
	}
	cfg.Sanitize()

	if cfg.Slack.Enabled {
		t.Fatal("expected slack to be disabled when top-level notifications disabled")
	}
	if cfg.PagerDuty.Enabled {
		t.Fatal("expected pagerduty to be disabled when top-level notifications disabled")
	}
}
