package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/shutterdesk/studio/config"
	"github.com/shutterdesk/studio/internal/migrate"
)

const applicationName = "studio"

// Infrastructure holds the external connections the configured backend and cache need.
// Either field is nil when the config does not ask for it.
type Infrastructure struct {
	DB    *sql.DB
	Redis *redis.Client
}

// ConnectInfrastructure opens PostgreSQL for the postgres backend (applying migrations when
// enabled) and Redis when the shared cache is on. Anything opened is closed again on failure.
func ConnectInfrastructure(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*Infrastructure, error) {
	if logger == nil {
		logger = slog.Default()
	}
	infra := &Infrastructure{}

	if cfg.UsesPostgres() {
		db, err := ConnectDB(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect db: %w", err)
		}
		infra.DB = db

		if cfg.Postgres.RunMigrationsOnStart {
			if err := RunMigrations(ctx, db, logger); err != nil {
				return nil, errors.Join(err, infra.Close())
			}
		} else {
			logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		}
	}

	client, err := ConnectRedis(ctx, cfg.Redis, cfg.Cache, logger)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("connect redis: %w", err), infra.Close())
	}
	infra.Redis = client
	return infra, nil
}

// Close releases every open connection.
func (i *Infrastructure) Close() error {
	var errs []error
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if i.DB != nil {
		if err := i.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ConnectDB opens a database/sql pool over pgx and verifies it with a ping.
func ConnectDB(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) (*sql.DB, error) {
	connCfg, err := postgresConfig(cfg)
	if err != nil {
		return nil, err
	}

	db := stdlib.OpenDB(*connCfg)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if pingErr := db.PingContext(pingCtx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close database connection: %w", closeErr))
		}
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	if logger != nil {
		logger.InfoContext(ctx, "database connected",
			"host", cfg.Host,
			"port", cfg.Port,
			"database", cfg.Name,
			"max_open_conns", cfg.MaxOpenConns,
		)
	}
	return db, nil
}

// postgresConfig builds the pgx connection config. The URL form keeps special characters in
// credentials intact.
func postgresConfig(cfg config.DBConfig) (*pgx.ConnConfig, error) {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	q := u.Query()
	q.Set("sslmode", cfg.SSLMode)
	u.RawQuery = q.Encode()

	connCfg, err := pgx.ParseConfig(u.String())
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	connCfg.ConnectTimeout = cfg.ConnectTimeout
	if connCfg.RuntimeParams == nil {
		connCfg.RuntimeParams = map[string]string{}
	}
	connCfg.RuntimeParams["application_name"] = applicationName
	return connCfg, nil
}

// ConnectRedis returns a client for the shared cache tier and invalidation channel, or nil
// when the cache is disabled.
func ConnectRedis(
	ctx context.Context,
	cfg config.RedisConfig,
	cache config.CacheConfig,
	logger *slog.Logger,
) (*redis.Client, error) {
	if !cache.Enabled {
		return nil, nil //nolint:nilnil // a disabled cache has no client and no error.
	}

	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DialTimeout)
	defer cancel()
	if pingErr := client.Ping(pingCtx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis: %w", pingErr)
	}

	if logger != nil {
		// opts.Addr never carries credentials.
		logger.InfoContext(ctx, "redis connected",
			"addr", opts.Addr,
			"db", opts.DB,
			"channel", cache.InvalidationChannel,
		)
	}
	return client, nil
}

// redisOptions accepts host:port or a redis:// URL. A URL brings its own db; its password
// falls back to cfg.Password.
func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, errors.New("redis configuration requires a URI")
	}

	opts := &redis.Options{Addr: uri, Password: cfg.Password, DB: cfg.DB}
	if strings.HasPrefix(uri, "redis://") || strings.HasPrefix(uri, "rediss://") {
		parsed, err := redis.ParseURL(uri)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		if parsed.Password == "" {
			parsed.Password = cfg.Password
		}
		opts = parsed
	}
	opts.PoolSize = cfg.PoolSize
	opts.DialTimeout = cfg.DialTimeout
	opts.ClientName = applicationName
	return opts, nil
}

// RunMigrations runs database migrations.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if err := migrate.Run(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if logger != nil {
		logger.InfoContext(ctx, "database migrations completed")
	}

	return nil
}
