package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/shutterdesk/studio/config"
	"github.com/shutterdesk/studio/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		slog.ErrorContext(ctx, "load config", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
	logger := bootstrap.InitLogger(cfg.Observability.Logging)
	if err := run(ctx, &cfg, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) error {
	logStartupInfo(ctx, logger, cfg)

	infra, err := bootstrap.ConnectInfrastructure(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := infra.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close infrastructure failed", "error", cerr)
		}
	}()

	repos, err := bootstrap.BuildRepositories(cfg, infra.DB)
	if err != nil {
		return err
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      cfg,
		Repos:       repos,
		RedisClient: infra.Redis,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.RunServicesWithShutdown(&bootstrap.ServiceOrchestrationConfig{
		Config:   cfg,
		Services: services,
		Logger:   logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	attrs := []any{"backend", string(cfg.Backend), "cache_enabled", cfg.Cache.Enabled, "addr", cfg.HTTP.Addr}
	if cfg.UsesPostgres() {
		attrs = append(attrs, "db_host", cfg.Postgres.Host, "db_port", cfg.Postgres.Port, "db_name", cfg.Postgres.Name)
	}
	logger.InfoContext(ctx, "starting studio service", attrs...)
}
