package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shutterdesk/studio/config"
	"github.com/shutterdesk/studio/internal/core"
	"github.com/shutterdesk/studio/internal/data"
	"github.com/shutterdesk/studio/internal/data/memory"
	httpx "github.com/shutterdesk/studio/internal/http"
	"github.com/shutterdesk/studio/internal/observability/notify"
	"github.com/shutterdesk/studio/internal/observability/notify/pagerduty"
	"github.com/shutterdesk/studio/internal/observability/notify/slack"
	"github.com/shutterdesk/studio/internal/observability/statsd"
	"github.com/shutterdesk/studio/internal/service"
	"github.com/shutterdesk/studio/internal/service/failurenotifier"
	"github.com/shutterdesk/studio/internal/store"
)

const shutdownWaitTimeout = 10 * time.Second

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Services      *service.Services
	Registry      *store.Registry
	Health        map[string]httpx.HealthCheck
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink     *statsd.Client
	FailureNotifier *failurenotifier.Service
	// Sink receives every mutation outcome: the log sink plus the failure notifier.
	Sink notify.Sink
}

// metrics returns the configured sink, or a no-op when statsd is off.
//
//nolint:ireturn // callers only need the Sink interface.
func (o ObservabilityContainer) metrics() statsd.Sink {
	if o.MetricsSink == nil {
		return statsd.Nop{}
	}
	return o.MetricsSink
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	Repos       core.Repositories
	RedisClient *redis.Client
	Logger      *slog.Logger
}

// BuildRepositories selects the backend named by the config.
func BuildRepositories(cfg *config.AppConfig, db *sql.DB) (core.Repositories, error) {
	if cfg == nil || !cfg.UsesPostgres() {
		return memory.NewRepositories(), nil
	}
	if db == nil {
		return core.Repositories{}, errors.New("postgres backend selected without a database connection")
	}
	return data.NewRepositories(db), nil
}

// buildObservability configures metrics and notification adapters.
func buildObservability(logger *slog.Logger, cfg *config.AppConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Observability.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Observability.Metrics.StatsdAddress,
			Prefix:  cfg.Observability.Metrics.Prefix,
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	failureNotifier := buildFailureNotifier(obsLogger, cfg.Observability.Notifications, cfg.HTTP.BaseURL)

	return ObservabilityContainer{
		MetricsSink:     metricsSink,
		FailureNotifier: failureNotifier,
		Sink: notify.Fanout{
			notify.LogSink{Logger: obsLogger.With("component", "mutations")},
			failureNotifier,
		},
	}
}

func buildFailureNotifier(
	logger *slog.Logger,
	cfg config.ObservabilityNotificationsConfig,
	baseURL string,
) *failurenotifier.Service {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	if !cfg.Enabled {
		return failurenotifier.NewService(failurenotifier.Options{
			Logger: baseLogger.With("component", "failure_notifier"),
		})
	}

	sinks := make([]failurenotifier.SinkRegistration, 0, 2)

	if cfg.Slack.Enabled {
		client, err := slack.NewClient(slack.Config{
			WebhookURL: cfg.Slack.WebhookURL,
			Channel:    cfg.Slack.Channel,
			Username:   cfg.Slack.Username,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
			AppURL:     baseURL,
		})
		if err != nil {
			baseLogger.Error("failed to initialise slack notifier", "error", err)
		} else {
			sinks = append(sinks, failurenotifier.SinkRegistration{Name: "slack", Sink: client})
		}
	}

	if cfg.PagerDuty.Enabled {
		client, err := pagerduty.NewClient(pagerduty.Config{
			RoutingKey: cfg.PagerDuty.RoutingKey,
			Source:     cfg.PagerDuty.Source,
			Component:  cfg.PagerDuty.Component,
			Timeout:    cfg.Timeout,
			RetryLimit: cfg.RetryLimit,
		})
		if err != nil {
			baseLogger.Error("failed to initialise pagerduty notifier", "error", err)
		} else {
			sinks = append(sinks, failurenotifier.SinkRegistration{Name: "pagerduty", Sink: client})
		}
	}

	return failurenotifier.NewService(failurenotifier.Options{
		Logger:      baseLogger.With("component", "failure_notifier"),
		Sinks:       sinks,
		IgnoreKinds: cfg.IgnoreKinds,
	})
}

// buildRegistry creates the store registry, adding the Redis tier and invalidation bus
// when a client is available.
func buildRegistry(
	cfg *config.AppConfig,
	redisClient *redis.Client,
	metrics statsd.Sink,
	logger *slog.Logger,
) (*store.Registry, *data.RedisCacheRepo) {
	opts := store.Options{
		Logger:       logger.With("component", "store"),
		CacheTTL:     cfg.Cache.CollectionTTL,
		StaleAfter:   cfg.Cache.StaleAfter,
		Grace:        cfg.Cache.Grace,
		FetchTimeout: cfg.Cache.FetchTimeout,
		Metrics:      metrics,
	}

	var cache *data.RedisCacheRepo
	if redisClient != nil {
		cache = data.NewRedisCacheRepo(redisClient).WithChannel(cfg.Cache.InvalidationChannel)
		opts.Cache = cache
		opts.Bus = cache
	}
	return store.NewRegistry(opts), cache
}

// NewServices wires the resource services over the given repositories.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	observability := buildObservability(logger, deps.Config)
	registry, cache := buildRegistry(deps.Config, deps.RedisClient, observability.metrics(), logger)

	svcs, err := service.New(service.Options{
		Registry: registry,
		Repos:    deps.Repos,
		Sink:     observability.Sink,
		Metrics:  observability.metrics(),
		Logger:   logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build services: %w", err)
	}

	health := make(map[string]httpx.HealthCheck, 2)
	if deps.Repos.Health != nil {
		health["backend"] = deps.Repos.Health
	}
	if cache != nil {
		health["cache"] = cache.Health
	}

	return ServiceContainer{
		Services:      svcs,
		Registry:      registry,
		Health:        health,
		Observability: observability,
	}, nil
}

// ServiceOrchestrationConfig contains dependencies for running the service until shutdown.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts the invalidation listener and HTTP server, then blocks until
// a signal or server error and shuts everything down.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg.Services.Registry.Listen(serviceCtx)

	errCh := make(chan error, 1)
	server := StartHTTPServer(&HTTPServerConfig{
		Config:   cfg.Config,
		Services: cfg.Services,
		Logger:   logger,
		ErrCh:    errCh,
	})

	return waitForShutdown(shutdownConfig{
		ctx:        serviceCtx,
		cancel:     cancel,
		errCh:      errCh,
		httpServer: server,
		timeout:    cfg.Config.HTTP.ShutdownTimeout,
		services:   cfg.Services,
		logger:     logger,
	})
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx        context.Context
	cancel     context.CancelFunc
	errCh      <-chan error
	httpServer *http.Server
	timeout    time.Duration
	services   ServiceContainer
	logger     *slog.Logger
}

// waitForShutdown waits for shutdown signal or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop drains HTTP requests before releasing the store and metrics.
func gracefulStop(cfg shutdownConfig) error {
	timeout := cfg.timeout
	if timeout <= 0 {
		timeout = shutdownWaitTimeout
	}
	// The service context is canceled only after in-flight requests have drained.
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(cfg.ctx), timeout)
	defer cancel()

	var errs []error
	if err := ShutdownHTTPServer(ShutdownConfig{
		Context: shutdownCtx,
		Server:  cfg.httpServer,
		Logger:  cfg.logger,
	}); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}

	cfg.cancel()
	if cfg.services.Registry != nil {
		if err := cfg.services.Registry.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store registry: %w", err))
		}
	}
	if sink := cfg.services.Observability.MetricsSink; sink != nil {
		if err := sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close statsd client: %w", err))
		}
	}
	return errors.Join(errs...)
}
