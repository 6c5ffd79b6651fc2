// Package main is the entry point for the AppSchmiede builder server.
// It wires all dependencies together and starts the HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Ramon1710/appschmiede-v2-sub000/internal/billing"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/config"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/llm"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/observability"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/render"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/store"
	"github.com/Ramon1710/appschmiede-v2-sub000/internal/transport"
)

// Build-time variables set via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=abc1234"
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	observability.Version = version
	observability.Commit = commit

	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	tracingShutdown, err := observability.InitTracing(ctx, cfg.Observability.Tracing, "appschmiede", version)
	if err != nil {
		logger.Error("tracing initialization failed", zap.Error(err))
		return 1
	}

	metrics := observability.InitMetrics(prometheus.DefaultRegisterer)

	// Page store and ledger share the Postgres pool when configured.
	pageStore, pool, err := buildPageStore(ctx, cfg.Store, logger)
	if err != nil {
		logger.Error("page store initialization failed", zap.Error(err))
		return 1
	}
	if pool != nil {
		defer pool.Close()
	}

	var ledger billing.Ledger
	if pool != nil {
		ledger = billing.NewPgLedger(pool)
	} else {
		ledger = billing.NewMemoryLedger()
	}

	eventStore, redisClose, err := buildEventStore(cfg.Billing.Events, logger)
	if err != nil {
		logger.Error("event store initialization failed", zap.Error(err))
		return 1
	}
	if redisClose != nil {
		defer redisClose()
	}

	processor := billing.NewProcessor(cfg.Billing.WebhookSecret(), eventStore, ledger, logger)

	llmClient := llm.NewClient(llm.Config{
		APIKey:  cfg.LLM.APIKey(),
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
	}, logger)

	readiness := observability.ReadinessChecks{}
	if hc, ok := pageStore.(observability.HealthChecker); ok {
		readiness.PageStore = hc
	}
	if hc, ok := eventStore.(observability.HealthChecker); ok {
		readiness.EventStore = hc
	}

	router := transport.NewRouter(transport.Dependencies{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics,
		LLM:       llmClient,
		Store:     pageStore,
		Renderer:  render.NewRenderer(logger),
		Webhook:   processor,
		Readiness: readiness,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info("server started",
		zap.Int("port", cfg.Server.Port),
		zap.String("version", version),
		zap.String("commit", commit),
		zap.String("store_driver", cfg.Store.Driver),
		zap.String("events_driver", cfg.Billing.Events.Driver),
		zap.Bool("auth_enabled", cfg.Auth.Enabled),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown initiated")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		return 1
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := tracingShutdown(shutdownCtx); err != nil {
		logger.Error("tracing shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
	return 0
}

// buildPageStore creates the page store based on config. The returned pool
// is non-nil only for the Postgres driver so the caller can share it.
func buildPageStore(ctx context.Context, cfg config.StoreConfig, logger *zap.Logger) (store.PageStore, *pgxpool.Pool, error) {
	switch cfg.Driver {
	case "memory", "":
		logger.Info("using in-memory page store")
		return store.NewMemoryPageStore(), nil, nil
	case "postgres":
		dsn := cfg.DSN()
		if dsn == "" {
			return nil, nil, fmt.Errorf("page store: %s environment variable not set", cfg.DSNEnv)
		}

		poolCfg, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("page store: parse DSN: %w", err)
		}
		poolCfg.MaxConns = int32(cfg.MaxOpenConns)
		poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

		pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return nil, nil, fmt.Errorf("page store: connect: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("page store: ping: %w", err)
		}
		return store.NewPgPageStore(pool), pool, nil
	default:
		return nil, nil, fmt.Errorf("unsupported page store driver: %q", cfg.Driver)
	}
}

// buildEventStore creates the webhook event claim store based on config.
func buildEventStore(cfg config.EventStoreConfig, logger *zap.Logger) (billing.EventStore, func(), error) {
	switch cfg.Driver {
	case "memory", "":
		logger.Info("using in-memory event store")
		return billing.NewMemoryEventStore(cfg.ClaimTTL), nil, nil
	case "redis":
		addr := cfg.Addr()
		if addr == "" {
			return nil, nil, fmt.Errorf("event store: %s environment variable not set", cfg.AddrEnv)
		}
		client := redis.NewClient(&redis.Options{Addr: addr, DB: cfg.DB})
		return billing.NewRedisEventStore(client, cfg.ClaimTTL), func() { client.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported event store driver: %q", cfg.Driver)
	}
}
