package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/jana-studio/taller/internal/app"
	"github.com/jana-studio/taller/internal/budgets"
	jobmetrics "github.com/jana-studio/taller/internal/jobs"
	"github.com/jana-studio/taller/internal/ledger"
	"github.com/jana-studio/taller/internal/platform/cache"
	"github.com/jana-studio/taller/internal/platform/db"
	"github.com/jana-studio/taller/internal/rowstore"
	"github.com/jana-studio/taller/internal/settings"
	"github.com/jana-studio/taller/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	var store rowstore.Store = rowstore.NewUnconfigured()
	if cfg.PGDSN != "" {
		pool, err := db.New(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		store = rowstore.NewPostgres(pool)
	} else {
		logger.Warn("PG_DSN not set, scans will fail until configured")
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := jobmetrics.NewMetrics(nil)
	scanner := jobs.NewIntegrityScanner(budgets.NewRepository(store), ledger.NewRepository(store), logger, metrics)
	warmup := jobs.NewSettingsWarmup(settings.NewService(store, redisClient, logger), logger, metrics)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLedgerIntegrity, Handler: scanner.HandleTask},
			{Type: jobs.TaskSettingsWarmup, Handler: warmup.HandleTask},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "0 3 * * *", Task: jobs.NewLedgerIntegrityTask(), Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "*/30 * * * *", Task: jobs.NewSettingsWarmupTask(), Options: []asynq.Option{asynq.MaxRetry(1)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
