package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/shopdesk/internal/app"
	jobmetrics "github.com/odyssey-erp/shopdesk/internal/jobs"
	"github.com/odyssey-erp/shopdesk/internal/lookup"
	"github.com/odyssey-erp/shopdesk/internal/platform/cache"
	"github.com/odyssey-erp/shopdesk/internal/remote"
	"github.com/odyssey-erp/shopdesk/jobs"
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
	if !cfg.RedisEnabled() {
		logger.Error("worker requires REDIS_ADDR")
		os.Exit(1)
	}

	redisClient, err := cache.New(ctx, cfg.Redis())
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	client, err := remote.NewClient(cfg.APIBaseURL,
		remote.WithTimeout(cfg.APITimeout),
		remote.WithLogger(logger),
	)
	if err != nil {
		logger.Error("init api client", slog.Any("error", err))
		os.Exit(1)
	}

	lookups := app.NewLookups(client, lookup.NewRedisStore(redisClient, cfg.LookupTTL), logger)
	refreshJob := jobs.NewLookupRefreshJob(lookups.Registry, logger, jobmetrics.NewMetrics(nil))

	refreshTask, err := jobs.NewLookupRefreshTask(jobs.LookupRefreshPayload{})
	if err != nil {
		logger.Error("build lookup refresh task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: cfg.Redis().Asynq(),
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLookupRefresh, Handler: refreshJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.LookupRefreshCron, Task: refreshTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
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
