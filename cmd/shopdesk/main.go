package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/odyssey-erp/shopdesk/internal/app"
	"github.com/odyssey-erp/shopdesk/internal/form"
	"github.com/odyssey-erp/shopdesk/internal/lookup"
	"github.com/odyssey-erp/shopdesk/internal/notify"
	"github.com/odyssey-erp/shopdesk/internal/observability"
	"github.com/odyssey-erp/shopdesk/internal/platform/cache"
	"github.com/odyssey-erp/shopdesk/internal/remote"
	"github.com/odyssey-erp/shopdesk/internal/screen"
	"github.com/odyssey-erp/shopdesk/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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
	metrics := observability.NewMetrics()

	client, err := remote.NewClient(cfg.APIBaseURL,
		remote.WithTimeout(cfg.APITimeout),
		remote.WithLogger(logger),
		remote.WithNotifier(notify.Log(logger)),
		remote.WithMetrics(remote.NewMetrics(metrics.Registerer())),
	)
	if err != nil {
		logger.Error("init api client", slog.Any("error", err))
		os.Exit(1)
	}

	var (
		store      lookup.Store
		enqueuer   lookup.Enqueuer
		jobHandler *jobs.Handler
	)
	if cfg.RedisEnabled() {
		redisClient, err := cache.New(ctx, cfg.Redis())
		if err != nil {
			logger.Warn("redis unavailable, lookups stay process-local", slog.Any("error", err))
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					logger.Warn("redis close", slog.Any("error", err))
				}
			}()
			store = lookup.NewRedisStore(redisClient, cfg.LookupTTL)

			redisOpts := cfg.Redis().Asynq()
			jobClient, err := jobs.NewClient(redisOpts)
			if err != nil {
				logger.Error("init job client", slog.Any("error", err))
				os.Exit(1)
			}
			defer func() {
				if err := jobClient.Close(); err != nil {
					logger.Warn("job client close", slog.Any("error", err))
				}
			}()
			enqueuer = jobClient

			inspector := asynq.NewInspector(redisOpts)
			defer func() {
				if err := inspector.Close(); err != nil {
					logger.Warn("inspector close", slog.Any("error", err))
				}
			}()
			jobHandler = jobs.NewHandler(inspector, logger)
		}
	}

	lookups := app.NewLookups(client, store, logger)
	screens := screen.NewRegistry(screen.Deps{
		Client:      client,
		Logger:      logger,
		Validator:   form.NewValidator(),
		PageSize:    cfg.PageSize,
		SearchDelay: cfg.SearchDebounce,
	}, app.Screens(lookups, logger)...)

	screenHandler := screen.NewHandler(logger, screens, cfg.LiveOrigins,
		screen.WithWriteTimeout(cfg.AppWriteTimeout),
		screen.WithSessionTracker(metrics),
	)

	router := app.NewRouter(app.RouterParams{
		Logger:        logger,
		Config:        cfg,
		ScreenHandler: screenHandler,
		LookupHandler: lookup.NewHandler(logger, lookups.Registry, enqueuer),
		JobHandler:    jobHandler,
		Metrics:       metrics,
	})

	server := &http.Server{
		Addr:        cfg.AppAddr,
		Handler:     router,
		ReadTimeout: cfg.AppReadTimeout,
		// No server WriteTimeout: it would cut live sessions. Live pushes are
		// bounded per frame instead.
		ReadHeaderTimeout: cfg.AppReadTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr), slog.String("api", client.BaseURL()))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
