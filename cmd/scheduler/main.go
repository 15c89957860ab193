package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/footypool/footypool/internal/app"
	"github.com/footypool/footypool/internal/config"
	"github.com/footypool/footypool/internal/interfaces/syncapi"
	"github.com/footypool/footypool/internal/observability"
	"github.com/footypool/footypool/internal/platform/logging"
	"github.com/footypool/footypool/internal/usecase"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
	)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init tracing", "error", err)
		return 1
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler, err := app.NewScheduler(ctx, cfg, logger)
	if err != nil {
		logger.Error("build scheduler", "error", err)
		return 1
	}
	defer func() {
		if err := scheduler.Close(); err != nil {
			logger.Warn("close db pool failed", "error", err)
		}
	}()

	acquired, err := scheduler.Gate.TryAcquire(ctx)
	if err != nil {
		logger.Error("leadership probe failed", "error", err)
		return 1
	}
	if !acquired {
		logger.Info("another instance holds leadership, standing down")
		return 0
	}
	defer func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		scheduler.Gate.Release(releaseCtx)
	}()

	if cfg.HealthEnabled {
		var mounts []func(*http.ServeMux)
		if cfg.InternalJobToken != "" {
			sync := syncapi.NewHandler(scheduler.Correlation, cfg.InternalJobToken, logger)
			mounts = append(mounts, sync.Register)
		}
		health := observability.NewHealthServer(
			cfg.HealthAddr,
			scheduler.Lifecycle,
			scheduler.Gate.Held,
			logger,
			mounts...,
		)
		health.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := health.Shutdown(shutdownCtx); err != nil {
				logger.Warn("health listener shutdown failed", "error", err)
			}
		}()
	}

	if err := scheduler.Lifecycle.Run(ctx); err != nil {
		if errors.Is(err, usecase.ErrStoreUnavailable) {
			logger.Error("store unreachable, exiting for restart", "error", err)
		} else {
			logger.Error("scheduler loop failed", "error", err)
		}
		return 1
	}

	logger.Info("scheduler stopped")
	return 0
}
