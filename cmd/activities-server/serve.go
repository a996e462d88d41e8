// cmd/activities-server/serve.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"mergington-activities/internal/common/config"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/common/observability"
	"mergington-activities/internal/directory"
	"mergington-activities/internal/server"
	"mergington-activities/pkg/registry"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("config load failed: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting activities server",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	seed, err := registry.LoadOrDefault(cfg.Directory.SeedPath)
	if err != nil {
		return fmt.Errorf("seed load failed: %w", err)
	}
	zapLog.Info("directory seeded",
		zap.Int("activities", len(seed.Activities)),
		zap.String("seedPath", cfg.Directory.SeedPath),
	)

	wired, err := connectSinks(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer wired.Close()

	svc := directory.NewService(
		&directory.Config{EnforceCapacity: cfg.Directory.EnforceCapacity},
		directory.New(seed.Directory()),
		wired.Publisher(),
		log,
	)

	obs, err := observability.New(cfg.App.Name, prometheus.DefaultRegisterer)
	if err != nil {
		zapLog.Warn("otel metrics disabled", zap.Error(err))
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(server.Options{
		StaticDir: cfg.Server.StaticDir,
		Ready:     wired.Ready,
	}, svc, obs, log)

	srv := server.New(
		cfg.Server.Address,
		router,
		config.GetDuration(cfg.Server.ReadTimeout),
		config.GetDuration(cfg.Server.WriteTimeout),
		log,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		zapLog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	var shutdownErr error
	if err := srv.Shutdown(shutdownCtx); err != nil {
		shutdownErr = errors.Join(shutdownErr, fmt.Errorf("http shutdown: %w", err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		shutdownErr = errors.Join(shutdownErr, fmt.Errorf("otel shutdown: %w", err))
	}
	zapLog.Info("activities server stopped")
	return shutdownErr
}

// retryWithBackoff attempts to execute a function with exponential backoff.
// It stops early when ctx is done.
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("%s aborted after %d attempts: %w", operationName, i+1, errors.Join(ctx.Err(), err))
			case <-timer.C:
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}
