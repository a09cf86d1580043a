package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reshetovitsme/daily-product-bot/internal/di"
	broadcastDomain "github.com/reshetovitsme/daily-product-bot/internal/modules/broadcast/domain"
	pipelineService "github.com/reshetovitsme/daily-product-bot/internal/modules/pipeline/service"
	"github.com/reshetovitsme/daily-product-bot/internal/shared/config"
	httpServer "github.com/reshetovitsme/daily-product-bot/internal/transport/http"
	"github.com/reshetovitsme/daily-product-bot/internal/transport/schedule"
	"github.com/samber/do/v2"
	slogmulti "github.com/samber/slog-multi"
)

func main() {
	// Setup structured logging with multiple handlers using slog-multi
	level := new(slog.LevelVar)
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	// Use Fanout to send logs to both handlers
	multiHandler := slogmulti.Fanout(textHandler, jsonHandler)
	logger := slog.New(multiHandler)
	slog.SetDefault(logger)

	// Setup dependency injection
	injector, err := di.Setup()
	if err != nil {
		slog.Error("Failed to setup dependency injection", "error", err)
		os.Exit(1)
	}

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if lvl, err := cfg.SlogLevel(); err == nil {
		level.Set(lvl)
	}

	recipients := broadcastDomain.ParseRecipients(cfg.TelegramChatID)
	slog.Info("Configuration loaded",
		"app_env", cfg.AppEnv,
		"credentials", cfg.CredentialStatus(),
		"recipients", len(recipients),
		"model", cfg.OpenAIModel,
		"page_size", cfg.PageSize,
	)

	pipeline := do.MustInvoke[*pipelineService.Service](injector)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if !cfg.Scheduled() {
		report := pipeline.Run(ctx)
		slog.Info("Run complete",
			"items", len(report.Items),
			"digest_source", report.Digest.Source,
			"success", report.Tally.Success,
			"failure", report.Tally.Failure,
		)
		return
	}

	scheduler, err := do.Invoke[*schedule.Scheduler](injector)
	if err != nil {
		slog.Error("Failed to create scheduler", "error", err)
		os.Exit(1)
	}
	if err := scheduler.Start(func(ctx context.Context) {
		pipeline.Run(ctx)
	}); err != nil {
		slog.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// Start HTTP server
	if cfg.HTTPPort != "" {
		server := do.MustInvoke[*httpServer.Server](injector)
		go func() {
			if err := server.Start(); err != nil {
				slog.Error("Failed to start HTTP server", "error", err)
				cancel()
			}
		}()
		slog.Info("Status server started", "port", cfg.HTTPPort)
	}

	slog.Info("Application started", "schedule", cfg.Schedule, "next_run", scheduler.Next())
	slog.Info("Press Ctrl+C to stop")

	<-ctx.Done()
	slog.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := di.Shutdown(shutdownCtx, injector); err != nil {
		slog.Error("Error during shutdown", "error", err)
	}
}
