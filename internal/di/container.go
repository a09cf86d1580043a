package di

import (
	"context"
	"log/slog"
	"net/http"

	broadcastService "github.com/reshetovitsme/daily-product-bot/internal/modules/broadcast/service"
	digestService "github.com/reshetovitsme/daily-product-bot/internal/modules/digest/service"
	feedService "github.com/reshetovitsme/daily-product-bot/internal/modules/feed/service"
	pipelineService "github.com/reshetovitsme/daily-product-bot/internal/modules/pipeline/service"
	rankingService "github.com/reshetovitsme/daily-product-bot/internal/modules/ranking/service"
	"github.com/reshetovitsme/daily-product-bot/internal/shared/config"
	httpServer "github.com/reshetovitsme/daily-product-bot/internal/transport/http"
	"github.com/reshetovitsme/daily-product-bot/internal/transport/schedule"
	"github.com/reshetovitsme/daily-product-bot/internal/transport/telegram"
	"github.com/samber/do/v2"
	"github.com/samber/oops"
	"github.com/sashabaranov/go-openai"
)

// Setup initializes the dependency injection container
func Setup() (do.Injector, error) {
	return SetupWith(config.Load)
}

// SetupWith is Setup with a custom config loader.
func SetupWith(load func() (*config.Config, error)) (do.Injector, error) {
	injector := do.New()

	// Register Config
	do.Provide(injector, func(i do.Injector) (*config.Config, error) {
		cfg, err := load()
		if err != nil {
			return nil, oops.With("context", "failed to load config").Wrap(err)
		}
		return cfg, nil
	})

	// Register HTTP client for the ranking API
	do.Provide(injector, func(i do.Injector) (rankingService.Doer, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return &http.Client{Timeout: cfg.FetchTimeout}, nil
	})

	// Register OpenAI client
	do.Provide(injector, func(i do.Injector) (digestService.ChatCompleter, error) {
		cfg := do.MustInvoke[*config.Config](i)
		clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
		if cfg.OpenAIBaseURL != "" {
			clientCfg.BaseURL = cfg.OpenAIBaseURL
		}
		return openai.NewClientWithConfig(clientCfg), nil
	})

	// Register Telegram sender
	do.Provide(injector, func(i do.Injector) (broadcastService.Sender, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return telegram.NewSender(cfg), nil
	})

	// Register Ranking Service
	do.Provide(injector, func(i do.Injector) (*rankingService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		client := do.MustInvoke[rankingService.Doer](i)
		return rankingService.New(cfg, client), nil
	})

	// Register Digest Service
	do.Provide(injector, func(i do.Injector) (*digestService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		client := do.MustInvoke[digestService.ChatCompleter](i)
		return digestService.New(cfg, client), nil
	})

	// Register Broadcast Service
	do.Provide(injector, func(i do.Injector) (*broadcastService.Service, error) {
		sender := do.MustInvoke[broadcastService.Sender](i)
		return broadcastService.New(sender), nil
	})

	// Register Pipeline Service
	do.Provide(injector, func(i do.Injector) (*pipelineService.Service, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return pipelineService.New(cfg,
			do.MustInvoke[*rankingService.Service](i),
			do.MustInvoke[*digestService.Service](i),
			do.MustInvoke[*broadcastService.Service](i),
		), nil
	})

	// Register Feed Service
	do.Provide(injector, func(i do.Injector) (*feedService.Service, error) {
		return feedService.New(), nil
	})

	// Register HTTP Server
	do.Provide(injector, func(i do.Injector) (*httpServer.Server, error) {
		cfg := do.MustInvoke[*config.Config](i)
		pipeline := do.MustInvoke[*pipelineService.Service](i)
		feeds := do.MustInvoke[*feedService.Service](i)
		server := httpServer.New(cfg, pipeline, feeds)
		server.SetLogger(slog.Default())
		return server, nil
	})

	// Register Scheduler (only resolved in scheduled mode)
	do.Provide(injector, func(i do.Injector) (*schedule.Scheduler, error) {
		cfg := do.MustInvoke[*config.Config](i)
		scheduler, err := schedule.New(cfg.Schedule)
		if err != nil {
			return nil, oops.With("context", "invalid schedule").Wrap(err)
		}
		return scheduler, nil
	})

	return injector, nil
}

// Shutdown gracefully shuts down all services
func Shutdown(ctx context.Context, injector do.Injector) error {
	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil || !cfg.Scheduled() {
		return nil
	}

	if scheduler, err := do.Invoke[*schedule.Scheduler](injector); err == nil && scheduler != nil {
		scheduler.Stop()
	}

	if cfg.HTTPPort == "" {
		return nil
	}

	if server, err := do.Invoke[*httpServer.Server](injector); err == nil && server != nil {
		if err := server.Shutdown(ctx); err != nil {
			return oops.With("context", "failed to stop status server").Wrap(err)
		}
	}

	return nil
}
