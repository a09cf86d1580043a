package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	broadcastDomain "github.com/reshetovitsme/daily-product-bot/internal/modules/broadcast/domain"
	digestDomain "github.com/reshetovitsme/daily-product-bot/internal/modules/digest/domain"
	"github.com/reshetovitsme/daily-product-bot/internal/modules/pipeline/domain"
	rankingDomain "github.com/reshetovitsme/daily-product-bot/internal/modules/ranking/domain"
	"github.com/reshetovitsme/daily-product-bot/internal/shared/config"
)

type Fetcher interface {
	FetchTop(ctx context.Context, n int) rankingDomain.ItemList
}

type Summarizer interface {
	Summarize(ctx context.Context, items rankingDomain.ItemList) digestDomain.Digest
}

type Broadcaster interface {
	Broadcast(ctx context.Context, message string, recipients broadcastDomain.RecipientSet) broadcastDomain.Tally
}

// Service runs fetch, summarize and broadcast in sequence
type Service struct {
	cfg         *config.Config
	fetcher     Fetcher
	summarizer  Summarizer
	broadcaster Broadcaster
	now         func() time.Time
	logger      *slog.Logger

	mu     sync.RWMutex
	latest *domain.Report
}

// New creates a new pipeline service
func New(cfg *config.Config, fetcher Fetcher, summarizer Summarizer, broadcaster Broadcaster) *Service {
	return &Service{
		cfg:         cfg,
		fetcher:     fetcher,
		summarizer:  summarizer,
		broadcaster: broadcaster,
		now:         time.Now,
		logger:      slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// SetClock replaces the time source used for the message header.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Run performs one full pipeline pass. Every stage absorbs its own
// failures, so the only branch here is the empty ranking.
func (s *Service) Run(ctx context.Context) domain.Report {
	report := domain.Report{StartedAt: s.now()}
	recipients := broadcastDomain.ParseRecipients(s.cfg.TelegramChatID)

	s.logger.Info("Pipeline run started", "page_size", s.cfg.PageSize, "recipients", len(recipients))

	report.Items = s.fetcher.FetchTop(ctx, s.cfg.PageSize)

	if report.NoData() {
		s.logger.Warn("No ranking data, sending notice instead of a digest")
		report.Message = domain.NoDataMessage
		report.Tally = s.broadcaster.Broadcast(ctx, report.Message, recipients)
		return s.finish(report)
	}

	report.Digest = s.summarizer.Summarize(ctx, report.Items)
	report.Message = domain.Compose(s.now(), report.Digest.Text)
	report.Tally = s.broadcaster.Broadcast(ctx, report.Message, recipients)

	return s.finish(report)
}

func (s *Service) finish(report domain.Report) domain.Report {
	report.FinishedAt = s.now()

	s.mu.Lock()
	s.latest = &report
	s.mu.Unlock()

	s.logger.Info("Pipeline run finished",
		"items", len(report.Items),
		"digest_source", report.Digest.Source,
		"delivered", report.Tally.Success,
		"failed", report.Tally.Failure,
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)
	return report
}

// Latest returns the report of the most recent run, if any.
func (s *Service) Latest() (domain.Report, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.latest == nil {
		return domain.Report{}, false
	}
	return *s.latest, true
}
