package service

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/reshetovitsme/daily-product-bot/internal/modules/broadcast/domain"
	"github.com/samber/oops"
)

// Sender is satisfied by *bot.Bot.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Service delivers one message to many chats
type Service struct {
	sender Sender
	logger *slog.Logger
}

// New creates a new broadcast service
func New(sender Sender) *Service {
	return &Service{
		sender: sender,
		logger: slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Broadcast sends message to each recipient in order, once, with link
// previews disabled. A failed recipient does not stop the ones after it.
func (s *Service) Broadcast(ctx context.Context, message string, recipients domain.RecipientSet) domain.Tally {
	var tally domain.Tally

	if len(recipients) == 0 {
		s.logger.Warn("No recipients configured, nothing sent")
		return tally
	}

	s.logger.Info("Broadcasting message", "recipients", len(recipients), "chars", len([]rune(message)))

	for _, recipient := range recipients {
		outcome := s.deliver(ctx, message, recipient)
		if outcome.Success {
			s.logger.Info("Delivered", "chat_id", recipient)
		} else {
			s.logger.Error("Delivery failed", "chat_id", recipient, "error", outcome.Err)
		}
		tally.Record(outcome)
	}

	s.logger.Info("Broadcast finished", "success", tally.Success, "failure", tally.Failure)
	return tally
}

func (s *Service) deliver(ctx context.Context, message, recipient string) domain.DeliveryOutcome {
	_, err := s.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: recipient,
		Text:   message,
		LinkPreviewOptions: &models.LinkPreviewOptions{
			IsDisabled: bot.True(),
		},
	})
	if err != nil {
		return domain.DeliveryOutcome{
			Recipient: recipient,
			Err:       oops.In("broadcast").With("chat_id", recipient).Wrap(err),
		}
	}
	return domain.DeliveryOutcome{Recipient: recipient, Success: true}
}
