package telegram

import (
	"context"
	"log/slog"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	broadcastService "github.com/reshetovitsme/daily-product-bot/internal/modules/broadcast/service"
	"github.com/reshetovitsme/daily-product-bot/internal/shared/config"
	"github.com/samber/oops"
)

// NewSender builds the Bot API client used for broadcasting. getMe is
// skipped so a bad token fails per recipient instead of at startup; if the
// client cannot be built at all every send reports the construction error.
func NewSender(cfg *config.Config) broadcastService.Sender {
	b, err := bot.New(cfg.TelegramBotToken,
		bot.WithServerURL(cfg.TelegramAPIURL),
		bot.WithSkipGetMe(),
	)
	if err != nil {
		err = oops.In("telegram").With("context", "failed to create telegram bot").Wrap(err)
		slog.Warn("Telegram client unavailable", "error", err)
		return unavailableSender{err: err}
	}
	return b
}

type unavailableSender struct {
	err error
}

func (u unavailableSender) SendMessage(context.Context, *bot.SendMessageParams) (*models.Message, error) {
	return nil, u.err
}
