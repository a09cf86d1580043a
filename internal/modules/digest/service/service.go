package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/reshetovitsme/daily-product-bot/internal/modules/digest/domain"
	rankingDomain "github.com/reshetovitsme/daily-product-bot/internal/modules/ranking/domain"
	"github.com/reshetovitsme/daily-product-bot/internal/shared/config"
	"github.com/reshetovitsme/daily-product-bot/internal/shared/errors"
	"github.com/samber/oops"
	"github.com/sashabaranov/go-openai"
)

// ChatCompleter is satisfied by *openai.Client.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Service turns a ranking into a readable digest
type Service struct {
	client      ChatCompleter
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
	strict      bool
	logger      *slog.Logger
}

// New creates a new digest service
func New(cfg *config.Config, client ChatCompleter) *Service {
	return &Service{
		client:      client,
		model:       cfg.OpenAIModel,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		timeout:     cfg.GenerationTimeout,
		strict:      cfg.DigestStrict,
		logger:      slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Summarize never fails: an empty ranking gets NoDataText and any model
// error gets the deterministic listing from Fallback.
func (s *Service) Summarize(ctx context.Context, items rankingDomain.ItemList) domain.Digest {
	if len(items) == 0 {
		return domain.Digest{Text: NoDataText, Source: domain.DigestSourceEmpty}
	}

	s.logger.Info("Generating digest", "model", s.model, "items", len(items))

	text, err := s.generate(ctx, items)
	if err != nil {
		s.logger.Error("Digest generation failed, using plain listing", "error", err)
		return domain.Digest{Text: Fallback(items), Source: domain.DigestSourceFallback}
	}

	return domain.Digest{Text: text, Source: domain.DigestSourceGenerated}
}

func (s *Service) generate(ctx context.Context, items rankingDomain.ItemList) (string, error) {
	errb := oops.In("digest").With("model", s.model)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPersona},
			{Role: openai.ChatMessageRoleUser, Content: BuildPrompt(items)},
		},
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return "", errb.Wrap(err)
	}

	if len(resp.Choices) == 0 {
		return "", errb.With("context", "no choices").Wrap(errors.ErrEmptyCompletion)
	}

	choice := resp.Choices[0]
	text := choice.Message.Content
	if strings.TrimSpace(text) == "" {
		return "", errb.With("finish_reason", choice.FinishReason).Wrap(errors.ErrEmptyCompletion)
	}

	s.logger.Info("Digest generated",
		"chars", len([]rune(text)),
		"total_tokens", resp.Usage.TotalTokens,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"finish_reason", choice.FinishReason,
	)
	s.logger.Debug("Digest content", "text", text)

	if choice.FinishReason == openai.FinishReasonLength {
		s.logger.Warn("Digest truncated by max_tokens, sending it as is", "max_tokens", s.maxTokens)
	}

	if s.strict {
		if err := validateTemplate(text, len(items)); err != nil {
			return "", err
		}
	}

	return text, nil
}
