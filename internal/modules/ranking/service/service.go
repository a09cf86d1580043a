package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/reshetovitsme/daily-product-bot/internal/modules/ranking/domain"
	"github.com/reshetovitsme/daily-product-bot/internal/shared/config"
	"github.com/reshetovitsme/daily-product-bot/internal/shared/errors"
	"github.com/samber/oops"
)

// Doer is the part of *http.Client the fetcher needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Service fetches the current ranking from the GraphQL API
type Service struct {
	endpoint string
	token    string
	timeout  time.Duration
	client   Doer
	logger   *slog.Logger
}

// New creates a new ranking service
func New(cfg *config.Config, client Doer) *Service {
	return &Service{
		endpoint: cfg.PHAPIURL,
		token:    cfg.PHToken,
		timeout:  cfg.FetchTimeout,
		client:   client,
		logger:   slog.Default(),
	}
}

// SetLogger sets the logger
func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// FetchTop returns at most n ranked items. Any failure is logged and
// yields an empty list; callers never see an error.
func (s *Service) FetchTop(ctx context.Context, n int) domain.ItemList {
	if n <= 0 {
		s.logger.Warn("Ranking fetch skipped", "per_page", n)
		return domain.ItemList{}
	}

	s.logger.Info("Fetching ranking", "endpoint", s.endpoint, "per_page", n)

	items, err := s.fetch(ctx, n)
	if err != nil {
		s.logger.Error("Ranking fetch failed", "error", err)
		return domain.ItemList{}
	}

	if len(items) > n {
		s.logger.Warn("Ranking returned more items than requested", "requested", n, "received", len(items))
		items = items[:n]
	}

	s.logger.Info("Ranking fetched", "count", len(items))
	return items
}

func (s *Service) fetch(ctx context.Context, n int) (domain.ItemList, error) {
	errb := oops.In("ranking").With("endpoint", s.endpoint)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	body, err := json.Marshal(graphQLRequest{
		Query:     rankingQuery,
		Variables: map[string]any{"perPage": n},
	})
	if err != nil {
		return nil, errb.Wrap(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, errb.Wrap(err)
	}
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errb.With("context", "sending request").Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errb.
			With("status", resp.StatusCode, "body", strings.TrimSpace(string(snippet))).
			Wrap(errors.ErrUnexpectedStatus)
	}

	var payload postsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errb.With("context", "decoding response").Wrap(err)
	}

	return parseEdges(payload)
}

// parseEdges converts the response envelope. One invalid edge rejects the
// whole response, so a partial ranking is never reported as complete.
func parseEdges(payload postsResponse) (domain.ItemList, error) {
	errb := oops.In("ranking")

	if len(payload.Errors) > 0 {
		return nil, errb.With("graphql_error", payload.Errors[0].Message).Wrap(errors.ErrMalformedResponse)
	}
	if payload.Data == nil || payload.Data.Posts == nil {
		return nil, errb.With("context", "missing data.posts").Wrap(errors.ErrMalformedResponse)
	}

	edges := payload.Data.Posts.Edges
	items := make(domain.ItemList, 0, len(edges))
	for i, edge := range edges {
		node := edge.Node
		switch {
		case node == nil:
			return nil, errb.With("edge", i, "context", "missing node").Wrap(errors.ErrMalformedResponse)
		case blank(node.Name), blank(node.Tagline), blank(node.URL):
			return nil, errb.With("edge", i, "context", "missing name, tagline or url").Wrap(errors.ErrMalformedResponse)
		case node.VotesCount == nil || *node.VotesCount < 0:
			return nil, errb.With("edge", i, "context", "missing or negative votesCount").Wrap(errors.ErrMalformedResponse)
		}

		items = append(items, domain.RankedItem{
			Name:    *node.Name,
			Tagline: *node.Tagline,
			URL:     *node.URL,
			Votes:   *node.VotesCount,
		})
	}

	return items, nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
