package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/reshetovitsme/daily-product-bot/internal/modules/ranking/domain"
	"github.com/reshetovitsme/daily-product-bot/internal/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoPosts = `{
  "data": {
    "posts": {
      "edges": [
        {"node": {"name": "Meku", "tagline": "AI Web App and Site Builder", "url": "https://ph.example/meku", "votesCount": 120}},
        {"node": {"name": "Open SaaS 2.0", "tagline": "free open-source SaaS starter", "url": "https://ph.example/open-saas", "votesCount": 80}}
      ]
    }
  }
}`

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *bytes.Buffer) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		PHAPIURL:     server.URL,
		PHToken:      "ph-test",
		FetchTimeout: 2 * time.Second,
	}

	var logs bytes.Buffer
	svc := New(cfg, server.Client())
	svc.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))
	return svc, &logs
}

func TestFetchTopSendsAuthenticatedQuery(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer ph-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "order: RANKING")
		assert.Contains(t, req.Query, "votesCount")
		assert.EqualValues(t, 2, req.Variables["perPage"])

		fmt.Fprint(w, twoPosts)
	})

	items := svc.FetchTop(context.Background(), 2)

	require.Len(t, items, 2)
	assert.Equal(t, domain.RankedItem{
		Name:    "Meku",
		Tagline: "AI Web App and Site Builder",
		URL:     "https://ph.example/meku",
		Votes:   120,
	}, items[0])
	assert.Equal(t, "Open SaaS 2.0", items[1].Name)
	assert.Equal(t, 80, items[1].Votes)
}

func TestFetchTopNeverExceedsN(t *testing.T) {
	svc, logs := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, twoPosts)
	})

	items := svc.FetchTop(context.Background(), 1)

	require.Len(t, items, 1)
	assert.Equal(t, "Meku", items[0].Name)
	assert.Contains(t, logs.String(), "more items than requested")
}

func TestFetchTopReturnsEmptyOnFailure(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantLog string
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantLog: "unexpected status code"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"error":"invalid_token"}`, wantLog: "unexpected status code"},
		{name: "invalid json", status: http.StatusOK, body: "{not json", wantLog: "Ranking fetch failed"},
		{name: "missing data", status: http.StatusOK, body: `{}`, wantLog: "malformed response"},
		{name: "graphql errors", status: http.StatusOK, body: `{"errors":[{"message":"rate limited"}]}`, wantLog: "malformed response"},
		{name: "missing name", status: http.StatusOK, body: `{"data":{"posts":{"edges":[{"node":{"tagline":"t","url":"u","votesCount":1}}]}}}`, wantLog: "malformed response"},
		{name: "empty url", status: http.StatusOK, body: `{"data":{"posts":{"edges":[{"node":{"name":"n","tagline":"t","url":"","votesCount":1}}]}}}`, wantLog: "malformed response"},
		{name: "missing votes", status: http.StatusOK, body: `{"data":{"posts":{"edges":[{"node":{"name":"n","tagline":"t","url":"u"}}]}}}`, wantLog: "malformed response"},
		{name: "negative votes", status: http.StatusOK, body: `{"data":{"posts":{"edges":[{"node":{"name":"n","tagline":"t","url":"u","votesCount":-3}}]}}}`, wantLog: "malformed response"},
		{name: "null node", status: http.StatusOK, body: `{"data":{"posts":{"edges":[{"node":null}]}}}`, wantLog: "malformed response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, logs := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})

			items := svc.FetchTop(context.Background(), 10)

			assert.NotNil(t, items)
			assert.Empty(t, items)
			assert.Contains(t, logs.String(), tt.wantLog)
		})
	}
}

func TestFetchTopRejectsWholeResponseOnOneBadEdge(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"posts":{"edges":[
			{"node":{"name":"ok","tagline":"fine","url":"https://ph.example/ok","votesCount":5}},
			{"node":{"name":"bad","tagline":"fine","url":"https://ph.example/bad"}}
		]}}}`)
	})

	assert.Empty(t, svc.FetchTop(context.Background(), 10))
}

func TestFetchTopEmptyRanking(t *testing.T) {
	svc, logs := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"posts":{"edges":[]}}}`)
	})

	items := svc.FetchTop(context.Background(), 10)

	assert.Empty(t, items)
	assert.NotContains(t, logs.String(), "Ranking fetch failed")
}

func TestFetchTopNonPositiveN(t *testing.T) {
	called := false
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	assert.Empty(t, svc.FetchTop(context.Background(), 0))
	assert.False(t, called)
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestFetchTopTransportError(t *testing.T) {
	cfg := &config.Config{PHAPIURL: "http://ranking.invalid", FetchTimeout: time.Second}
	var logs bytes.Buffer
	svc := New(cfg, failingDoer{})
	svc.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	assert.Empty(t, svc.FetchTop(context.Background(), 10))
	assert.Contains(t, logs.String(), "connection refused")
}

func TestFetchTopTimeout(t *testing.T) {
	release := make(chan struct{})
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)
	svc.timeout = 50 * time.Millisecond

	start := time.Now()
	items := svc.FetchTop(context.Background(), 10)

	assert.Empty(t, items)
	assert.Less(t, time.Since(start), 2*time.Second)
}
