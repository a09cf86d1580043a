package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	feedService "github.com/reshetovitsme/daily-product-bot/internal/modules/feed/service"
	pipelineDomain "github.com/reshetovitsme/daily-product-bot/internal/modules/pipeline/domain"
	rankingDomain "github.com/reshetovitsme/daily-product-bot/internal/modules/ranking/domain"
	"github.com/reshetovitsme/daily-product-bot/internal/shared/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticReports struct {
	report *pipelineDomain.Report
}

func (s staticReports) Latest() (pipelineDomain.Report, bool) {
	if s.report == nil {
		return pipelineDomain.Report{}, false
	}
	return *s.report, true
}

func newTestServer(t *testing.T, reports ReportSource) *httptest.Server {
	t.Helper()

	srv := New(&config.Config{HTTPPort: "0"}, reports, feedService.New())
	srv.SetLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, staticReports{})

	resp, body := get(t, ts.URL+"/health")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestDigestBeforeFirstRun(t *testing.T) {
	ts := newTestServer(t, staticReports{})

	resp, _ := get(t, ts.URL+"/digest")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/rss")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDigestAndRSS(t *testing.T) {
	started := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)
	report := &pipelineDomain.Report{
		StartedAt:  started,
		FinishedAt: started,
		Items:      rankingDomain.ItemList{{Name: "Meku", Tagline: "AI Web App and Site Builder", URL: "https://ph.example/meku", Votes: 120}},
		Message:    pipelineDomain.Compose(started, "1. Meku — AI Web App and Site Builder (120 votes)"),
	}
	ts := newTestServer(t, staticReports{report: report})

	resp, body := get(t, ts.URL+"/digest")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, report.Message, body)

	resp, body = get(t, ts.URL+"/rss")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/rss+xml; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "<title>#1 Meku</title>")
}

func TestStartReturnsAfterShutdown(t *testing.T) {
	srv := New(&config.Config{HTTPPort: "0"}, staticReports{}, feedService.New())
	srv.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	require.NoError(t, srv.Shutdown(context.Background()))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Start did not return after Shutdown")
	}
}

func TestShutdownBeforeStart(t *testing.T) {
	srv := New(&config.Config{HTTPPort: "0"}, staticReports{}, feedService.New())

	require.NoError(t, srv.Shutdown(context.Background()))
	assert.NoError(t, srv.Start())
}
