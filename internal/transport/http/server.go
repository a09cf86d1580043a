package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	feedService "github.com/reshetovitsme/daily-product-bot/internal/modules/feed/service"
	pipelineDomain "github.com/reshetovitsme/daily-product-bot/internal/modules/pipeline/domain"
	"github.com/reshetovitsme/daily-product-bot/internal/shared/config"
	appErrors "github.com/reshetovitsme/daily-product-bot/internal/shared/errors"
	sloghttp "github.com/samber/slog-http"
)

// ReportSource exposes the most recent pipeline run.
type ReportSource interface {
	Latest() (pipelineDomain.Report, bool)
}

// Server exposes health and the last digest over HTTP
type Server struct {
	cfg         *config.Config
	reports     ReportSource
	feedService *feedService.Service
	logger      *slog.Logger
	server      *http.Server
}

// New creates a new HTTP server
func New(cfg *config.Config, reports ReportSource, feedService *feedService.Service) *Server {
	s := &Server{
		cfg:         cfg,
		reports:     reports,
		feedService: feedService,
		logger:      slog.Default(),
	}
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// SetLogger sets the logger. Call it before Start.
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
	s.server.Handler = s.Handler()
}

// Handler returns the routed handler wrapped in logging and recovery middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /digest", s.handleDigest)
	mux.HandleFunc("GET /rss", s.handleRSS)

	handler := sloghttp.Recovery(mux)
	return sloghttp.New(s.logger)(handler)
}

// Start blocks serving HTTP until Shutdown is called. After Shutdown it
// returns nil immediately.
func (s *Server) Start() error {
	s.logger.Info("Status server starting", "addr", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown closes the listener, whether or not Start has run yet.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}


func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reports.Latest()
	if !ok {
		http.Error(w, appErrors.ErrNoDigest.Error(), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report.Message))
}

func (s *Server) handleRSS(w http.ResponseWriter, r *http.Request) {
	report, ok := s.reports.Latest()
	if !ok {
		http.Error(w, appErrors.ErrNoDigest.Error(), http.StatusNotFound)
		return
	}

	baseURL := fmt.Sprintf("%s://%s", getScheme(r), r.Host)
	rss, err := s.feedService.GenerateFeed(report, baseURL).ToRss()
	if err != nil {
		s.logger.Error("Error converting report to RSS", "error", err)
		http.Error(w, "Failed to generate RSS", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rss))
}

func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
