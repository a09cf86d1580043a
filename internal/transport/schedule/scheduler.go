package schedule

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/samber/oops"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context)

// Scheduler triggers a job on a cron schedule evaluated in UTC. A tick that
// fires while the previous run is still going is skipped.
type Scheduler struct {
	cron   *cron.Cron
	spec   string
	logger *slog.Logger

	mu      sync.Mutex
	entryID cron.EntryID
	ctx     context.Context
	cancel  context.CancelFunc
}

// New validates spec (standard 5-field cron or a descriptor like @daily).
func New(spec string) (*Scheduler, error) {
	spec = strings.TrimSpace(spec)
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, oops.In("schedule").With("schedule", spec).Wrap(err)
	}

	logger := slog.Default()
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		spec:   spec,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// SetLogger sets the logger
func (s *Scheduler) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Start registers job and starts the cron loop.
func (s *Scheduler) Start(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
	}

	id, err := s.cron.AddFunc(s.spec, func() { job(s.ctx) })
	if err != nil {
		return oops.In("schedule").With("schedule", s.spec).Wrap(err)
	}
	s.entryID = id
	s.cron.Start()

	s.logger.Info("Scheduler started", "schedule", s.spec, "next_run", s.cron.Entry(id).Next)
	return nil
}

// Next returns the next activation time, zero if not started.
func (s *Scheduler) Next() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID == 0 {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// Stop cancels the running job's context and waits for it to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}
