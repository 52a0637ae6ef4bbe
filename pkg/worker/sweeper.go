package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/matterdocs/pdfpro/pkg/core"
)

// Sweeper periodically fails jobs left running by an unclean shutdown.
// Stale jobs are failed rather than requeued so a legal-document
// operation is never silently re-attempted; the failure trail stays
// visible and the job must be explicitly resubmitted.
type Sweeper struct {
	store     core.Store
	staleness time.Duration
	logger    *slog.Logger
	cron      *cron.Cron
}

// NewSweeper creates a sweeper that fails running jobs older than
// staleness on the given cron schedule (e.g. "@every 1m").
func NewSweeper(store core.Store, schedule string, staleness time.Duration, logger *slog.Logger) (*Sweeper, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Sweeper{
		store:     store,
		staleness: staleness,
		logger:    logger,
		cron:      cron.New(),
	}
	if _, err := s.cron.AddFunc(schedule, s.sweep); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins the sweep schedule.
func (s *Sweeper) Start() {
	s.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) sweep() {
	n, err := s.store.SweepStaleRunning(context.Background(), s.staleness)
	if err != nil {
		s.logger.Error("stale job sweep failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Warn("failed stale running jobs", "count", n, "older_than", s.staleness)
	}
}
