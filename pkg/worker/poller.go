// Package worker provides the polling scheduler that drives jobs through
// their state machine.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/matterdocs/pdfpro/pkg/core"
	"github.com/matterdocs/pdfpro/pkg/handler"
)

// Poller claims the oldest queued job on a fixed interval and runs it to
// completion. A busy guard keeps at most one cycle, and therefore at most
// one job, in flight: there is no cross-job or intra-job parallelism, and
// a hung handler blocks the queue. That is an accepted property of the
// single-worker design, not an oversight.
type Poller struct {
	store      core.Store
	dispatcher *handler.Dispatcher
	interval   time.Duration
	logger     *slog.Logger
	busy       atomic.Bool
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithInterval sets the poll interval.
func WithInterval(d time.Duration) PollerOption {
	return func(p *Poller) {
		if d > 0 {
			p.interval = d
		}
	}
}

// WithLogger sets the poller's logger.
func WithLogger(l *slog.Logger) PollerOption {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPoller creates a poller over the given store and dispatcher.
func NewPoller(store core.Store, dispatcher *handler.Dispatcher, opts ...PollerOption) *Poller {
	p := &Poller{
		store:      store,
		dispatcher: dispatcher,
		interval:   3 * time.Second,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start polls until the context is cancelled. Blocks.
func (p *Poller) Start(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.Poll(ctx)
		}
	}
}

// Poll runs a single cycle: claim the oldest queued job, dispatch it, and
// record the terminal status. Returns true if a job was processed. When a
// cycle is already in flight the call is a no-op.
func (p *Poller) Poll(ctx context.Context) bool {
	if !p.busy.CompareAndSwap(false, true) {
		return false
	}
	defer p.busy.Store(false)

	job, err := p.store.ClaimNext(ctx)
	if err != nil {
		p.logger.Error("failed to claim job", "error", err)
		return false
	}
	if job == nil {
		return false
	}

	p.logger.Info("job claimed", "job_id", job.ID, "job_type", job.JobType, "document_id", job.DocumentID)
	started := time.Now()

	outcome, err := p.dispatch(ctx, job)
	if err != nil {
		p.logger.Error("job failed", "job_id", job.ID, "job_type", job.JobType, "error", err)
		if markErr := p.store.MarkFailed(ctx, job.ID, err.Error()); markErr != nil {
			p.logger.Error("failed to mark job failed", "job_id", job.ID, "error", markErr)
		}
		return true
	}

	var resultVersionID *string
	if outcome != nil {
		resultVersionID = outcome.ResultVersionID
	}
	if markErr := p.store.MarkComplete(ctx, job.ID, resultVersionID); markErr != nil {
		p.logger.Error("failed to mark job complete", "job_id", job.ID, "error", markErr)
		return true
	}
	p.logger.Info("job complete", "job_id", job.ID, "job_type", job.JobType, "duration", time.Since(started))
	return true
}

// dispatch runs the handler, converting a panic into an ordinary error so
// the poller loop itself never crashes from a handler failure.
func (p *Poller) dispatch(ctx context.Context, job *core.DocumentJob) (outcome *handler.Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	report := func(percent int) {
		if updErr := p.store.UpdateProgress(ctx, job.ID, percent); updErr != nil {
			p.logger.Warn("failed to update progress", "job_id", job.ID, "error", updErr)
		}
	}
	return p.dispatcher.Dispatch(ctx, job, report)
}
