// Package scheduler runs the time-triggered jobs: the daily balance
// reconciliation and the periodic metrics scraper token rotation.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/RafaelMelo23/expensetracker/internal/api/metrics"
	"github.com/RafaelMelo23/expensetracker/internal/core/ports"
)

// runLockTTL bounds how long a crashed holder can block other instances.
const runLockTTL = time.Hour

// Options configures the daily reconciliation trigger. The zero value fires
// at midnight UTC with a real clock.
type Options struct {
	// Hour is the local wall-clock hour (0-23) the daily run starts at.
	Hour int
	// Location is the time zone Hour is interpreted in. Defaults to UTC.
	Location *time.Location
	// Now overrides the clock. Defaults to time.Now.
	Now func() time.Time
}

// Scheduler fires the balance reconciliation batch once per calendar day.
// Each run fetches the accounts whose salary day matches today and hands them
// to the sharded dispatcher; per-account failures are isolated there.
type Scheduler struct {
	accounting ports.AccountingRepository
	dispatcher *Dispatcher
	lock       ports.RunLocker
	hour       int
	loc        *time.Location
	now        func() time.Time
	log        zerolog.Logger
}

func NewScheduler(accounting ports.AccountingRepository, dispatcher *Dispatcher, lock ports.RunLocker, opts Options, log zerolog.Logger) *Scheduler {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		accounting: accounting,
		dispatcher: dispatcher,
		lock:       lock,
		hour:       opts.Hour,
		loc:        loc,
		now:        now,
		log:        log,
	}
}

// Start launches the daily trigger loop. It returns immediately; the loop
// stops when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *Scheduler) loop(ctx context.Context) {
	for {
		now := s.now()
		next := s.NextFire(now)
		timer := time.NewTimer(next.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			if err := s.RunOnce(ctx, s.now()); err != nil {
				s.log.Error().Err(err).Msg("daily reconciliation run failed")
			}
		}
	}
}

// NextFire returns the next daily trigger strictly after now.
func (s *Scheduler) NextFire(now time.Time) time.Time {
	local := now.In(s.loc)
	fire := time.Date(local.Year(), local.Month(), local.Day(), s.hour, 0, 0, 0, s.loc)
	if !fire.After(local) {
		fire = fire.AddDate(0, 0, 1)
	}
	return fire
}

// RunOnce executes one reconciliation batch for the calendar day of now. It
// blocks until every due account has been processed. Re-running the same day
// is safe: reconciliation overwrites balances rather than crediting deltas.
func (s *Scheduler) RunOnce(ctx context.Context, now time.Time) error {
	day := now.In(s.loc)
	key := day.Format("2006-01-02")

	if s.lock != nil {
		acquired, err := s.lock.TryAcquire(ctx, key, runLockTTL)
		if err != nil {
			// A broken lock backend must not silence payday; run anyway.
			s.log.Warn().Err(err).Msg("run lock unavailable, proceeding without it")
		} else if !acquired {
			metrics.ReconcileRunsTotal.WithLabelValues("skipped").Inc()
			s.log.Info().Str("day", key).Msg("reconciliation already running elsewhere, skipping")
			return nil
		} else {
			defer func() {
				if err := s.lock.Release(ctx, key); err != nil {
					s.log.Warn().Err(err).Msg("failed to release run lock")
				}
			}()
		}
	}

	due, err := s.accounting.FindAccountsDueOn(ctx, day.Day())
	if err != nil {
		return fmt.Errorf("load accounts due on day %d: %w", day.Day(), err)
	}

	s.log.Info().
		Str("day", key).
		Int("accounts", len(due)).
		Msg("starting balance reconciliation")

	var wg sync.WaitGroup
	for _, d := range due {
		wg.Add(1)
		s.dispatcher.Submit(reconcileJob{userID: d.UserID, salary: d.MonthlySalary, done: &wg})
	}
	wg.Wait()

	metrics.ReconcileRunsTotal.WithLabelValues("completed").Inc()
	return nil
}
