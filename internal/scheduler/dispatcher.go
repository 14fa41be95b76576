package scheduler

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/RafaelMelo23/expensetracker/internal/api/metrics"
	"github.com/RafaelMelo23/expensetracker/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// reconcileJob is one account's pending balance reconciliation. done is the
// batch's WaitGroup so a run can block until every account finished.
type reconcileJob struct {
	userID string
	salary decimal.Decimal
	done   *sync.WaitGroup
}

// Dispatcher fans reconciliation jobs out to a fixed set of workers using
// consistent hashing on the user id. Two jobs for the same account always
// land on the same worker and therefore never run concurrently, while
// distinct accounts proceed in parallel.
type Dispatcher struct {
	workers    []chan reconcileJob
	reconciler ports.Reconciler
	log        zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, reconciler ports.Reconciler, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:    make([]chan reconcileJob, numWorkers),
		reconciler: reconciler,
		log:        log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan reconcileJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Submit sends one account's reconciliation to the worker responsible for it.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Submit(job reconcileJob) {
	d.workers[d.shardIndex(job.userID)] <- job
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan reconcileJob) {
	for {
		select {
		case <-ctx.Done():
			// Drop queued jobs but release their batch waiters, otherwise a
			// RunOnce interrupted by shutdown blocks on wg.Wait forever.
			for {
				select {
				case job := <-ch:
					if job.done != nil {
						job.done.Done()
					}
				default:
					return
				}
			}
		case job, ok := <-ch:
			if !ok {
				return
			}
			d.process(ctx, id, job)
		}
	}
}

// process reconciles a single account. A failure is logged and counted but
// never stops the worker; the next daily run recomputes from current state.
func (d *Dispatcher) process(ctx context.Context, id int, job reconcileJob) {
	if job.done != nil {
		defer job.done.Done()
	}

	start := time.Now()
	if err := d.reconciler.Reconcile(ctx, job.userID, job.salary); err != nil {
		metrics.ReconcileAccountsTotal.WithLabelValues("error").Inc()
		d.log.Error().Err(err).
			Str("user_id", job.userID).
			Int("worker_id", id).
			Msg("balance reconciliation failed")
		return
	}

	metrics.ReconcileAccountsTotal.WithLabelValues("ok").Inc()
	metrics.ReconcileDuration.Observe(time.Since(start).Seconds())
}
