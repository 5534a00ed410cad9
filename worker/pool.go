package worker

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// pool is the shared state behind every clone of a Worker: a fixed set of
// goroutines draining one bounded FIFO queue.
type pool struct {
	id           string
	threads      int
	jobs         chan job
	overflow     OverflowPolicy
	log          *slog.Logger
	obs          observers
	lockOSThread bool

	// mu makes "check closed, then send" atomic with respect to close(jobs).
	// Submitters hold the read side, so they never contend with each other.
	mu      sync.RWMutex
	closed  bool
	closing chan struct{} // closed first, to release submitters parked on a full queue

	stopOnce sync.Once
	abandon  atomic.Bool // set when a shutdown deadline passes; queued jobs are dropped
	wg       sync.WaitGroup
	done     chan struct{} // closed once every pool goroutine has returned

	refs atomic.Int64
	busy atomic.Int64

	submitted atomic.Uint64
	rejected  atomic.Uint64
	completed atomic.Uint64
	failed    atomic.Uint64
	panicked  atomic.Uint64
	abandoned atomic.Uint64
}

func newPool(threads int, o options) *pool {
	p := &pool{
		id:           uuid.NewString(),
		threads:      threads,
		jobs:         make(chan job, o.queueSize),
		overflow:     o.overflow,
		log:          o.logger,
		obs:          o.observers,
		lockOSThread: o.lockOSThread,
		closing:      make(chan struct{}),
		done:         make(chan struct{}),
	}
	p.log = p.log.With(slog.String("pool_id", p.id))

	p.wg.Add(threads)
	for i := range threads {
		go p.loop(i)
	}
	go func() {
		p.wg.Wait()
		p.log.Info("pool stopped",
			slog.Uint64("completed", p.completed.Load()),
			slog.Uint64("abandoned", p.abandoned.Load()))
		close(p.done)
	}()

	p.log.Debug("pool started",
		slog.Int("threads", threads),
		slog.Int("queue_capacity", o.queueSize),
		slog.String("overflow", o.overflow.String()))
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Consumer side
// ──────────────────────────────────────────────────────────────────────────────

func (p *pool) loop(n int) {
	defer p.wg.Done()
	if p.lockOSThread {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}
	for j := range p.jobs {
		if p.abandon.Load() {
			p.drop(j)
			continue
		}
		p.exec(n, j)
	}
}

// exec runs one job.  A panic in the algorithm is converted into an
// AlgorithmError for that job only; the goroutine keeps serving the queue.
func (p *pool) exec(n int, j job) {
	m := j.meta()
	p.busy.Add(1)
	defer p.busy.Add(-1)

	start := time.Now()
	result := OutcomeOK

	defer func() {
		if r := recover(); r != nil {
			result = OutcomePanic
			p.log.Error("job panicked",
				slog.Int("thread", n),
				slog.String("job_id", m.id),
				slog.String("kind", string(m.kind)),
				slog.String("driver", string(m.driver)),
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			j.fail(panicError(r))
		}
		p.completed.Add(1)
		switch result {
		case OutcomeError:
			p.failed.Add(1)
		case OutcomePanic:
			p.panicked.Add(1)
		}
		p.observe("finished", func() { p.obs.JobFinished(m.kind, result, time.Since(start)) })
	}()

	p.observe("started", func() { p.obs.JobStarted(m.kind, start.Sub(m.queuedAt)) })
	if err := j.run(); err != nil {
		result = OutcomeError
	}
}

func (p *pool) drop(j job) {
	m := j.meta()
	j.drop()
	p.abandoned.Add(1)
	p.log.Debug("job abandoned", slog.String("job_id", m.id), slog.String("kind", string(m.kind)))
	p.observe("finished", func() { p.obs.JobFinished(m.kind, OutcomeAbandoned, 0) })
}

// observe calls an Observer hook.  A panicking Observer is logged and
// otherwise ignored, so it cannot take a pool goroutine or a caller down.
func (p *pool) observe(event string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("observer panicked", slog.String("event", event), slog.Any("panic", r))
		}
	}()
	fn()
}

// ──────────────────────────────────────────────────────────────────────────────
// Producer side
// ──────────────────────────────────────────────────────────────────────────────

// submit enqueues j.  With room in the queue it never blocks.  On a full
// queue it applies the overflow policy.
func (p *pool) submit(ctx context.Context, j job) error {
	m := j.meta()
	m.queuedAt = time.Now()

	if err := p.enqueue(ctx, j); err != nil {
		p.rejected.Add(1)
		p.observe("rejected", func() { p.obs.JobRejected(m.kind, err) })
		return err
	}
	p.submitted.Add(1)
	p.observe("submitted", func() { p.obs.JobSubmitted(m.kind) })
	return nil
}

func (p *pool) enqueue(ctx context.Context, j job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrQueueClosed
	}
	select {
	case p.jobs <- j:
		return nil
	default:
	}
	if p.overflow == OverflowReject {
		return ErrQueueFull
	}
	select {
	case p.jobs <- j:
		return nil
	case <-p.closing:
		return ErrQueueClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Lifecycle
// ──────────────────────────────────────────────────────────────────────────────

// acquire registers one more handle.  It fails once the count has reached
// zero, so a released pool is never revived.
func (p *pool) acquire() bool {
	for {
		n := p.refs.Load()
		if n <= 0 {
			return false
		}
		if p.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

// release drops one handle and reports whether it was the last.
func (p *pool) release() bool {
	return p.refs.Add(-1) == 0
}

// stop closes the queue and waits for the pool goroutines.  Queued jobs keep
// running until ctx ends; from then on they are dropped and their callers
// get ErrWorkerGone.  A job already running always runs to completion.
//
// stop is idempotent; later calls only wait.
func (p *pool) stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.closing)
		p.mu.Lock()
		p.closed = true
		close(p.jobs)
		p.mu.Unlock()
	})

	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		if p.abandon.CompareAndSwap(false, true) {
			p.log.Warn("shutdown deadline passed; abandoning queued jobs",
				slog.Int("queued", len(p.jobs)))
		}
		return ctx.Err()
	}
}

func (p *pool) stats() Stats {
	closed := false
	select {
	case <-p.closing:
		closed = true
	default:
	}
	return Stats{
		PoolID:        p.id,
		Threads:       p.threads,
		QueueCapacity: cap(p.jobs),
		QueueDepth:    len(p.jobs),
		Busy:          int(p.busy.Load()),
		Handles:       p.refs.Load(),
		Closed:        closed,
		Submitted:     p.submitted.Load(),
		Rejected:      p.rejected.Load(),
		Completed:     p.completed.Load(),
		Failed:        p.failed.Load(),
		Panicked:      p.panicked.Load(),
		Abandoned:     p.abandoned.Load(),
	}
}
