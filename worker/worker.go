package worker

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/hasbyte1/password-worker/hashing"
)

// Worker is a handle to a password hashing pool.
//
// All methods are safe for concurrent use.  Share one Worker between
// goroutines, or hand out clones with [Worker.Clone] when separate owners
// should each be able to [Worker.Close] their copy.  Every clone talks to
// the same pool goroutines and the same queue.
type Worker[C any] struct {
	alg  hashing.Algorithm[C]
	pool *pool
	ref  *handleRef
}

// handleRef is kept apart from Worker so the cleanup attached to a Worker
// can reach it without keeping the Worker itself alive.
type handleRef struct {
	released atomic.Bool
}

// New starts a pool of maxThreads goroutines that run alg.
//
// It returns ErrPoolCreation if maxThreads is not positive, alg is nil, or
// the queue size option is negative.
//
// The pool stops when the last handle is closed (or garbage collected
// without being closed), after running every job already queued.
// [Worker.Shutdown] stops it earlier for every handle.
func New[C any](maxThreads int, alg hashing.Algorithm[C], opts ...Option) (*Worker[C], error) {
	if maxThreads <= 0 {
		return nil, fmt.Errorf("%w: max threads must be positive, got %d", ErrPoolCreation, maxThreads)
	}
	if alg == nil {
		return nil, fmt.Errorf("%w: nil algorithm", ErrPoolCreation)
	}

	o := options{
		overflow: OverflowWait,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.queueSize < 0 {
		return nil, fmt.Errorf("%w: queue size must not be negative, got %d", ErrPoolCreation, o.queueSize)
	}
	if o.queueSize == 0 {
		o.queueSize = DefaultQueuePerThread * maxThreads
	}
	if o.overflow != OverflowWait && o.overflow != OverflowReject {
		return nil, fmt.Errorf("%w: unknown overflow policy %v", ErrPoolCreation, o.overflow)
	}

	p := newPool(maxThreads, o)
	p.refs.Store(1)
	return newHandle(alg, p, true), nil
}

func newHandle[C any](alg hashing.Algorithm[C], p *pool, live bool) *Worker[C] {
	w := &Worker[C]{alg: alg, pool: p, ref: &handleRef{}}
	if !live {
		w.ref.released.Store(true)
		return w
	}
	runtime.AddCleanup(w, func(ref *handleRef) {
		if ref.released.CompareAndSwap(false, true) && p.release() {
			go func() { _ = p.stop(context.Background()) }()
		}
	}, w.ref)
	return w
}

// Hash runs alg.Hash(password, cfg) on the pool and waits for the result.
//
// The calling goroutine is parked, not spinning, while it waits.  If ctx
// ends first Hash returns ctx.Err(); the computation itself still runs to
// completion on the pool and its result is discarded.
//
// Errors: ErrQueueClosed, ErrQueueFull (OverflowReject only), ErrWorkerGone,
// *AlgorithmError, or a ctx error.
func (w *Worker[C]) Hash(ctx context.Context, password string, cfg C) (string, error) {
	if w.ref.released.Load() {
		return "", ErrQueueClosed
	}
	j, done := newHashJob(w.alg, password, cfg)
	if err := w.pool.submit(ctx, j); err != nil {
		return "", err
	}
	return await(ctx, done)
}

// Verify runs alg.Verify(password, hash) on the pool and waits for the
// result.  A mismatch is (false, nil).  A malformed or foreign hash string
// is an *AlgorithmError wrapping the hashing package's error.
func (w *Worker[C]) Verify(ctx context.Context, password, hash string) (bool, error) {
	if w.ref.released.Load() {
		return false, ErrQueueClosed
	}
	j, done := newVerifyJob(w.alg, password, hash)
	if err := w.pool.submit(ctx, j); err != nil {
		return false, err
	}
	return await(ctx, done)
}

// Clone returns a new handle to the same pool.  Cloning a closed handle, or
// any handle after the last one was closed, returns a handle whose
// operations fail with ErrQueueClosed.
func (w *Worker[C]) Clone() *Worker[C] {
	live := !w.ref.released.Load() && w.pool.acquire()
	return newHandle(w.alg, w.pool, live)
}

// Close releases this handle.  Closing the last live handle stops the pool
// gracefully: queued jobs still run, and Close returns once the pool
// goroutines have exited.  Close is idempotent.
func (w *Worker[C]) Close() error {
	if !w.ref.released.CompareAndSwap(false, true) {
		return nil
	}
	if w.pool.release() {
		return w.pool.stop(context.Background())
	}
	return nil
}

// Shutdown stops the pool for every handle.  New submissions fail with
// ErrQueueClosed immediately.  Queued jobs keep running until ctx ends;
// after that they are abandoned (their callers get ErrWorkerGone) and
// Shutdown returns ctx.Err().  Jobs already running are never interrupted.
func (w *Worker[C]) Shutdown(ctx context.Context) error {
	return w.pool.stop(ctx)
}

// Algorithm returns the algorithm this pool runs.
func (w *Worker[C]) Algorithm() hashing.Algorithm[C] { return w.alg }

// ID returns the pool identifier shared by all clones.
func (w *Worker[C]) ID() string { return w.pool.id }

// Threads returns the fixed pool size.
func (w *Worker[C]) Threads() int { return w.pool.threads }

// QueueCapacity returns the job queue bound.
func (w *Worker[C]) QueueCapacity() int { return cap(w.pool.jobs) }

// Stats returns a snapshot of the shared pool.
func (w *Worker[C]) Stats() Stats { return w.pool.stats() }
