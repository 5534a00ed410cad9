// Package worker runs password hashing on a fixed pool of goroutines and
// exposes it to callers as plain blocking calls.
//
// Hashing is CPU-bound and slow on purpose.  Running it inline in request
// handlers lets a burst of logins occupy every CPU.  A [Worker] bounds that
// work to a fixed number of goroutines fed by one bounded FIFO queue; each
// Hash or Verify call submits a job and parks the caller until its own
// result arrives.
//
// # Lifecycle
//
//	w, err := worker.NewBcrypt(2)
//	if err != nil { ... }
//	defer w.Close()
//
//	hash, err := w.Hash(ctx, "hunter2", hashing.BcryptConfig{Cost: 12})
//	ok, err := w.Verify(ctx, "hunter2", hash)
//
// [Worker.Clone] hands out additional handles to the same pool.  The pool
// stops once every handle has been closed; jobs already queued still run.
// [Worker.Shutdown] stops it for everyone and bounds the drain with a
// context.
//
// # Backpressure
//
// The queue holds [DefaultQueuePerThread] jobs per thread unless
// [WithQueueSize] says otherwise.  When it is full, [OverflowWait] parks the
// submitter and [OverflowReject] returns [ErrQueueFull].
//
// # Failures
//
// Errors from the algorithm come back as [*AlgorithmError].  A panic inside
// the algorithm is recovered, reported as an AlgorithmError wrapping
// [ErrJobPanicked], and the pool keeps its full thread count.
//
// # Observability
//
// Pass [WithLogger] for structured logs and [WithObserver] for metrics; the
// metrics/prometheus and metrics/otel packages adapt Observer and
// [StatsSource] to those systems.
package worker
