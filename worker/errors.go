package worker

import (
	"errors"
	"fmt"

	"github.com/hasbyte1/password-worker/hashing"
)

// Sentinel errors returned by [Worker] operations.  Compare with [errors.Is].
var (
	// ErrPoolCreation is returned by [New] when the thread count is not
	// positive or another construction argument is invalid.  No goroutines
	// are started when it is returned.
	ErrPoolCreation = errors.New("worker: cannot create pool")

	// ErrQueueClosed is returned when a job is submitted after the pool was
	// shut down or through a handle that was closed.
	ErrQueueClosed = errors.New("worker: job queue is closed")

	// ErrQueueFull is returned under [OverflowReject] when the queue is at
	// capacity.
	ErrQueueFull = errors.New("worker: job queue is full")

	// ErrWorkerGone is returned when a job was dropped without a result,
	// which happens when a shutdown deadline abandons queued jobs.
	ErrWorkerGone = errors.New("worker: job dropped without a result")

	// ErrAlgorithm matches every [*AlgorithmError].
	ErrAlgorithm = errors.New("worker: algorithm failed")

	// ErrJobPanicked is wrapped by the [*AlgorithmError] delivered when the
	// algorithm panicked while running a job.
	ErrJobPanicked = errors.New("worker: job panicked")
)

// AlgorithmError reports a failed hash or verify operation.  It wraps the
// underlying cause, so errors.Is(err, hashing.ErrInvalidHash) works through
// it, and it matches [ErrAlgorithm].
type AlgorithmError struct {
	Op     JobKind
	Driver hashing.DriverName
	JobID  string
	Err    error
}

func (e *AlgorithmError) Error() string {
	return fmt.Sprintf("worker: %s %s failed (job %s): %v", e.Driver, e.Op, e.JobID, e.Err)
}

func (e *AlgorithmError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrAlgorithm) true for every AlgorithmError.
func (e *AlgorithmError) Is(target error) bool { return target == ErrAlgorithm }
