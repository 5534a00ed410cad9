package worker

import (
	"context"
	"errors"
	"time"
)

// Outcome classifies how a dispatched job ended.
type Outcome string

const (
	// OutcomeOK: the algorithm returned a result.
	OutcomeOK Outcome = "ok"
	// OutcomeError: the algorithm returned an error.
	OutcomeError Outcome = "error"
	// OutcomePanic: the algorithm panicked; the caller got ErrJobPanicked.
	OutcomePanic Outcome = "panic"
	// OutcomeAbandoned: the job was dropped at shutdown without running.
	OutcomeAbandoned Outcome = "abandoned"
)

// Observer receives job lifecycle events.  Methods are called synchronously
// from submitting goroutines and pool goroutines, so implementations must
// be safe for concurrent use and cheap.
//
// The metrics/prometheus and metrics/otel packages provide implementations.
type Observer interface {
	// JobSubmitted is called after a job entered the queue.
	JobSubmitted(kind JobKind)
	// JobRejected is called when submission failed (closed, full, or ctx).
	JobRejected(kind JobKind, err error)
	// JobStarted is called when a pool goroutine picks the job up.
	JobStarted(kind JobKind, queueWait time.Duration)
	// JobFinished is called once per dispatched job.
	JobFinished(kind JobKind, outcome Outcome, elapsed time.Duration)
}

// RejectReason maps a submission error passed to [Observer.JobRejected] to
// a low-cardinality label: "full", "closed", "context" or "other".
func RejectReason(err error) string {
	switch {
	case errors.Is(err, ErrQueueFull):
		return "full"
	case errors.Is(err, ErrQueueClosed):
		return "closed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "context"
	default:
		return "other"
	}
}

// observers fans events out to every registered Observer.
type observers []Observer

func (obs observers) JobSubmitted(kind JobKind) {
	for _, o := range obs {
		o.JobSubmitted(kind)
	}
}

func (obs observers) JobRejected(kind JobKind, err error) {
	for _, o := range obs {
		o.JobRejected(kind, err)
	}
}

func (obs observers) JobStarted(kind JobKind, queueWait time.Duration) {
	for _, o := range obs {
		o.JobStarted(kind, queueWait)
	}
}

func (obs observers) JobFinished(kind JobKind, outcome Outcome, elapsed time.Duration) {
	for _, o := range obs {
		o.JobFinished(kind, outcome, elapsed)
	}
}

// Stats is a point-in-time snapshot of a pool.  Counters are cumulative
// since construction.
type Stats struct {
	PoolID        string
	Threads       int
	QueueCapacity int
	QueueDepth    int
	Busy          int
	Handles       int64
	Closed        bool

	Submitted uint64
	Rejected  uint64
	Completed uint64
	Failed    uint64
	Panicked  uint64
	Abandoned uint64
}

// StatsSource is implemented by [*Worker].  Metric exporters read gauges
// such as queue depth through it.
type StatsSource interface {
	Stats() Stats
}
