package worker

import (
	"fmt"
	"log/slog"
	"strings"
)

// DefaultQueuePerThread sizes the job queue when [WithQueueSize] is not
// given: capacity = DefaultQueuePerThread × threads.
const DefaultQueuePerThread = 32

// OverflowPolicy decides what Submit does when the queue is full.
type OverflowPolicy int

const (
	// OverflowWait parks the submitting goroutine until the queue has room,
	// the caller's context ends, or the pool shuts down.
	OverflowWait OverflowPolicy = iota
	// OverflowReject fails immediately with ErrQueueFull.
	OverflowReject
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowWait:
		return "wait"
	case OverflowReject:
		return "reject"
	default:
		return fmt.Sprintf("OverflowPolicy(%d)", int(p))
	}
}

// ParseOverflowPolicy parses "wait" or "reject", case-insensitively.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wait":
		return OverflowWait, nil
	case "reject":
		return OverflowReject, nil
	default:
		return 0, fmt.Errorf("unknown overflow policy %q (want wait or reject)", s)
	}
}

// Option configures [New].
type Option func(*options)

type options struct {
	queueSize    int
	overflow     OverflowPolicy
	logger       *slog.Logger
	observers    observers
	lockOSThread bool
}

// WithQueueSize sets the job queue capacity.  Zero selects the default;
// negative values make New fail with ErrPoolCreation.
func WithQueueSize(n int) Option {
	return func(o *options) { o.queueSize = n }
}

// WithOverflow sets the policy applied when the queue is full.
func WithOverflow(p OverflowPolicy) Option {
	return func(o *options) { o.overflow = p }
}

// WithLogger sets the structured logger.  The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithObserver adds an Observer.  May be given more than once.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

// WithLockOSThread pins every pool goroutine to its own OS thread for the
// pool's lifetime.
func WithLockOSThread() Option {
	return func(o *options) { o.lockOSThread = true }
}
