package worker

import (
	"fmt"
	"runtime"

	"github.com/hasbyte1/password-worker/hashing"
	"github.com/hasbyte1/password-worker/internal/envconf"
)

// Config is the environment-friendly form of the pool settings.
type Config struct {
	Threads      int
	QueueSize    int
	Overflow     OverflowPolicy
	LockOSThread bool
}

// DefaultConfig leaves one CPU for request handling, and never goes below
// one thread.
func DefaultConfig() Config {
	threads := runtime.NumCPU() - 1
	if threads < 1 {
		threads = 1
	}
	return Config{
		Threads:  threads,
		Overflow: OverflowWait,
	}
}

// ConfigFromEnv returns [DefaultConfig] overridden by:
//
//   - PWWORKER_THREADS         (1 .. 1024)
//   - PWWORKER_QUEUE_SIZE      (1 .. 1048576)
//   - PWWORKER_OVERFLOW        (wait | reject)
//   - PWWORKER_LOCK_OS_THREAD  (bool)
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if n, ok, err := envconf.Int("PWWORKER_THREADS", 1, 1024); err != nil {
		return Config{}, err
	} else if ok {
		cfg.Threads = n
	}
	if n, ok, err := envconf.Int("PWWORKER_QUEUE_SIZE", 1, 1<<20); err != nil {
		return Config{}, err
	} else if ok {
		cfg.QueueSize = n
	}
	if s, ok := envconf.String("PWWORKER_OVERFLOW"); ok {
		p, err := ParseOverflowPolicy(s)
		if err != nil {
			return Config{}, fmt.Errorf("PWWORKER_OVERFLOW: %w", err)
		}
		cfg.Overflow = p
	}
	if b, ok, err := envconf.Bool("PWWORKER_LOCK_OS_THREAD"); err != nil {
		return Config{}, err
	} else if ok {
		cfg.LockOSThread = b
	}

	return cfg, nil
}

// Options converts cfg into constructor options.
func (c Config) Options() []Option {
	opts := []Option{WithQueueSize(c.QueueSize), WithOverflow(c.Overflow)}
	if c.LockOSThread {
		opts = append(opts, WithLockOSThread())
	}
	return opts
}

// NewFromConfig is New(cfg.Threads, alg, ...) with cfg's options applied
// before opts.
func NewFromConfig[C any](cfg Config, alg hashing.Algorithm[C], opts ...Option) (*Worker[C], error) {
	return New(cfg.Threads, alg, append(cfg.Options(), opts...)...)
}
