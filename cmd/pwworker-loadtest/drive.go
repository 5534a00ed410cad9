package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hasbyte1/password-worker/worker"
)

var errMismatch = errors.New("verify rejected the password it was hashed from")

// drive runs ops hash+verify round trips from concurrency goroutines.
// Algorithm errors are counted as failures; a verification mismatch aborts
// the run because it means results were crossed between callers.
func drive[C any](ctx context.Context, w *worker.Worker[C], cfg C, concurrency, ops int) (phaseStats, error) {
	var (
		cursor    atomic.Int64
		failures  atomic.Int64
		mu        sync.Mutex
		latencies = make([]time.Duration, 0, ops)
	)

	g, ctx := errgroup.WithContext(ctx)
	start := time.Now()
	for range concurrency {
		g.Go(func() error {
			for {
				i := int(cursor.Add(1)) - 1
				if i >= ops {
					return nil
				}
				password := fmt.Sprintf("load-%d-%d", i, time.Now().UnixNano())

				t0 := time.Now()
				hash, err := w.Hash(ctx, password, cfg)
				if err == nil {
					var ok bool
					ok, err = w.Verify(ctx, password, hash)
					if err == nil && !ok {
						return fmt.Errorf("op %d: %w", i, errMismatch)
					}
				}
				d := time.Since(t0)

				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					failures.Add(1)
				}
				mu.Lock()
				latencies = append(latencies, d)
				mu.Unlock()
			}
		})
	}
	err := g.Wait()
	return computeStats(time.Since(start), latencies, failures.Load()), err
}

type phaseStats struct {
	total    time.Duration
	ops      int
	failures int64
	p50      time.Duration
	p95      time.Duration
	p99      time.Duration
	opsPerS  float64
}

func computeStats(total time.Duration, samples []time.Duration, failures int64) phaseStats {
	if len(samples) == 0 {
		return phaseStats{total: total, failures: failures}
	}
	slices.Sort(samples)
	return phaseStats{
		total:    total,
		ops:      len(samples),
		failures: failures,
		p50:      percentile(samples, 50),
		p95:      percentile(samples, 95),
		p99:      percentile(samples, 99),
		opsPerS:  float64(len(samples)) / total.Seconds(),
	}
}

// percentile expects sorted samples.
func percentile(samples []time.Duration, p int) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	if p <= 0 {
		return samples[0]
	}
	if p >= 100 {
		return samples[len(samples)-1]
	}
	return samples[(len(samples)-1)*p/100]
}

func printStats(w io.Writer, name string, s phaseStats) {
	fmt.Fprintf(w, "%s: ops=%d failures=%d total=%s ops/sec=%.0f p50=%s p95=%s p99=%s\n",
		name,
		s.ops,
		s.failures,
		s.total.Round(time.Millisecond),
		s.opsPerS,
		s.p50.Round(time.Microsecond),
		s.p95.Round(time.Microsecond),
		s.p99.Round(time.Microsecond),
	)
}
