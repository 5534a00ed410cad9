package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hasbyte1/password-worker/worker"
)

// StatsRegistration keeps pool gauges registered until Close.
type StatsRegistration struct {
	registration metric.Registration
}

// RegisterStats registers observable gauges that read source on every
// collection.  Each observation carries a pool_id attribute.
func RegisterStats(meter metric.Meter, source worker.StatsSource) (*StatsRegistration, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	type gauge struct {
		name, help string
		value      func(worker.Stats) int64
		instrument metric.Int64ObservableGauge
	}
	gauges := []*gauge{
		{name: "pwworker.pool.threads", help: "Number of pool goroutines.",
			value: func(s worker.Stats) int64 { return int64(s.Threads) }},
		{name: "pwworker.pool.queue_capacity", help: "Maximum number of queued jobs.",
			value: func(s worker.Stats) int64 { return int64(s.QueueCapacity) }},
		{name: "pwworker.pool.queue_depth", help: "Jobs waiting in the queue.",
			value: func(s worker.Stats) int64 { return int64(s.QueueDepth) }},
		{name: "pwworker.pool.busy", help: "Pool goroutines currently running a job.",
			value: func(s worker.Stats) int64 { return int64(s.Busy) }},
		{name: "pwworker.pool.handles", help: "Live handles sharing the pool.",
			value: func(s worker.Stats) int64 { return s.Handles }},
	}

	observables := make([]metric.Observable, 0, len(gauges))
	for _, g := range gauges {
		ins, err := meter.Int64ObservableGauge(g.name, metric.WithDescription(g.help))
		if err != nil {
			return nil, fmt.Errorf("create gauge %s: %w", g.name, err)
		}
		g.instrument = ins
		observables = append(observables, ins)
	}

	registration, err := meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		s := source.Stats()
		opt := metric.WithAttributes(attribute.String("pool_id", s.PoolID))
		for _, g := range gauges {
			observer.ObserveInt64(g.instrument, g.value(s), opt)
		}
		return nil
	}, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}
	return &StatsRegistration{registration: registration}, nil
}

// Close unregisters the callback.
func (r *StatsRegistration) Close() error {
	if r == nil || r.registration == nil {
		return nil
	}
	return r.registration.Unregister()
}
