package otel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hasbyte1/password-worker/worker"
)

var (
	ErrNilMeter  = errors.New("otel: nil meter")
	ErrNilSource = errors.New("otel: nil stats source")
)

// Observer records worker job events with OpenTelemetry instruments.
type Observer struct {
	submitted metric.Int64Counter
	rejected  metric.Int64Counter
	finished  metric.Int64Counter
	queueWait metric.Float64Histogram
	duration  metric.Float64Histogram
}

var _ worker.Observer = (*Observer)(nil)

func NewObserver(meter metric.Meter) (*Observer, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	var (
		o   Observer
		err error
	)
	if o.submitted, err = meter.Int64Counter("pwworker.jobs.submitted",
		metric.WithDescription("Jobs accepted into the queue.")); err != nil {
		return nil, fmt.Errorf("create submitted counter: %w", err)
	}
	if o.rejected, err = meter.Int64Counter("pwworker.jobs.rejected",
		metric.WithDescription("Jobs refused at submission.")); err != nil {
		return nil, fmt.Errorf("create rejected counter: %w", err)
	}
	if o.finished, err = meter.Int64Counter("pwworker.jobs.finished",
		metric.WithDescription("Jobs that left the queue, by outcome.")); err != nil {
		return nil, fmt.Errorf("create finished counter: %w", err)
	}
	if o.queueWait, err = meter.Float64Histogram("pwworker.job.queue_wait",
		metric.WithDescription("Time between submission and pickup."),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("create queue wait histogram: %w", err)
	}
	if o.duration, err = meter.Float64Histogram("pwworker.job.duration",
		metric.WithDescription("Time spent running the hashing algorithm."),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}
	return &o, nil
}

func kindAttr(kind worker.JobKind) attribute.KeyValue {
	return attribute.String("kind", string(kind))
}

func (o *Observer) JobSubmitted(kind worker.JobKind) {
	o.submitted.Add(context.Background(), 1, metric.WithAttributes(kindAttr(kind)))
}

func (o *Observer) JobRejected(kind worker.JobKind, err error) {
	o.rejected.Add(context.Background(), 1, metric.WithAttributes(
		kindAttr(kind), attribute.String("reason", worker.RejectReason(err))))
}

func (o *Observer) JobStarted(kind worker.JobKind, queueWait time.Duration) {
	o.queueWait.Record(context.Background(), queueWait.Seconds(), metric.WithAttributes(kindAttr(kind)))
}

func (o *Observer) JobFinished(kind worker.JobKind, outcome worker.Outcome, elapsed time.Duration) {
	attrs := metric.WithAttributes(kindAttr(kind), attribute.String("outcome", string(outcome)))
	o.finished.Add(context.Background(), 1, attrs)
	if outcome != worker.OutcomeAbandoned {
		o.duration.Record(context.Background(), elapsed.Seconds(), attrs)
	}
}
