package prometheus

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/hasbyte1/password-worker/worker"
)

// DurationBuckets spans 1ms to roughly 16s, which covers cheap test costs
// as well as deliberately slow production parameters.
var DurationBuckets = prom.ExponentialBuckets(0.001, 2, 15)

// Observer records worker job events in Prometheus collectors.
type Observer struct {
	submitted *prom.CounterVec
	rejected  *prom.CounterVec
	finished  *prom.CounterVec
	queueWait *prom.HistogramVec
	duration  *prom.HistogramVec
}

var _ worker.Observer = (*Observer)(nil)

// NewObserver creates unregistered collectors under namespace and subsystem.
func NewObserver(namespace, subsystem string) *Observer {
	return &Observer{
		submitted: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "jobs_submitted_total",
			Help:      "Jobs accepted into the queue.",
		}, []string{"kind"}),
		rejected: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "jobs_rejected_total",
			Help:      "Jobs refused at submission.",
		}, []string{"kind", "reason"}),
		finished: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "jobs_finished_total",
			Help:      "Jobs that left the queue, by outcome.",
		}, []string{"kind", "outcome"}),
		queueWait: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "job_queue_wait_seconds",
			Help:      "Time between submission and a pool goroutine picking the job up.",
			Buckets:   DurationBuckets,
		}, []string{"kind"}),
		duration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "job_duration_seconds",
			Help:      "Time spent running the hashing algorithm.",
			Buckets:   DurationBuckets,
		}, []string{"kind", "outcome"}),
	}
}

// Collectors returns every collector owned by o.
func (o *Observer) Collectors() []prom.Collector {
	return []prom.Collector{o.submitted, o.rejected, o.finished, o.queueWait, o.duration}
}

// Register registers all collectors with reg, stopping at the first error.
func (o *Observer) Register(reg prom.Registerer) error {
	for _, c := range o.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is Register that panics on error.
func (o *Observer) MustRegister(reg prom.Registerer) {
	reg.MustRegister(o.Collectors()...)
}

func (o *Observer) JobSubmitted(kind worker.JobKind) {
	o.submitted.WithLabelValues(string(kind)).Inc()
}

func (o *Observer) JobRejected(kind worker.JobKind, err error) {
	o.rejected.WithLabelValues(string(kind), worker.RejectReason(err)).Inc()
}

func (o *Observer) JobStarted(kind worker.JobKind, queueWait time.Duration) {
	o.queueWait.WithLabelValues(string(kind)).Observe(queueWait.Seconds())
}

func (o *Observer) JobFinished(kind worker.JobKind, outcome worker.Outcome, elapsed time.Duration) {
	o.finished.WithLabelValues(string(kind), string(outcome)).Inc()
	if outcome != worker.OutcomeAbandoned {
		o.duration.WithLabelValues(string(kind), string(outcome)).Observe(elapsed.Seconds())
	}
}
