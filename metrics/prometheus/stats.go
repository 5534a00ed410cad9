package prometheus

import (
	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/hasbyte1/password-worker/worker"
)

// StatsCollector reports a pool's gauges at scrape time.  Each series carries
// a pool_id label, so several pools can share a registry.
type StatsCollector struct {
	source worker.StatsSource

	threads       *prom.Desc
	queueCapacity *prom.Desc
	queueDepth    *prom.Desc
	busy          *prom.Desc
	handles       *prom.Desc
	closed        *prom.Desc
}

var _ prom.Collector = (*StatsCollector)(nil)

func NewStatsCollector(namespace, subsystem string, source worker.StatsSource) *StatsCollector {
	desc := func(name, help string) *prom.Desc {
		return prom.NewDesc(prom.BuildFQName(namespace, subsystem, name), help, []string{"pool_id"}, nil)
	}
	return &StatsCollector{
		source:        source,
		threads:       desc("pool_threads", "Number of pool goroutines."),
		queueCapacity: desc("pool_queue_capacity", "Maximum number of queued jobs."),
		queueDepth:    desc("pool_queue_depth", "Jobs waiting in the queue."),
		busy:          desc("pool_busy_threads", "Pool goroutines currently running a job."),
		handles:       desc("pool_handles", "Live handles sharing the pool."),
		closed:        desc("pool_closed", "1 once the pool stopped accepting jobs."),
	}
}

func (c *StatsCollector) Describe(ch chan<- *prom.Desc) {
	ch <- c.threads
	ch <- c.queueCapacity
	ch <- c.queueDepth
	ch <- c.busy
	ch <- c.handles
	ch <- c.closed
}

func (c *StatsCollector) Collect(ch chan<- prom.Metric) {
	s := c.source.Stats()
	closed := 0.0
	if s.Closed {
		closed = 1
	}
	ch <- prom.MustNewConstMetric(c.threads, prom.GaugeValue, float64(s.Threads), s.PoolID)
	ch <- prom.MustNewConstMetric(c.queueCapacity, prom.GaugeValue, float64(s.QueueCapacity), s.PoolID)
	ch <- prom.MustNewConstMetric(c.queueDepth, prom.GaugeValue, float64(s.QueueDepth), s.PoolID)
	ch <- prom.MustNewConstMetric(c.busy, prom.GaugeValue, float64(s.Busy), s.PoolID)
	ch <- prom.MustNewConstMetric(c.handles, prom.GaugeValue, float64(s.Handles), s.PoolID)
	ch <- prom.MustNewConstMetric(c.closed, prom.GaugeValue, closed, s.PoolID)
}
