// Package prometheus exposes worker pool activity as Prometheus metrics.
//
// [Observer] implements worker.Observer and records job counters and
// latency histograms.  [StatsCollector] reads pool gauges (queue depth,
// busy goroutines, live handles) from a worker.StatsSource at scrape time.
//
// Callers own the registry:
//
//	obs := prometheus.NewObserver("pwworker", "")
//	obs.MustRegister(reg)
//	w, _ := worker.NewBcrypt(4, worker.WithObserver(obs))
//	reg.MustRegister(prometheus.NewStatsCollector("pwworker", "", w))
package prometheus
