// Package otel binds worker pool activity to OpenTelemetry metric
// instruments.
//
// [NewObserver] creates synchronous counters and histograms and implements
// worker.Observer.  [RegisterStats] adds observable gauges fed by a
// worker.StatsSource on each collection cycle.
//
// The caller owns the MeterProvider; this package only asks it for
// instruments.
package otel
