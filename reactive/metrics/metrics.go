// Package metrics provides Prometheus-compatible instrumentation for a
// reactive Context.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds every metric a Context reports to, all namespaced with
// "reactive_".
//
// Gauges:
//   - signals_total, derived_total, effects_total: nodes created; Dispose
//     does not decrement them.
//   - queue_depth: effects currently waiting to flush.
//
// Counters:
//   - pushes_total, pulls_total, flushes_total.
//   - cycle_errors_total, effect_errors_total.
//
// Histograms:
//   - push_duration_seconds, pull_duration_seconds.
type Collector struct {
	SignalsTotal prometheus.Gauge
	DerivedTotal prometheus.Gauge
	EffectsTotal prometheus.Gauge
	QueueDepth   prometheus.Gauge

	PushesTotal  prometheus.Counter
	PullsTotal   prometheus.Counter
	FlushesTotal prometheus.Counter
	CycleErrors  prometheus.Counter
	EffectErrors prometheus.Counter

	PushDuration prometheus.Histogram
	PullDuration prometheus.Histogram
}

// New registers and returns a Collector on reg. Pass
// prometheus.DefaultRegisterer to use the global registry.
func New(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		SignalsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "reactive_signals_total",
			Help: "Number of signals created.",
		}),
		DerivedTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "reactive_derived_total",
			Help: "Number of derived values created.",
		}),
		EffectsTotal: factory.NewGauge(prometheus.GaugeOpts{
			Name: "reactive_effects_total",
			Help: "Number of effects created.",
		}),
		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "reactive_queue_depth",
			Help: "Effects currently queued for flush.",
		}),
		PushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "reactive_pushes_total",
			Help: "Number of signal writes that propagated a push.",
		}),
		PullsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "reactive_pulls_total",
			Help: "Number of derived revalidations performed.",
		}),
		FlushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "reactive_flushes_total",
			Help: "Number of work-queue flushes.",
		}),
		CycleErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "reactive_cycle_errors_total",
			Help: "Cycle errors routed to the Context's error path.",
		}),
		EffectErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "reactive_effect_errors_total",
			Help: "Non-cycle errors routed to the Context's error path.",
		}),
		PushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "reactive_push_duration_seconds",
			Help:    "Wall time spent in a single push traversal.",
			Buckets: prometheus.DefBuckets,
		}),
		PullDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "reactive_pull_duration_seconds",
			Help:    "Wall time spent revalidating a derived chain.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObservePush records one push traversal's duration and increments
// PushesTotal.
func (c *Collector) ObservePush(d time.Duration) {
	if c == nil {
		return
	}
	c.PushesTotal.Inc()
	c.PushDuration.Observe(d.Seconds())
}

// ObservePull records one pull revalidation's duration and increments
// PullsTotal.
func (c *Collector) ObservePull(d time.Duration) {
	if c == nil {
		return
	}
	c.PullsTotal.Inc()
	c.PullDuration.Observe(d.Seconds())
}
