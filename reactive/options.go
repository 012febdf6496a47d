package reactive

import (
	"github.com/signalgraph/reactive/reactive/audit"
	"github.com/signalgraph/reactive/reactive/emit"
	"github.com/signalgraph/reactive/reactive/metrics"
)

// Option is a functional option for configuring a Context. Mirrors the
// engine configuration pattern: each option mutates a contextConfig that
// NewContext applies once, after defaults, so options can be supplied in
// any order and later ones win.
type Option func(*contextConfig)

type contextConfig struct {
	equal     func(a, b any) bool
	errorSink func(error)
	emitter   emit.Emitter
	metrics   *metrics.Collector
	maxDepth  int
	audit     audit.Store
}

// WithEquality overrides the default change-detection comparison used by
// Signal.Set and a Derived's recompute to decide whether a new value
// actually differs from the old one.
//
// Default: boxed == for comparable values; any non-comparable value is
// always treated as changed.
func WithEquality(eq func(a, b any) bool) Option {
	return func(c *contextConfig) {
		c.equal = eq
	}
}

// WithErrorSink routes errors the work queue isolates during flush —
// effect panics, pull failures on an effect's dependency chain, disposed
// writes — to a caller-supplied handler instead of discarding them.
//
// Default: errors are discarded.
func WithErrorSink(sink func(error)) Option {
	return func(c *contextConfig) {
		c.errorSink = sink
	}
}

// WithEmitter attaches a diagnostic Emitter that observes push, pull and
// flush activity without influencing scheduling.
//
// Default: emit.NullEmitter, which discards every event.
func WithEmitter(e emit.Emitter) Option {
	return func(c *contextConfig) {
		c.emitter = e
	}
}

// WithMetrics attaches a Prometheus collector tracking node counts, queue
// depth, and push/pull/flush counters and latencies.
//
// Default: nil, metrics are not recorded.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *contextConfig) {
		c.metrics = m
	}
}

// WithMaxDepth bounds how many effects a single flush will run, including
// ones it re-entrantly schedules while draining, turning a runaway
// self-triggering effect into ErrMaxDepthExceeded instead of an unbounded
// loop. It does not bound pull's recursion depth. A negative n is treated
// as 0 (no limit) rather than silently misbehaving.
//
// Default: 0, no limit.
func WithMaxDepth(n int) Option {
	if n < 0 {
		n = 0
	}
	return func(c *contextConfig) {
		c.maxDepth = n
	}
}

// WithAuditStore attaches a Store that records one Run per completed
// effect run (including the run NewEffect makes) and one ErrorEntry per
// isolated error. Purely additive: disabling it
// (the default, a nil Store) changes no scheduling or propagation
// behavior.
//
// Default: nil, nothing is recorded.
func WithAuditStore(store audit.Store) Option {
	return func(c *contextConfig) {
		c.audit = store
	}
}
