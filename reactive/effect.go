package reactive

import (
	"time"

	"github.com/signalgraph/reactive/reactive/emit"
)

// Effect runs a function for its side effects whenever a signal or
// derived it reads changes, and nothing else: it never acts as a
// producer, so nothing can depend on an Effect.
//
// fn may return a cleanup closure, run immediately before fn's next
// invocation and again on Dispose — the same contract React's and
// Solid's effect cleanups follow.
type Effect struct {
	n       node
	ctx     *Context
	fn      func() func()
	cleanup func()
}

// NewEffect creates an Effect bound to ctx and runs it once, synchronously,
// before returning. That first run is not recovered: a panic from fn, or
// a cycle discovered while establishing its initial dependencies, comes
// straight out of NewEffect, the same as calling any other function that
// panics. Only runs the work queue later schedules and flushes go through
// runEffectSafely's recover, since that loop must survive one effect's
// failure to run the rest of what is queued.
func NewEffect(ctx *Context, fn func() func()) *Effect {
	e := &Effect{ctx: ctx, fn: fn}
	e.n = node{ctx: ctx, kind: kindEffect}
	e.n.runEffect = e.run
	if ctx.cfg.metrics != nil {
		ctx.cfg.metrics.EffectsTotal.Inc()
	}
	e.run()
	return e
}

func (e *Effect) run() {
	if e.n.state.is(stateDisposed) {
		return
	}
	// A finished run, even one that panicked, leaves the effect CLEAN so
	// the next push can invalidate and schedule it again.
	defer func() {
		if e.n.state.is(stateInvalidated) {
			e.n.state.setLifecycle(stateClean)
		}
	}()
	if e.cleanup != nil {
		cleanup := e.cleanup
		e.cleanup = nil
		cleanup()
	}

	started := time.Now()
	runErr := runConsumer(&e.n, func() error {
		e.cleanup = e.fn()
		return nil
	})

	if runErr != nil {
		e.ctx.fail(runErr, nodeID(&e.n))
	}
	e.ctx.recordRun(nodeID(&e.n), started, runErr == nil)
	e.ctx.cfg.emitter.Emit(emit.Event{
		ContextID: e.ctx.id,
		Kind:      "effect_run",
		NodeID:    nodeID(&e.n),
	})
}

// Dispose runs any pending cleanup, detaches the effect from every
// dependency, and marks it so a scheduled-but-not-yet-flushed run of it
// is skipped instead of executed.
func (e *Effect) Dispose() {
	if e.n.state.is(stateDisposed) {
		return
	}
	if e.cleanup != nil {
		cleanup := e.cleanup
		e.cleanup = nil
		cleanup()
	}
	detachAll(&e.n)
	e.n.state.setLifecycle(stateDisposed)
}
