package reactive

import (
	"time"

	"github.com/signalgraph/reactive/reactive/emit"
)

// Derived is a computed reactive value: read-only, lazily revalidated,
// and itself a producer to whatever reads it. Its compute closure runs
// inside a tracking scope, so whatever signals or other derived values it
// reads during one run become its dependencies for the next.
type Derived[T any] struct {
	n       node
	ctx     *Context
	value   T
	compute func() T
}

// NewDerived creates a Derived bound to ctx. compute does not run until
// the first Get (or, indirectly, the first flush of an effect that reads
// it).
func NewDerived[T any](ctx *Context, compute func() T) *Derived[T] {
	d := &Derived[T]{ctx: ctx, compute: compute}
	d.n = node{ctx: ctx, kind: kindDerived}
	d.n.state.setLifecycle(stateInvalidated)
	d.n.pull = d.recompute
	if ctx.cfg.metrics != nil {
		ctx.cfg.metrics.DerivedTotal.Inc()
	}
	return d
}

// recompute runs compute inside a tracking scope and reports whether the
// result differs from the previously held value under the Context's
// equality function. A panic from compute is recovered and returned as an
// error rather than propagated, matching the non-cycle error path pull
// documents; a cycle panic (ErrCycle) is deliberately let through
// unrecovered so it keeps unwinding to wherever does recover it.
func (d *Derived[T]) recompute() (changed bool, err error) {
	err = runConsumer(&d.n, func() (runErr error) {
		defer func() {
			if r := recover(); r != nil {
				if cycleErr, ok := r.(error); ok && cycleErr == ErrCycle {
					panic(r)
				}
				if e, ok := r.(error); ok {
					runErr = e
				} else {
					runErr = errAsPanic(r)
				}
			}
		}()
		next := d.compute()
		if !d.ctx.cfg.equal(d.value, next) {
			d.value = next
			changed = true
		}
		return nil
	})
	return changed, err
}

// Get revalidates the derived if it is not already CLEAN and returns its
// value, recording a dependency if called while another Derived or Effect
// is tracking. A non-cycle error surfaced by pull (a panic raised by this
// derived's own compute, or one of its dependencies') is re-panicked here
// rather than swallowed: the exception propagates through the get that
// triggered the pull, the same as a cycle does, and the derived is left at
// its previous value with INVALIDATED still set so the next read retries.
func (d *Derived[T]) Get() T {
	started := time.Now()
	err := pull(&d.n)
	if d.ctx.cfg.metrics != nil {
		d.ctx.cfg.metrics.ObservePull(time.Since(started))
	}
	d.ctx.cfg.emitter.Emit(emit.Event{
		ContextID: d.ctx.id,
		Kind:      "pull",
		NodeID:    nodeID(&d.n),
	})
	if err != nil {
		panic(err)
	}
	if d.ctx.active != nil {
		d.ctx.track(&d.n, d.ctx.active)
	}
	return d.value
}

// Peek returns the derived's value as of its last revalidation without
// forcing one and without recording a dependency. Useful for diagnostics;
// ordinary reads should use Get.
func (d *Derived[T]) Peek() T {
	return d.value
}

// Dispose detaches this derived from both its dependencies and its
// consumers. Further Get calls still return the last computed value but
// never revalidate it, since compute is never invoked again.
func (d *Derived[T]) Dispose() {
	if d.n.state.is(stateDisposed) {
		return
	}
	detachAll(&d.n)
	detachOutgoing(&d.n)
	d.n.state.setLifecycle(stateDisposed)
}
