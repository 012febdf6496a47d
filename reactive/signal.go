package reactive

import (
	"time"

	"github.com/signalgraph/reactive/reactive/emit"
)

// Signal is a mutable reactive value: the leaf producer at the root of
// every dependency chain. Reading it through Get inside a running Derived
// or Effect records a dependency edge; Set writes a new value and pushes
// invalidation to everything reachable from it.
type Signal[T any] struct {
	n     node
	ctx   *Context
	value T
}

// NewSignal creates a Signal bound to ctx, holding initial until the
// first Set.
func NewSignal[T any](ctx *Context, initial T) *Signal[T] {
	s := &Signal[T]{ctx: ctx, value: initial}
	s.n = node{ctx: ctx, kind: kindSignal}
	if ctx.cfg.metrics != nil {
		ctx.cfg.metrics.SignalsTotal.Inc()
	}
	return s
}

// Get returns the current value, recording a dependency if called while a
// Derived or Effect is tracking.
func (s *Signal[T]) Get() T {
	if s.ctx.active != nil {
		s.ctx.track(&s.n, s.ctx.active)
	}
	return s.value
}

// Peek returns the current value without recording a dependency,
// regardless of whether a consumer is currently tracking.
func (s *Signal[T]) Peek() T {
	return s.value
}

// Set stores v and, if it differs from the current value under the
// Context's equality function, pushes invalidation through every
// dependent and schedules any reachable effect. Outside a Batch this also
// flushes the work queue before returning; inside one, the flush is
// deferred to the outermost Batch call.
//
// Set on a disposed Signal is a documented no-op: the write is dropped
// and ErrDisposedWrite is reported to the error sink, since a disposed
// signal has no consumers left to notify.
func (s *Signal[T]) Set(v T) {
	if s.n.state.is(stateDisposed) {
		s.ctx.fail(ErrDisposedWrite, nodeID(&s.n))
		return
	}
	if s.ctx.cfg.equal(s.value, v) {
		return
	}
	s.value = v
	s.n.version++
	s.n.state.set(flagValueChanged)

	started := time.Now()
	push(&s.n, func(effectNode *node) {
		s.ctx.enqueue(effectNode)
	})
	if s.ctx.cfg.metrics != nil {
		s.ctx.cfg.metrics.ObservePush(time.Since(started))
	}
	s.ctx.cfg.emitter.Emit(emit.Event{
		ContextID: s.ctx.id,
		Kind:      "push",
		NodeID:    nodeID(&s.n),
	})

	if s.ctx.batchDepth == 0 {
		s.ctx.flush()
	}
}

// Update sets the signal to fn applied to its current value, a shorthand
// for Set(fn(Peek())) that reads without establishing a spurious
// dependency on itself.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Set(fn(s.value))
}

// Dispose detaches every consumer edge from this signal. Once disposed,
// further Set calls are no-ops (see Set) and any derived or effect that
// depended solely on this signal is left with one fewer dependency rather
// than an error.
func (s *Signal[T]) Dispose() {
	if s.n.state.is(stateDisposed) {
		return
	}
	s.n.state.setLifecycle(stateDisposed)
	detachOutgoing(&s.n)
}
