package reactive

import (
	stdcontext "context"
	"time"

	"github.com/google/uuid"

	"github.com/signalgraph/reactive/reactive/audit"
	"github.com/signalgraph/reactive/reactive/emit"
)

// Context is a single, independent reactive arena: it owns the active
// tracking consumer, the work queue, and the configuration every Signal,
// Derived, and Effect created against it shares. Handles are bound to
// exactly one Context at creation; passing a handle created against one
// Context into an operation on another is a programming error the
// package does not attempt to detect cheaply, matching the non-owning
// handle discipline the rest of the graph follows.
//
// A Context, and every handle bound to it, must only be used from one
// goroutine at a time. Nothing here is safe for concurrent access.
type Context struct {
	id string

	active     *node // the node currently tracking dependencies, nil outside a run
	batchDepth int
	queue      workQueue
	freeList   freeEdges
	cfg        contextConfig
}

// NewContext creates an independent reactive arena. Options configure
// equality, error handling, observability and safety limits; see Option.
func NewContext(opts ...Option) *Context {
	cfg := contextConfig{
		equal:   defaultEqual,
		emitter: emit.NewNullEmitter(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Context{
		id:  uuid.NewString(),
		cfg: cfg,
	}
}

// ID returns the Context's unique identifier, used to tag emitted events
// and audit records so activity from multiple Contexts can be told apart.
func (ctx *Context) ID() string {
	return ctx.id
}

// defaultEqual is the change-detection comparison used when no
// WithEquality option is supplied: identity via boxed == for values whose
// dynamic type supports it, "always changed" for anything that doesn't
// (slices, maps, funcs).
func defaultEqual(a, b any) bool {
	return boxedEqual(a, b)
}

// boxedEqual compares two boxed values with ==, treating any pair whose
// dynamic type does not support == (slices, maps, funcs) as always
// different rather than panicking.
func boxedEqual(a, b any) (eq bool) {
	defer func() {
		if recover() != nil {
			eq = false
		}
	}()
	return a == b
}

// fail routes an isolated error to the configured sink, metrics, emitter
// and audit store, if any are attached. nodeID may be empty for errors not
// tied to one node; a broken audit write is reported under the node whose
// run was being recorded.
func (ctx *Context) fail(err error, nodeID string) {
	if ctx.cfg.metrics != nil {
		if err == ErrCycle {
			ctx.cfg.metrics.CycleErrors.Inc()
		} else {
			ctx.cfg.metrics.EffectErrors.Inc()
		}
	}
	ctx.cfg.emitter.Emit(emit.Event{
		ContextID: ctx.id,
		Kind:      "effect_error",
		NodeID:    nodeID,
		Meta:      map[string]interface{}{"error": err.Error()},
	})
	if ctx.cfg.audit != nil {
		_ = ctx.cfg.audit.RecordError(stdcontext.Background(), audit.ErrorEntry{
			ContextID: ctx.id,
			NodeID:    nodeID,
			At:        time.Now(),
			Err:       err.Error(),
		})
	}
	if ctx.cfg.errorSink != nil {
		ctx.cfg.errorSink(err)
	}
}

// recordRun writes an audit entry for a completed effect run, if a Store
// is attached. Failures to record are themselves routed to fail rather
// than propagated, since a broken audit sink should never stop the
// engine.
func (ctx *Context) recordRun(nodeID string, started time.Time, changed bool) {
	if ctx.cfg.audit == nil {
		return
	}
	err := ctx.cfg.audit.RecordRun(stdcontext.Background(), audit.Run{
		ContextID: ctx.id,
		NodeID:    nodeID,
		StartedAt: started,
		Duration:  time.Since(started),
		Changed:   changed,
	})
	if err != nil {
		ctx.fail(err, nodeID)
	}
}

// Batch defers every effect scheduled while fn runs until fn returns,
// coalescing several writes into a single flush instead of running
// affected effects once per write. Batches may nest; only the outermost
// call triggers a flush.
func (ctx *Context) Batch(fn func()) {
	ctx.batchDepth++
	defer func() {
		ctx.batchDepth--
		if ctx.batchDepth == 0 {
			ctx.flush()
		}
	}()
	fn()
}

// Untrack runs fn without registering any signal or derived it reads as a
// dependency of the currently running consumer. Returns fn's result so it
// composes naturally with a Get call made only for its side effect on
// flow control.
func Untrack[T any](ctx *Context, fn func() T) T {
	prev := ctx.active
	ctx.active = nil
	defer func() { ctx.active = prev }()
	return fn()
}

// Peek reads s's current value without establishing a dependency,
// regardless of whether a consumer is currently tracking. Unlike Untrack
// it does not suspend tracking for anything else fn might do, because
// there is no fn: it is a single read.
func Peek[T any](s *Signal[T]) T {
	return s.value
}
