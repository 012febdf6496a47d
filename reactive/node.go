package reactive

import "fmt"

// nodeID returns a stable per-process identifier for n, used only to tag
// emitted events and audit records; it carries no meaning to the graph
// algorithms themselves.
func nodeID(n *node) string {
	return fmt.Sprintf("%p", n)
}

// kind tags the three node variants the engine deals in. Traversal code
// dispatches on kind and on the two capability predicates below rather than
// calling per-type virtual methods, matching the tagged-variant strategy
// the core spec prescribes for a systems language.
type kind uint8

const (
	kindSignal kind = iota
	kindDerived
	kindEffect
)

// node is the untyped core embedded by Signal[T], Derived[T] and Effect. It
// carries everything the graph algorithms (track, push, pull, queue) need,
// while the typed value and compute/effect closures live on the wrapper
// that embeds it, reached through the type-erased callbacks below.
//
// A node is a non-owning participant in the graph: edges hold plain
// pointers to it, and disposal explicitly unlinks rather than relying on
// any reference-counting or GC-driven teardown of graph structure.
type node struct {
	ctx   *Context
	kind  kind
	state nodeState

	// version is bumped by a producer (signal or derived) every time its
	// value observably changes.
	version uint64

	// trackingVersion is bumped once per consumer run and stamped onto
	// every edge confirmed during that run (see edge.version).
	trackingVersion uint64

	// Outgoing list: edges where this node is the producer. Only signals
	// and derived nodes populate this; effects never do (hasOutgoing).
	outHead, outTail *edge

	// Incoming list: edges where this node is the consumer. Only derived
	// nodes and effects populate this; signals never do.
	inHead, inTail *edge

	// cursor is the tail-cursor used while this node runs as a consumer:
	// edges from inHead up to and including cursor are confirmed for the
	// current run; anything strictly after cursor is stale and dropped by
	// pruneStale once the run completes.
	cursor *edge

	// nextScheduled links this node into the work queue's intrusive FIFO.
	// Valid only while flagScheduled is set.
	nextScheduled *node

	// pull recomputes a derived node's value. Set only for kindDerived;
	// nil otherwise. It closes over the typed Derived[T] so the untyped
	// node never needs to know T.
	pull func() (changed bool, err error)

	// runEffect executes an effect's body (and any pending cleanup from
	// the previous run) when the work queue flushes this node. Set only
	// for kindEffect.
	runEffect func()
}

// hasOutgoing reports whether n can act as a producer (own an outgoing
// edge list). Signals and derived values do; effects never do.
func (n *node) hasOutgoing() bool {
	return n.kind != kindEffect
}

// isSchedulable reports whether n can be placed in the work queue.
// Only effects are schedulable.
func (n *node) isSchedulable() bool {
	return n.kind == kindEffect
}

// observed reports whether this producer currently has at least one
// consumer (equivalently, its outgoing list is non-empty). Kept in sync
// with flagObserved by the edge bookkeeping in edge.go.
func (n *node) observed() bool {
	return n.state.has(flagObserved)
}

func (n *node) disposed() bool {
	return n.state.is(stateDisposed)
}

func (n *node) running() bool {
	return n.state.is(stateRunning)
}

func (n *node) invalidated() bool {
	return n.state.is(stateInvalidated)
}
