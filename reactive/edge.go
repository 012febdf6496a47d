package reactive

// edge is a dependency from a producer to a consumer, intrusively linked
// into both endpoints' lists: prevIn/nextIn thread it through the
// consumer's incoming list, prevOut/nextOut thread it through the
// producer's outgoing list. An edge belongs to exactly one consumer and
// one producer at a time; its lifetime is bounded by the shorter of the
// two (see unlink).
type edge struct {
	producer *node
	consumer *node

	// version is the consumer's trackingVersion at the moment this edge
	// was last (re)confirmed by track. An edge whose version lags the
	// consumer's current trackingVersion after a run is stale.
	version uint64

	// seenVersion is the producer's own version counter as of the last
	// time this edge was confirmed. The pull phase compares it against
	// the producer's current version to decide, per dependency, whether
	// that specific producer has changed since this consumer last
	// incorporated it — this is what lets a derived with several
	// dependencies short-circuit correctly even though VALUE_CHANGED
	// itself is a single flag shared by every subscriber of a producer.
	seenVersion uint64

	prevIn, nextIn   *edge
	prevOut, nextOut *edge
}

// freeEdges is a small free-list of unlinked edge records a Context
// recycles instead of discarding, following the teacher's pattern of
// reusing pooled work-item records under an interface rather than
// allocating fresh ones on every dependency. Recycling never changes the
// externally observable edge set produced by pruneStale.
type freeEdges struct {
	head *edge // reuses nextIn as the free-list link
}

func (f *freeEdges) push(e *edge) {
	*e = edge{nextIn: f.head}
	f.head = e
}

func (f *freeEdges) pop() *edge {
	if f.head == nil {
		return &edge{}
	}
	e := f.head
	f.head = e.nextIn
	e.nextIn = nil
	return e
}

// appendOutgoing splices e onto the tail of producer's outgoing list and
// marks producer observed. Producer order carries no semantic weight, so
// edges are always appended at the absolute tail.
func appendOutgoing(producer *node, e *edge) {
	e.producer = producer
	e.prevOut = producer.outTail
	e.nextOut = nil
	if producer.outTail != nil {
		producer.outTail.nextOut = e
	} else {
		producer.outHead = e
	}
	producer.outTail = e
	producer.state.set(flagObserved)
}

// spliceIncoming splices e into consumer's incoming list immediately after
// consumer.cursor (or at the head if the cursor is nil), without
// disturbing edges beyond the insertion point. Those edges — left over
// from a previous run that did not re-access their producer this run —
// remain in the list as stale entries until pruneStale removes them. It
// becomes the new cursor, since it is confirmed for the current run.
func spliceIncoming(consumer *node, e *edge) {
	e.consumer = consumer
	after := consumer.cursor
	var before *edge
	if after == nil {
		before = consumer.inHead
	} else {
		before = after.nextIn
	}

	e.prevIn = after
	e.nextIn = before
	if after != nil {
		after.nextIn = e
	} else {
		consumer.inHead = e
	}
	if before != nil {
		before.prevIn = e
	} else {
		consumer.inTail = e
	}
	consumer.cursor = e
}

// track ensures an edge exists between producer and consumer for the
// current run, deduplicating repeat accesses within the same run via the
// three fast paths described by the dependency-tracking design, falling
// back to splicing a (possibly recycled) edge into both tail positions.
//
// A disposed producer never gains an edge: it must hold no edges after
// disposal, and a read of it does not track, so this is a no-op rather
// than an error.
func (ctx *Context) track(producer, consumer *node) {
	if producer.disposed() {
		return
	}

	tv := consumer.trackingVersion

	// Fast path 1: the tail of the consumer's incoming list already
	// points at this producer — just re-stamp it.
	if cur := consumer.cursor; cur != nil && cur.producer == producer {
		cur.version = tv
		cur.seenVersion = producer.version
		return
	}

	// Fast path 2: the edge immediately after the cursor already points
	// at this producer — advance the cursor onto it.
	var next *edge
	if consumer.cursor == nil {
		next = consumer.inHead
	} else {
		next = consumer.cursor.nextIn
	}
	if next != nil && next.producer == producer {
		next.version = tv
		next.seenVersion = producer.version
		consumer.cursor = next
		return
	}

	// Fast path 3: the producer's outgoing tail already points at this
	// consumer and has been confirmed this run; nothing to do.
	if ot := producer.outTail; ot != nil && ot.consumer == consumer && ot.version == tv {
		return
	}

	// Deduplicate: a node may not appear twice as a neighbor of the same
	// node at the same time. Scan the remainder of the consumer's
	// incoming list for an existing (possibly out-of-order) edge to this
	// producer before allocating a new one.
	for e := consumer.inHead; e != nil; e = e.nextIn {
		if e.producer == producer {
			e.version = tv
			e.seenVersion = producer.version
			// Relink it to sit right after the cursor so it is treated
			// as confirmed-in-order for this run.
			unlinkIncoming(e)
			spliceIncoming(consumer, e)
			return
		}
	}

	e := ctx.freeList.pop()
	spliceIncoming(consumer, e)
	appendOutgoing(producer, e)
	e.version = tv
	e.seenVersion = producer.version
}

// unlinkIncoming removes e from its consumer's incoming list only,
// patching the cursor if it pointed at e.
func unlinkIncoming(e *edge) {
	c := e.consumer
	if e.prevIn != nil {
		e.prevIn.nextIn = e.nextIn
	} else {
		c.inHead = e.nextIn
	}
	if e.nextIn != nil {
		e.nextIn.prevIn = e.prevIn
	} else {
		c.inTail = e.prevIn
	}
	if c.cursor == e {
		c.cursor = e.prevIn
	}
	e.prevIn, e.nextIn = nil, nil
}

// unlinkOutgoing removes e from its producer's outgoing list only. When
// the list becomes empty it clears OBSERVED and, for a derived producer
// that is not already DISPOSED, detaches its own incoming edges and marks
// it stale so it recomputes fresh the next time it is observed again. A
// DISPOSED producer's lifecycle is left untouched: it must never be moved
// back to INVALIDATED, or a later Get would run its compute again.
func unlinkOutgoing(e *edge) {
	p := e.producer
	if e.prevOut != nil {
		e.prevOut.nextOut = e.nextOut
	} else {
		p.outHead = e.nextOut
	}
	if e.nextOut != nil {
		e.nextOut.prevOut = e.prevOut
	} else {
		p.outTail = e.prevOut
	}
	e.prevOut, e.nextOut = nil, nil

	if p.outHead == nil {
		p.state.clear(flagObserved)
		if p.kind == kindDerived && !p.disposed() {
			detachAll(p)
			p.state.setLifecycle(stateInvalidated)
		}
	}
}

// unlink removes e in O(1) from both the incoming and outgoing lists it
// participates in and returns the edge that followed it in the consumer's
// incoming list, to support safe iteration while unlinking.
func (ctx *Context) unlink(e *edge) *edge {
	next := e.nextIn
	unlinkIncoming(e)
	unlinkOutgoing(e)
	ctx.freeList.push(e)
	return next
}

// detachAll walks consumer's incoming list unlinking every edge. Used on
// disposal and when a derived transitions to unobserved.
func detachAll(consumer *node) {
	ctx := consumer.ctx
	for e := consumer.inHead; e != nil; {
		e = ctx.unlink(e)
	}
	consumer.cursor = nil
}

// detachOutgoing walks producer's outgoing list unlinking every edge. Used
// on disposal of a Signal or Derived, whose consumers must stop seeing it
// as a dependency. unlink's return value is the consumer-side nextIn
// pointer, not useful for this traversal, so this advances via nextOut
// captured before each edge is unlinked.
func detachOutgoing(producer *node) {
	ctx := producer.ctx
	for e := producer.outHead; e != nil; {
		next := e.nextOut
		ctx.unlink(e)
		e = next
	}
}

// pruneStale drops every edge past consumer's tail cursor: dependencies
// that existed before this run but were not re-accessed during it. Called
// once a consumer's run completes.
func pruneStale(consumer *node) {
	ctx := consumer.ctx
	var start *edge
	if consumer.cursor == nil {
		start = consumer.inHead
	} else {
		start = consumer.cursor.nextIn
	}
	for e := start; e != nil; {
		e = ctx.unlink(e)
	}
}
