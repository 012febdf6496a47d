package reactive

// push performs the invalidation traversal from a producer that has just
// changed: an iterative, explicit-stack depth-first walk over outgoing
// edges that marks every reachable, eligible consumer INVALIDATED exactly
// once and hands any reachable effect to visit so the caller can enqueue
// it. It never recurses, so chains of arbitrary length (the spec requires
// at least 10,000) cannot overflow the call stack.
//
// A node is skipped (its subtree is not re-descended) once it already
// carries INVALIDATED, or is RUNNING or DISPOSED — this is what keeps a
// diamond-shaped graph glitch-free: the shared descendant is marked on
// first arrival and left alone on every subsequent path.
func push(producer *node, visit func(effectNode *node)) {
	if producer.outHead == nil {
		return
	}

	// Each stack slot holds the next outgoing edge to process for one
	// frame of the walk; the frame at the bottom of the stack is the
	// producer's own outgoing list, frames above it belong to producers
	// reached while descending.
	stack := []*edge{producer.outHead}

	for len(stack) > 0 {
		top := len(stack) - 1
		e := stack[top]
		if e == nil {
			stack = stack[:top]
			continue
		}

		target := e.consumer
		stack[top] = e.nextOut // advance this frame before possibly descending

		if target.state.is(stateDisposed) || target.state.is(stateRunning) || target.state.is(stateInvalidated) {
			continue
		}
		target.state.setLifecycle(stateInvalidated)

		if target.hasOutgoing() && target.outHead != nil {
			stack = append(stack, target.outHead)
		} else if target.isSchedulable() {
			visit(target)
		}
	}
}
