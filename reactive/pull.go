package reactive

// pull brings a derived node up to date on read: if it is already CLEAN it
// is returned as-is; otherwise its dependencies are revalidated
// producer-first (a stale dependency is itself pulled before being
// compared) and, only if that reveals an actual change, the node's own
// compute closure runs.
//
// A derived with no incoming edges only reaches pull while INVALIDATED —
// either it has never run, or detachAll marked it stale after it lost its
// last observer — so an empty incoming list is treated as "definitely
// needs recompute" rather than as a shortcut to CLEAN.
//
// A producer still RUNNING means this call arrived by following a chain
// of reads back to a node that is already on the stack: pull panics with
// ErrCycle rather than returning it, the same way a stack overflow would
// unwind past whatever called in — there is no sensible partial value to
// hand back. runEffectSafely recovers this during a queued flush; the
// first, synchronous run of a newly constructed Effect does not, so a
// cycle discovered on construction surfaces directly to the caller.
func pull(n *node) error {
	switch n.state.lifecycle() {
	case stateClean:
		return nil
	case stateRunning:
		panic(ErrCycle)
	case stateDisposed:
		return nil
	}

	dirty := n.inHead == nil
	for e := n.inHead; e != nil && !dirty; e = e.nextIn {
		producer := e.producer

		if producer.kind == kindDerived {
			if err := pull(producer); err != nil {
				return err
			}
		}

		if producer.version != e.seenVersion {
			dirty = true
		}
	}

	if !dirty {
		n.state.setLifecycle(stateClean)
		return nil
	}

	changed, err := n.pull()
	if err != nil {
		n.state.setLifecycle(stateInvalidated)
		return err
	}

	n.state.setLifecycle(stateClean)
	if changed {
		n.state.set(flagValueChanged)
		n.version++
	} else {
		n.state.clear(flagValueChanged)
	}
	return nil
}

// runConsumer installs n as the active tracking consumer for the duration
// of fn, bumping its trackingVersion so track can distinguish this run's
// confirmations from the last, and pruning whatever dependencies fn did
// not re-access once it returns. Used by both Derived's recompute closure
// and Effect's run closure so dependency tracking behaves identically for
// both consumer kinds.
func runConsumer(n *node, fn func() error) error {
	ctx := n.ctx
	prevActive := ctx.active
	prevState := n.state.lifecycle()

	n.state.setLifecycle(stateRunning)
	n.trackingVersion++
	n.cursor = nil
	ctx.active = n

	defer func() {
		ctx.active = prevActive
		pruneStale(n)
		if n.state.lifecycle() == stateRunning {
			n.state.setLifecycle(prevState)
		}
	}()

	return fn()
}
