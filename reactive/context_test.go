package reactive

import "testing"

// TestIndependentContextsDoNotInteract verifies two Contexts never share
// state: a write in one never schedules an effect bound to the other.
func TestIndependentContextsDoNotInteract(t *testing.T) {
	ctx1 := NewContext()
	ctx2 := NewContext()

	s1 := NewSignal(ctx1, 1)
	s2 := NewSignal(ctx2, 1)

	runs2 := 0
	NewEffect(ctx2, func() func() {
		s2.Get()
		runs2++
		return nil
	})

	s1.Set(99)
	if runs2 != 1 {
		t.Fatalf("runs2 after unrelated context's write = %d, want unchanged 1", runs2)
	}
}

// TestWithEqualityOverridesDefault verifies a custom equality function
// changes what counts as "no change" for both a Signal and a Derived.
func TestWithEqualityOverridesDefault(t *testing.T) {
	alwaysEqual := func(a, b any) bool { return true }
	ctx := NewContext(WithEquality(alwaysEqual))
	s := NewSignal(ctx, 1)
	runs := 0
	NewEffect(ctx, func() func() {
		s.Get()
		runs++
		return nil
	})
	s.Set(2)
	if runs != 1 {
		t.Fatalf("runs = %d, want unchanged 1 (equality always reports no change)", runs)
	}
}

// TestWithMaxDepthStopsRunawayPingPong verifies a pair of effects that
// each write the signal the other reads — a feedback cycle that cannot
// terminate on its own, since by the time either write happens the
// writing effect is no longer RUNNING and so is a legitimate target for
// re-invalidation — is cut off by WithMaxDepth inside one flush instead of
// growing the work queue forever.
func TestWithMaxDepthStopsRunawayPingPong(t *testing.T) {
	var gotErr error
	ctx := NewContext(WithMaxDepth(20), WithErrorSink(func(err error) { gotErr = err }))
	a := NewSignal(ctx, 0)
	b := NewSignal(ctx, 0)

	NewEffect(ctx, func() func() {
		v := a.Get()
		b.Set(v + 1)
		return nil
	})
	NewEffect(ctx, func() func() {
		v := b.Get()
		a.Set(v + 1)
		return nil
	})

	a.Set(1)
	if gotErr != ErrMaxDepthExceeded {
		t.Fatalf("error sink got %v, want ErrMaxDepthExceeded", gotErr)
	}
}

// TestPeekOutsideTrackingIsSafe verifies Peek works even with no active
// consumer, matching a plain field read.
func TestPeekOutsideTrackingIsSafe(t *testing.T) {
	ctx := NewContext()
	s := NewSignal(ctx, 42)
	if got := Peek(s); got != 42 {
		t.Fatalf("Peek() = %d, want 42", got)
	}
}
