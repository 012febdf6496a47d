package reactive

import "testing"

// TestSignalGetSet verifies a basic read-after-write round trip.
func TestSignalGetSet(t *testing.T) {
	ctx := NewContext()
	s := NewSignal(ctx, 1)

	if got := s.Get(); got != 1 {
		t.Fatalf("Get() = %d, want 1", got)
	}
	s.Set(2)
	if got := s.Get(); got != 2 {
		t.Fatalf("Get() = %d, want 2", got)
	}
}

// TestSignalSetSameValueIsNoOp verifies that setting an equal value does
// not bump the signal's version or run dependent effects.
func TestSignalSetSameValueIsNoOp(t *testing.T) {
	ctx := NewContext()
	s := NewSignal(ctx, "a")
	runs := 0
	NewEffect(ctx, func() func() {
		s.Get()
		runs++
		return nil
	})
	if runs != 1 {
		t.Fatalf("runs after construction = %d, want 1", runs)
	}
	s.Set("a")
	if runs != 1 {
		t.Fatalf("runs after setting equal value = %d, want 1", runs)
	}
}

// TestSignalPeekDoesNotTrack verifies Peek inside a derived's compute does
// not register a dependency.
func TestSignalPeekDoesNotTrack(t *testing.T) {
	ctx := NewContext()
	s := NewSignal(ctx, 10)
	computed := 0
	d := NewDerived(ctx, func() int {
		computed++
		return Peek(s)
	})
	if got := d.Get(); got != 10 {
		t.Fatalf("Get() = %d, want 10", got)
	}
	s.Set(20)
	if got := d.Get(); got != 10 {
		t.Fatalf("Get() after unrelated write = %d, want 10 (no dependency)", got)
	}
	if computed != 1 {
		t.Fatalf("compute ran %d times, want 1", computed)
	}
}

// TestSignalDisposeIsNoOpWrite verifies a write to a disposed signal is
// dropped and reported to the error sink rather than panicking.
func TestSignalDisposeIsNoOpWrite(t *testing.T) {
	var gotErr error
	ctx := NewContext(WithErrorSink(func(err error) { gotErr = err }))
	s := NewSignal(ctx, 1)
	s.Dispose()
	s.Set(99)
	if got := s.Peek(); got != 1 {
		t.Fatalf("Peek() after disposed write = %d, want unchanged 1", got)
	}
	if gotErr != ErrDisposedWrite {
		t.Fatalf("error sink got %v, want ErrDisposedWrite", gotErr)
	}
}

// TestSignalUpdate verifies Update applies fn to the current value.
func TestSignalUpdate(t *testing.T) {
	ctx := NewContext()
	s := NewSignal(ctx, 5)
	s.Update(func(v int) int { return v * 2 })
	if got := s.Get(); got != 10 {
		t.Fatalf("Get() = %d, want 10", got)
	}
}
