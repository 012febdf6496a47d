package emit

import "testing"

func TestBufferedEmitterRecordsPerContext(t *testing.T) {
	b := NewBufferedEmitter()
	b.Emit(Event{ContextID: "a", Kind: "push"})
	b.Emit(Event{ContextID: "b", Kind: "pull"})
	b.Emit(Event{ContextID: "a", Kind: "flush_start"})

	histA := b.History("a")
	if len(histA) != 2 {
		t.Fatalf("len(History(a)) = %d, want 2", len(histA))
	}
	if histA[0].Kind != "push" || histA[1].Kind != "flush_start" {
		t.Fatalf("History(a) = %+v, want [push flush_start] in order", histA)
	}

	histB := b.History("b")
	if len(histB) != 1 || histB[0].Kind != "pull" {
		t.Fatalf("History(b) = %+v, want [pull]", histB)
	}
}

func TestBufferedEmitterHistoryIsACopy(t *testing.T) {
	b := NewBufferedEmitter()
	b.Emit(Event{ContextID: "a", Kind: "push"})
	hist := b.History("a")
	hist[0].Kind = "mutated"
	if got := b.History("a")[0].Kind; got != "push" {
		t.Fatalf("internal state leaked through returned slice: got %q, want push", got)
	}
}

func TestBufferedEmitterClearOneContext(t *testing.T) {
	b := NewBufferedEmitter()
	b.Emit(Event{ContextID: "a", Kind: "push"})
	b.Emit(Event{ContextID: "b", Kind: "pull"})
	b.Clear("a")
	if len(b.History("a")) != 0 {
		t.Fatal("History(a) not empty after Clear(a)")
	}
	if len(b.History("b")) != 1 {
		t.Fatal("Clear(a) should not affect context b")
	}
}

func TestBufferedEmitterClearAll(t *testing.T) {
	b := NewBufferedEmitter()
	b.Emit(Event{ContextID: "a", Kind: "push"})
	b.Emit(Event{ContextID: "b", Kind: "pull"})
	b.Clear("")
	if len(b.History("a")) != 0 || len(b.History("b")) != 0 {
		t.Fatal("Clear(\"\") should discard every context's history")
	}
}

func TestBufferedEmitterEmitBatch(t *testing.T) {
	b := NewBufferedEmitter()
	err := b.EmitBatch(nil, []Event{{ContextID: "a", Kind: "push"}, {ContextID: "a", Kind: "pull"}})
	if err != nil {
		t.Fatalf("EmitBatch returned %v, want nil", err)
	}
	if len(b.History("a")) != 2 {
		t.Fatalf("len(History(a)) = %d, want 2", len(b.History("a")))
	}
}
