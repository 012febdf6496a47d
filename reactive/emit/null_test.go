package emit

import "testing"

func TestNullEmitterDiscardsEverything(t *testing.T) {
	e := NewNullEmitter()
	e.Emit(Event{Kind: "push"})
	if err := e.EmitBatch(nil, []Event{{Kind: "pull"}, {Kind: "flush_start"}}); err != nil {
		t.Fatalf("EmitBatch returned %v, want nil", err)
	}
	if err := e.Flush(nil); err != nil {
		t.Fatalf("Flush returned %v, want nil", err)
	}
}
