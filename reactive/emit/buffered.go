package emit

import (
	"context"
	"sync"
)

// BufferedEmitter stores every event it receives in memory, keyed by
// ContextID, for use in tests that assert on what a run emitted.
type BufferedEmitter struct {
	mu     sync.RWMutex
	events map[string][]Event
}

// NewBufferedEmitter returns an Emitter that records events in memory.
func NewBufferedEmitter() *BufferedEmitter {
	return &BufferedEmitter{events: make(map[string][]Event)}
}

func (b *BufferedEmitter) Emit(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events[e.ContextID] = append(b.events[e.ContextID], e)
}

func (b *BufferedEmitter) EmitBatch(_ context.Context, events []Event) error {
	for _, e := range events {
		b.Emit(e)
	}
	return nil
}

func (b *BufferedEmitter) Flush(context.Context) error { return nil }

// History returns a copy of every event recorded for contextID.
func (b *BufferedEmitter) History(contextID string) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()
	src := b.events[contextID]
	out := make([]Event, len(src))
	copy(out, src)
	return out
}

// Clear discards recorded events for contextID, or all events if
// contextID is empty.
func (b *BufferedEmitter) Clear(contextID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if contextID == "" {
		b.events = make(map[string][]Event)
		return
	}
	delete(b.events, contextID)
}
