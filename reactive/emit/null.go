package emit

import "context"

// NullEmitter discards every event. It is the default attached to a
// Context that does not call WithEmitter.
type NullEmitter struct{}

// NewNullEmitter returns an Emitter that discards everything it receives.
func NewNullEmitter() *NullEmitter {
	return &NullEmitter{}
}

func (NullEmitter) Emit(Event) {}

func (NullEmitter) EmitBatch(context.Context, []Event) error { return nil }

func (NullEmitter) Flush(context.Context) error { return nil }
