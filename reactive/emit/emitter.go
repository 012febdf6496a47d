package emit

import "context"

// Emitter receives observability events from a Context as it propagates
// writes and flushes effects.
//
// Implementations should be non-blocking and must not panic; a slow or
// failing sink should never be allowed to perturb the single-threaded
// engine loop that calls Emit from.
type Emitter interface {
	// Emit sends a single event to the configured backend. Must not
	// block the caller and must not panic.
	Emit(event Event)

	// EmitBatch sends multiple events in one call, in the order given.
	// Returns an error only for catastrophic, non-retryable failures;
	// per-event delivery failures should be handled internally.
	EmitBatch(ctx context.Context, events []Event) error

	// Flush blocks until every previously buffered event has been
	// delivered or the context is cancelled. Safe to call repeatedly.
	Flush(ctx context.Context) error
}
