// Package emit provides pluggable observability for a reactive Context.
// Emitters are a diagnostic tap: nothing in the engine's scheduling or
// propagation logic branches on whether one is attached.
package emit

// Event is a single observability event describing one step of graph
// activity: a write reaching a node during push, a node revalidating
// during pull, or the work queue running an effect.
type Event struct {
	// ContextID identifies the Context that produced this event, useful
	// once an application runs more than one.
	ContextID string

	// Kind is a short tag for the event. A reactive Context emits "push",
	// "pull", "effect_run" and "effect_error" (the last also for cycles
	// and other errors it isolates).
	Kind string

	// NodeID identifies the signal, derived, or effect involved. Empty
	// for context-wide events.
	NodeID string

	// Meta carries event-specific structured data, e.g. "duration_ms",
	// "error", "changed".
	Meta map[string]interface{}
}
