// Package reactive implements a fine-grained, push-pull reactive signal
// engine: a dynamic bipartite dependency graph between producers (signals,
// derived values) and consumers (derived values, effects) with glitch-free,
// minimally-recomputed propagation of changes.
//
// A write to a Signal pushes invalidation eagerly through the graph and
// schedules any reachable effects; a read from an invalidated Derived pulls
// just enough of its dependency chain to answer the read, short-circuiting
// on value equality. Everything in this package assumes single-threaded,
// cooperative use by one Context at a time — see Context for the concurrency
// contract.
package reactive
