// Package engine is the top-level orchestrator for preview and
// full-quality rendering.
//
// It computes a deterministic fingerprint for each request, memoizes
// rendered bytes in a bounded in-memory cache, dispatches the Both
// variant's preview and full-quality renders concurrently, and keeps
// aggregate hit/miss statistics.
//
// # Concurrency
//
// The cache and statistics are shared mutable state guarded by mutexes
// with short critical sections; no rendering work ever happens under a
// lock. The Both variant is the only designed parallelism: its two
// renders run as independent goroutines and the call returns once both
// complete, surfacing the first failure if either fails. There is no
// cancellation of the in-flight sibling and no timeout at this layer.
//
// # Ownership
//
// Engines are explicitly constructed with New and injected wherever
// they are needed; there is no package-level shared instance.
package engine
