// Package modulegraph holds the module dependency graph discovered during a
// build.
//
// # Purpose
//
// The graph stores every discovered module by canonical URI and records which
// URI each dependency edge resolved to. It is the shared input of execution
// ordering, chunk splitting and manifest rendering.
//
// # Concurrency Model
//
// Reads are safe from any goroutine. Writes are expected from a single owner,
// the scheduler's driver loop, which applies messages sent by resolution jobs.
// An RWMutex guards both maps so the two indexes never diverge.
//
// # Edges
//
// A dependency edge may be recorded before its target module exists, and a
// target may never exist at all (external or failed resolutions). Traversal
// helpers skip edges whose target is missing.
package modulegraph
