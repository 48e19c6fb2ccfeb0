// Package scheduler discovers the module graph by fanning out one concurrent
// job per dependency edge.
//
// # How It Works
//
// Every job resolves its dependency to a canonical URI and reports the edge
// right away. It then claims the URI in a shared visited set; only the job
// that wins the claim loads, parses and spawns jobs for the module's own
// dependencies. Jobs never touch the module graph. They send messages to a
// single driver loop, which owns the graph and applies every message to it.
//
// # Termination
//
// An atomic counter tracks jobs in flight. It is incremented before a job's
// goroutine starts and decremented by the driver when that job's terminal
// message arrives. A job spawns its children before sending its own terminal
// message, so the counter cannot reach zero while work remains. The driver
// returns once it does.
//
// # Failures
//
// Resolution, load, parse and unsupported-type failures are collected into a
// single *BuildError sorted by dependency. Losing the visited-set claim is
// reported as ErrDuplicateModule, which is bookkeeping only and never
// surfaces. With FailFast the first real failure cancels every other job.
package scheduler
