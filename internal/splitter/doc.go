// Package splitter partitions a closed module graph into chunks.
//
// # How It Works
//
// Every entry gets a chunk anchored at its module. A breadth-first walk over
// static edges from each anchor marks the visited modules as candidates of
// that chunk. Another chunk's anchor is a boundary: the walk neither marks it
// nor continues through it.
//
// Static edges that land on an anchor also relate chunks: when a module that
// is a candidate of chunk c imports the anchor of chunk e, c reaches e. These
// relations form a directed graph between chunks.
//
// A module is then placed in each of its candidates, except those that reach
// another candidate which does not reach back. Such a chunk already loads the
// module through the chunk it reaches. Candidates that reach each other
// collapse into the one with the smallest id. Chunks that end up empty are
// removed.
//
// Dynamic imports never take part. All iteration runs over sorted URIs and
// chunk ids, so the result does not depend on map order.
package splitter
