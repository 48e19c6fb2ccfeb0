package testutil

import "time"

// ExecutionRecord holds the start and end times of a single parse.
type ExecutionRecord struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two records ran at the same time.
func (r *ExecutionRecord) Overlaps(other *ExecutionRecord) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}
