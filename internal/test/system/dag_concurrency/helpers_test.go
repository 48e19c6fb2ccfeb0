package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vk/packgrid/internal/config"
	"github.com/vk/packgrid/internal/testutil"
)

const sleep = 100 * time.Millisecond

const entryConfig = `
entry "main" {
  path = "main.js"
}
`

// records returns the parse records of the named files, failing the test
// when one is missing.
func records(t *testing.T, sleeper *testutil.SleeperModule, names ...string) []*testutil.ExecutionRecord {
	t.Helper()
	out := make([]*testutil.ExecutionRecord, 0, len(names))
	for _, name := range names {
		r := sleeper.Record(name)
		require.NotNil(t, r, "expected %s to be parsed", name)
		out = append(out, r)
	}
	return out
}

func maxConcurrency(n int) *config.Model {
	return &config.Model{MaxConcurrency: &n}
}
