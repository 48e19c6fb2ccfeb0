package system

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/packgrid/internal/testutil"
)

// Test for: sibling imports are parsed in parallel.
func TestDagConcurrency_FanOutExecutionTest(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"packgrid.hcl": entryConfig,
		"main.js": `
import "./b.js";
import "./c.js";
import "./d.js";
`,
		"b.js": `export const b = 1;`,
		"c.js": `export const c = 1;`,
		"d.js": `export const d = 1;`,
	}
	sleeper := testutil.NewSleeperModule(sleep)

	// --- Act ---
	result := testutil.RunBuildWithContext(context.Background(), t, files, nil, testutil.WithCoreParsers(sleeper)...)

	// --- Assert ---
	require.NoError(t, result.Err)
	rs := records(t, sleeper, "b.js", "c.js", "d.js")
	if !rs[0].Overlaps(rs[1]) {
		t.Errorf("b.js and c.js were not parsed in parallel")
	}
	if !rs[1].Overlaps(rs[2]) {
		t.Errorf("c.js and d.js were not parsed in parallel")
	}
}

// Test for: max_concurrency serializes jobs.
func TestDagConcurrency_MaxConcurrencyOne(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"packgrid.hcl": entryConfig,
		"main.js": `
import "./b.js";
import "./c.js";
`,
		"b.js": `export const b = 1;`,
		"c.js": `export const c = 1;`,
	}
	sleeper := testutil.NewSleeperModule(sleep)

	// --- Act ---
	result := testutil.RunBuildWithContext(context.Background(), t, files, maxConcurrency(1), testutil.WithCoreParsers(sleeper)...)

	// --- Assert ---
	require.NoError(t, result.Err)
	rs := records(t, sleeper, "b.js", "c.js")
	if rs[0].Overlaps(rs[1]) {
		t.Errorf("b.js and c.js were parsed in parallel despite max_concurrency = 1")
	}
}
