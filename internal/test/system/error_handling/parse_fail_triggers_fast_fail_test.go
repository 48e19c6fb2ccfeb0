package system

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/packgrid/internal/config"
	"github.com/vk/packgrid/internal/module"
	"github.com/vk/packgrid/internal/scheduler"
	"github.com/vk/packgrid/internal/testutil"
)

// Test for: a parse failure cancels the build when fail_fast is set.
func TestErrorHandling_FailingParse_TriggersFailFast(t *testing.T) {
	// --- Arrange ---
	expectedErr := errors.New("parser failed as expected")

	// bad.json fails at once while a.js is still being parsed; b.js is only
	// discovered if a.js finishes.
	files := map[string]string{
		"packgrid.hcl": `
entry "main" {
  path = "main.js"
}
`,
		"main.js": `
import "./bad.json";
import "./a.js";
`,
		"bad.json": `{}`,
		"a.js":     `import "./b.js";`,
		"b.js":     `export const b = 1;`,
	}
	failFast := true
	sleeper := testutil.NewSleeperModule(200 * time.Millisecond)
	failer := &testutil.FailerModule{Err: expectedErr, SourceTypes: []module.SourceType{module.JSON}}

	// --- Act ---
	result := testutil.RunBuildWithContext(context.Background(), t, files,
		&config.Model{FailFast: &failFast},
		testutil.WithCoreParsers(sleeper, failer)...,
	)

	// --- Assert ---
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, expectedErr)
	assert.ErrorIs(t, result.Err, scheduler.ErrParse)

	var buildErr *scheduler.BuildError
	require.ErrorAs(t, result.Err, &buildErr)
	assert.Len(t, buildErr.Failures, 1, "canceled jobs are not reported as failures")
	assert.Zero(t, sleeper.Parses("b.js"), "fail-fast did not work: b.js was discovered after the failure")
	assert.Nil(t, result.Manifest)
}
