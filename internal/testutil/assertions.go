package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertChunk checks that a chunk with the given id was emitted holding
// exactly the given module ids, in execution order.
func AssertChunk(t *testing.T, result *HarnessResult, chunkID string, moduleIDs ...string) {
	t.Helper()

	require.NoError(t, result.Err)
	require.NotNil(t, result.Manifest)
	out, ok := result.Manifest.Outputs[chunkID]
	require.True(t, ok, "expected chunk '%s' in manifest outputs", chunkID)
	require.Equal(t, moduleIDs, out.Modules, "unexpected modules in chunk '%s'", chunkID)
}
