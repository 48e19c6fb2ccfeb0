package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/packgrid/internal/testutil"
)

// Test for: HCL reads the environment through the env object, and a relative
// root is anchored at the config file.
func TestHCLFeatures_EnvInterpolation(t *testing.T) {
	// --- Arrange ---
	t.Setenv("PACKGRID_SYSTEM_ROOT", "app")
	t.Setenv("PACKGRID_SYSTEM_ENTRY_DIR", "src")
	files := map[string]string{
		"config/packgrid.hcl": `
root = "../${env.PACKGRID_SYSTEM_ROOT}"

entry "main" {
  path = "${env.PACKGRID_SYSTEM_ENTRY_DIR}/main.js"
}
`,
		"app/src/main.js": `import "./util.js";`,
		"app/src/util.js": `export const util = 1;`,
	}

	// --- Act ---
	result := testutil.RunBuild(t, files)

	// --- Assert ---
	testutil.AssertChunk(t, result, "src_main_js", "./src/main.js", "./src/util.js")
	assert.Contains(t, result.App.Model().Root, "app")
}
