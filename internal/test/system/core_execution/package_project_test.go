package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/packgrid/internal/manifest"
	"github.com/vk/packgrid/internal/testutil"
)

func findImport(t *testing.T, in manifest.Input, original string) manifest.Import {
	t.Helper()
	for _, imp := range in.Imports {
		if imp.Original == original {
			return imp
		}
	}
	t.Fatalf("import %q not found", original)
	return manifest.Import{}
}

// Test for: a project mixing packages, stylesheets, JSON, builtins and
// dynamic imports builds into one entry chunk.
func TestCoreExecution_PackageProject(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"packgrid.yaml": `
entries:
  - name: main
    path: src/main.js
`,
		"src/main.js": `
import lib from "lib";
import "./style.css";
import data from "./data.json";
const fs = require("fs");
const lazy = import("./lazy.js");
`,
		"src/style.css":                 `@import "./reset.css";`,
		"src/reset.css":                 `* { margin: 0; }`,
		"src/data.json":                 `{"answer": 42}`,
		"src/lazy.js":                   `export default 1;`,
		"node_modules/lib/package.json": `{"name": "lib", "main": "lib.js"}`,
		"node_modules/lib/lib.js":       `export default 1;`,
	}

	// --- Act ---
	result := testutil.RunBuild(t, files)

	// --- Assert ---
	require.NoError(t, result.Err)
	out, ok := result.Manifest.Outputs["src_main_js"]
	require.True(t, ok)
	assert.Equal(t, "entry", out.Kind)
	assert.Equal(t, "./src/main.js", out.EntryModule)
	assert.Equal(t, "./src/main.js", out.Modules[0])
	assert.ElementsMatch(t, []string{
		"./src/main.js",
		"./node_modules/lib/lib.js",
		"./src/style.css",
		"./src/reset.css",
		"./src/data.json",
	}, out.Modules)

	main := result.Manifest.Inputs["./src/main.js"]
	assert.Equal(t, "js", main.SourceType)
	assert.Equal(t, 0, main.ExecOrder)
	assert.Equal(t, manifest.Import{Path: "fs", Kind: "require", Original: "fs", External: true}, findImport(t, main, "fs"))
	assert.Equal(t, "./node_modules/lib/lib.js", findImport(t, main, "lib").Path)
	assert.Equal(t, "dynamic-import", findImport(t, main, "./lazy.js").Kind)

	// Dynamic imports are discovered but not numbered or placed.
	lazy, ok := result.Manifest.Inputs["./src/lazy.js"]
	require.True(t, ok)
	assert.Equal(t, -1, lazy.ExecOrder)
	assert.NotContains(t, out.Modules, "./src/lazy.js")
}
