package manifest

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/packgrid/internal/compiler"
	"github.com/vk/packgrid/internal/fsutil"
	"github.com/vk/packgrid/internal/registry"
	"github.com/vk/packgrid/internal/splitter"
	"github.com/vk/packgrid/modules/js"
)

func compile(t *testing.T) *compiler.Compilation {
	t.Helper()
	files := fsutil.MapFS{
		"/proj/src/main.js":  `import "./util"; const fs = require("fs");`,
		"/proj/src/admin.js": `import "./main.js"; import "./util";`,
		"/proj/src/util.js":  `export const util = 1;`,
	}
	c, err := compiler.New(compiler.Options{
		Root: "/proj",
		Entries: []compiler.Entry{
			{Name: "main", Path: "src/main.js"},
			{Name: "admin", Path: "src/admin.js"},
		},
		Optimization: compiler.DefaultOptimization(),
	}, files, registry.NewWithModules(&js.Module{}))
	require.NoError(t, err)

	comp, err := c.Compile(context.Background())
	require.NoError(t, err)
	return comp
}

func TestBuild(t *testing.T) {
	m := Build(compile(t))

	require.Len(t, m.Inputs, 3)
	main := m.Inputs["./src/main.js"]
	assert.Equal(t, "/proj/src/main.js", main.URI)
	assert.Equal(t, "js", main.SourceType)
	assert.Equal(t, len(`import "./util"; const fs = require("fs");`), main.Bytes)
	assert.Equal(t, []Import{
		{Path: "./src/util.js", Kind: "import", Original: "./util"},
		{Path: "fs", Kind: "require", Original: "fs", External: true},
	}, main.Imports)

	require.Len(t, m.Outputs, 2)
	assert.Equal(t, Output{
		Kind:        "entry",
		EntryPoint:  "main",
		EntryModule: "./src/main.js",
		Modules:     []string{"./src/main.js", "./src/util.js"},
		Bytes:       main.Bytes + m.Inputs["./src/util.js"].Bytes,
	}, m.Outputs["src_main_js"])
	assert.Equal(t, []string{"./src/admin.js"}, m.Outputs["src_admin_js"].Modules)
}

func TestBuild_NumericIDsKeepLazyModulesApart(t *testing.T) {
	files := fsutil.MapFS{
		"/proj/main.js":  `import("./lazy1.js"); import("./lazy2.js");`,
		"/proj/lazy1.js": `export default 1;`,
		"/proj/lazy2.js": `export default 2;`,
	}
	opts := compiler.Options{
		Root:         "/proj",
		Entries:      []compiler.Entry{{Name: "main", Path: "main.js"}},
		Optimization: compiler.DefaultOptimization(),
	}
	opts.Optimization.ModuleIDs = splitter.Numeric
	c, err := compiler.New(opts, files, registry.NewWithModules(&js.Module{}))
	require.NoError(t, err)
	comp, err := c.Compile(context.Background())
	require.NoError(t, err)

	m := Build(comp)

	require.Len(t, m.Inputs, 3)
	assert.Equal(t, "/proj/main.js", m.Inputs["0"].URI)
	assert.Equal(t, []string{"./lazy1.js", "./lazy2.js"}, m.Inputs["0"].Lazy)
	assert.Equal(t, "/proj/lazy1.js", m.Inputs["./lazy1.js"].URI)
	assert.Equal(t, "/proj/lazy2.js", m.Inputs["./lazy2.js"].URI)
}

func TestWriteFile(t *testing.T) {
	m := Build(compile(t))
	path := filepath.Join(t.TempDir(), "manifest.json")

	require.NoError(t, m.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded Manifest
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m.Outputs, decoded.Outputs)

	var buf bytes.Buffer
	require.NoError(t, m.Write(&buf))
	assert.Equal(t, string(data), buf.String(), "encoding is deterministic")
}
