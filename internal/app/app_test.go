package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/packgrid/internal/config"
	"github.com/vk/packgrid/internal/manifest"
	"github.com/vk/packgrid/internal/scheduler"
	"github.com/vk/packgrid/internal/splitter"
)

var mainAdminSources = map[string]string{
	"src/main.js":   `import "./shared.js";`,
	"src/admin.js":  `import "./main.js"; import "./shared.js"; import "./admin.css";`,
	"src/shared.js": `export const shared = true;`,
	"src/admin.css": `body {}`,
}

func withFiles(extra map[string]string) map[string]string {
	files := make(map[string]string, len(mainAdminSources)+len(extra))
	for k, v := range mainAdminSources {
		files[k] = v
	}
	for k, v := range extra {
		files[k] = v
	}
	return files
}

func readManifest(t *testing.T, path string) *manifest.Manifest {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var m manifest.Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	return &m
}

func TestRun_HCLProject(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "manifest.json")
	WriteProject(t, dir, withFiles(map[string]string{
		"packgrid.hcl": `
entry "main" {
  path = "src/main.js"
}

entry "admin" {
  path = "src/admin.js"
}

manifest = "` + manifestPath + `"
`,
	}))

	a, logs := SetupAppTest(t, &Config{ConfigPath: filepath.Join(dir, "packgrid.hcl")})
	require.NoError(t, a.Run(context.Background()))

	m := readManifest(t, manifestPath)
	require.Contains(t, m.Outputs, "src_main_js")
	require.Contains(t, m.Outputs, "src_admin_js")
	assert.Equal(t, []string{"./src/main.js", "./src/shared.js"}, m.Outputs["src_main_js"].Modules)
	assert.Equal(t, []string{"./src/admin.js", "./src/admin.css"}, m.Outputs["src_admin_js"].Modules)
	assert.Equal(t, "main", m.Outputs["src_main_js"].EntryPoint)

	out := logs.String()
	assert.Contains(t, out, "Build finished.")
	assert.Contains(t, out, "src_main_js (main)")
	assert.Contains(t, out, "./src/shared.js")
}

func TestRun_SummaryCountsLazyModules(t *testing.T) {
	dir := t.TempDir()
	WriteProject(t, dir, map[string]string{
		"src/main.js": `import("./lazy.js");`,
		"src/lazy.js": `export default 1;`,
		"packgrid.hcl": `
entry "main" {
  path = "src/main.js"
}
`,
	})

	a, logs := SetupAppTest(t, &Config{ConfigPath: filepath.Join(dir, "packgrid.hcl")})
	require.NoError(t, a.Run(context.Background()))

	assert.Contains(t, logs.String(), "2 modules · 1 lazy")
}

func TestRun_YAMLProjectWithEnvFile(t *testing.T) {
	dir := t.TempDir()
	project := WriteProject(t, filepath.Join(dir, "project"), mainAdminSources)
	WriteProject(t, dir, map[string]string{
		".env": "PACKGRID_APP_TEST_ROOT=" + project + "\n",
		"packgrid.yaml": `
root: ${PACKGRID_APP_TEST_ROOT}
entries:
  - name: main
    path: src/main.js
optimization:
  chunk_ids: numeric
  module_ids: numeric
`,
	})
	t.Cleanup(func() { os.Unsetenv("PACKGRID_APP_TEST_ROOT") })

	a, logs := SetupAppTest(t, &Config{
		ConfigPath: filepath.Join(dir, "packgrid.yaml"),
		EnvFile:    filepath.Join(dir, ".env"),
	})
	assert.Equal(t, project, a.Model().Root)

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, logs.String(), "0 (main)")
}

func TestNewApp_OverridesWin(t *testing.T) {
	dir := WriteProject(t, t.TempDir(), withFiles(map[string]string{
		"packgrid.hcl": `
entry "main" {
  path = "src/main.js"
}

optimization {
  chunk_ids = "named"
}
`,
	}))
	noSplit := false
	a, _ := SetupAppTest(t, &Config{
		ConfigPath: dir,
		Overrides: config.Model{
			Entries:      []config.Entry{{Name: "main", Path: "src/admin.js"}},
			Optimization: config.Optimization{ChunkIDs: "numeric", CodeSplitting: &noSplit},
		},
	})

	m := a.Model()
	assert.Equal(t, dir, m.Root)
	assert.Equal(t, []config.Entry{{Name: "main", Path: "src/admin.js"}}, m.Entries)
	assert.Equal(t, "numeric", m.Optimization.ChunkIDs)

	opts, err := compilerOptions(m)
	require.NoError(t, err)
	assert.Equal(t, splitter.Numeric, opts.Optimization.ChunkIDs)
	assert.Equal(t, splitter.Named, opts.Optimization.ModuleIDs)
	assert.False(t, opts.Optimization.CodeSplitting)
	assert.True(t, opts.Optimization.ReuseExistingChunk)
}

func TestNewApp_EntriesFromOverridesOnly(t *testing.T) {
	a, err := NewApp(&SafeBuffer{}, &Config{
		Overrides: config.Model{Entries: []config.Entry{{Name: "main", Path: "main.js"}}},
	}, DefaultLoader())
	require.NoError(t, err)
	assert.Equal(t, ".", a.Model().Root)
	assert.NotEmpty(t, a.Registry().SourceTypes())
}

func TestNewApp_InvalidConfiguration(t *testing.T) {
	dir := WriteProject(t, t.TempDir(), map[string]string{
		"packgrid.hcl": `root = "."`,
	})

	_, err := NewApp(&SafeBuffer{}, &Config{ConfigPath: dir}, DefaultLoader())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one entry is required")
}

func TestNewApp_ParseError(t *testing.T) {
	dir := WriteProject(t, t.TempDir(), map[string]string{
		"packgrid.hcl": `entry "main" {`,
	})

	_, err := NewApp(&SafeBuffer{}, &Config{ConfigPath: dir}, DefaultLoader())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestNewApp_MissingEnvFile(t *testing.T) {
	_, err := NewApp(&SafeBuffer{}, &Config{
		EnvFile:   filepath.Join(t.TempDir(), "missing.env"),
		Overrides: config.Model{Entries: []config.Entry{{Name: "main", Path: "main.js"}}},
	}, DefaultLoader())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun_BuildFailure(t *testing.T) {
	dir := WriteProject(t, t.TempDir(), map[string]string{
		"src/main.js":     `import "./missing.js"; import "./broken.json";`,
		"src/broken.json": `{`,
	})
	a, _ := SetupAppTest(t, &Config{
		Overrides: config.Model{
			Root:    dir,
			Entries: []config.Entry{{Name: "main", Path: "src/main.js"}},
		},
	})

	err := a.Run(context.Background())
	require.Error(t, err)

	var buildErr *scheduler.BuildError
	require.True(t, errors.As(err, &buildErr))
	assert.Len(t, buildErr.Failures, 2)
	assert.ErrorIs(t, err, scheduler.ErrResolution)
	assert.ErrorIs(t, err, scheduler.ErrParse)
}

func TestNewConfig(t *testing.T) {
	_, err := NewConfig(Config{})
	assert.Error(t, err)

	cfg, err := NewConfig(Config{ConfigPath: "packgrid.hcl"})
	require.NoError(t, err)
	assert.Equal(t, "packgrid.hcl", cfg.ConfigPath)

	_, err = NewConfig(Config{Overrides: config.Model{Entries: []config.Entry{{Name: "a", Path: "a.js"}}}})
	assert.NoError(t, err)
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0 B", formatBytes(0))
	assert.Equal(t, "1023 B", formatBytes(1023))
	assert.Equal(t, "1.5 kB", formatBytes(1536))
}
