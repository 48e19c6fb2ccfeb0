package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapFS(t *testing.T) {
	m := MapFS{
		"/proj/src/main.js":             "import './a'",
		"/proj/node_modules/x/index.js": "",
	}

	data, err := m.ReadFile("/proj/src/main.js")
	require.NoError(t, err)
	assert.Equal(t, "import './a'", string(data))

	_, err = m.ReadFile("/proj/src/missing.js")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	assert.True(t, IsFile(m, "/proj/src/main.js"))
	assert.False(t, IsDir(m, "/proj/src/main.js"))
	assert.True(t, IsDir(m, "/proj/src"))
	assert.True(t, IsDir(m, "/proj/node_modules/x"))
	assert.True(t, IsDir(m, "/"))
	assert.False(t, IsDir(m, "/proj/sr"))
	assert.False(t, IsFile(m, "/proj/nope.js"))

	assert.Equal(t, []string{"/proj/node_modules/x/index.js", "/proj/src/main.js"}, m.Paths())
}

func TestOS(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.js")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	var fsys FS = OS{}
	data, err := fsys.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
	assert.True(t, IsFile(fsys, path))
	assert.True(t, IsDir(fsys, dir))
}

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.hcl", "a.yaml", "nested/c.hcl", "skip.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o600))
	}

	files, err := FindFilesByExtension(dir, ".hcl", ".yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "nested", "c.hcl"),
	}, files)

	single, err := FindFilesByExtension(filepath.Join(dir, "b.hcl"), ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "b.hcl")}, single)
}
