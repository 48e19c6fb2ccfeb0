package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FS is the read-only view of the file system used by the resolver and the
// content loader. Paths are absolute and use the host separator.
type FS interface {
	ReadFile(name string) ([]byte, error)
	Stat(name string) (fs.FileInfo, error)
}

// OS is the FS backed by the host file system.
type OS struct{}

func (OS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (OS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

// MapFS is an in-memory FS keyed by absolute file path. Directories are
// implied by the files beneath them.
type MapFS map[string]string

func (m MapFS) ReadFile(name string) ([]byte, error) {
	data, ok := m[filepath.Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return []byte(data), nil
}

func (m MapFS) Stat(name string) (fs.FileInfo, error) {
	name = filepath.Clean(name)
	if data, ok := m[name]; ok {
		return mapInfo{name: filepath.Base(name), size: int64(len(data))}, nil
	}
	prefix := name + string(filepath.Separator)
	if name == string(filepath.Separator) {
		prefix = name
	}
	for path := range m {
		if strings.HasPrefix(path, prefix) {
			return mapInfo{name: filepath.Base(name), dir: true}, nil
		}
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

// Paths returns the file paths held by the map in sorted order.
func (m MapFS) Paths() []string {
	paths := make([]string, 0, len(m))
	for p := range m {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

type mapInfo struct {
	name string
	size int64
	dir  bool
}

func (i mapInfo) Name() string { return i.name }
func (i mapInfo) Size() int64  { return i.size }
func (i mapInfo) Mode() fs.FileMode {
	if i.dir {
		return fs.ModeDir | 0o555
	}
	return 0o444
}
func (i mapInfo) ModTime() time.Time { return time.Time{} }
func (i mapInfo) IsDir() bool        { return i.dir }
func (i mapInfo) Sys() any           { return nil }

// IsFile reports whether name exists and is a regular file.
func IsFile(fsys FS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && !info.IsDir()
}

// IsDir reports whether name exists and is a directory.
func IsDir(fsys FS, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}
