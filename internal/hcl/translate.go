package hcl

import (
	"path/filepath"

	"github.com/vk/packgrid/internal/config"
)

// translate converts one decoded file into the agnostic model. A relative
// root is taken relative to the directory of the file declaring it.
func translate(file string, root *fileRoot) *config.Model {
	m := &config.Model{
		MaxConcurrency: root.MaxConcurrency,
		FailFast:       root.FailFast,
	}
	if root.Root != nil {
		m.Root = *root.Root
		if !filepath.IsAbs(m.Root) {
			m.Root = filepath.Join(filepath.Dir(file), m.Root)
		}
	}
	if root.Manifest != nil {
		m.Manifest = *root.Manifest
	}
	for _, e := range root.Entries {
		m.SetEntry(config.Entry{Name: e.Name, Path: e.Path})
	}
	if r := root.Resolve; r != nil {
		m.Resolve = config.Resolve{
			Extensions:  r.Extensions,
			AliasFields: r.AliasFields,
			MainFields:  r.MainFields,
		}
	}
	if o := root.Optimization; o != nil {
		m.Optimization.CodeSplitting = o.CodeSplitting
		m.Optimization.ReuseExistingChunk = o.ReuseExistingChunk
		if o.ChunkIDs != nil {
			m.Optimization.ChunkIDs = *o.ChunkIDs
		}
		if o.ModuleIDs != nil {
			m.Optimization.ModuleIDs = *o.ModuleIDs
		}
	}
	return m
}
