package config

import (
	"errors"
	"fmt"
	"strings"
)

// Model is the unified, format-agnostic representation of a build
// configuration.
type Model struct {
	Root           string
	Entries        []Entry
	Resolve        Resolve
	Optimization   Optimization
	MaxConcurrency *int
	FailFast       *bool
	// Manifest is the path the JSON build manifest is written to.
	Manifest string
}

// Entry is a named entry point, relative to Root.
type Entry struct {
	Name string
	Path string
}

// Resolve holds resolver settings. Nil slices keep the defaults.
type Resolve struct {
	Extensions  []string
	AliasFields []string
	MainFields  []string
}

// Optimization holds chunking settings. Nil values keep the defaults.
type Optimization struct {
	ChunkIDs           string
	ModuleIDs          string
	CodeSplitting      *bool
	ReuseExistingChunk *bool
}

// Merge overlays other onto m. Set scalars in other win; entries are
// appended, replacing earlier entries with the same name.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	if other.Root != "" {
		m.Root = other.Root
	}
	for _, e := range other.Entries {
		m.SetEntry(e)
	}
	if other.Resolve.Extensions != nil {
		m.Resolve.Extensions = other.Resolve.Extensions
	}
	if other.Resolve.AliasFields != nil {
		m.Resolve.AliasFields = other.Resolve.AliasFields
	}
	if other.Resolve.MainFields != nil {
		m.Resolve.MainFields = other.Resolve.MainFields
	}
	if other.Optimization.ChunkIDs != "" {
		m.Optimization.ChunkIDs = other.Optimization.ChunkIDs
	}
	if other.Optimization.ModuleIDs != "" {
		m.Optimization.ModuleIDs = other.Optimization.ModuleIDs
	}
	if other.Optimization.CodeSplitting != nil {
		m.Optimization.CodeSplitting = other.Optimization.CodeSplitting
	}
	if other.Optimization.ReuseExistingChunk != nil {
		m.Optimization.ReuseExistingChunk = other.Optimization.ReuseExistingChunk
	}
	if other.MaxConcurrency != nil {
		m.MaxConcurrency = other.MaxConcurrency
	}
	if other.FailFast != nil {
		m.FailFast = other.FailFast
	}
	if other.Manifest != "" {
		m.Manifest = other.Manifest
	}
}

// SetEntry adds e, replacing an existing entry of the same name.
func (m *Model) SetEntry(e Entry) {
	for i := range m.Entries {
		if m.Entries[i].Name == e.Name {
			m.Entries[i] = e
			return
		}
	}
	m.Entries = append(m.Entries, e)
}

// Validate reports every problem with the model at once.
func (m *Model) Validate() error {
	var errs []string
	if len(m.Entries) == 0 {
		errs = append(errs, "at least one entry is required")
	}
	for i, e := range m.Entries {
		if e.Name == "" {
			errs = append(errs, fmt.Sprintf("entry %d has no name", i))
		}
		if e.Path == "" {
			errs = append(errs, fmt.Sprintf("entry '%s' has no path", e.Name))
		}
	}
	if m.MaxConcurrency != nil && *m.MaxConcurrency < 0 {
		errs = append(errs, "max_concurrency must not be negative")
	}
	for _, ids := range []string{m.Optimization.ChunkIDs, m.Optimization.ModuleIDs} {
		switch strings.ToLower(ids) {
		case "", "named", "numeric":
		default:
			errs = append(errs, fmt.Sprintf("unknown id algorithm '%s'", ids))
		}
	}
	if len(errs) > 0 {
		return errors.New("invalid configuration:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}

// BoolOr returns *b, or def when b is nil.
func BoolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// IntOr returns *i, or def when i is nil.
func IntOr(i *int, def int) int {
	if i == nil {
		return def
	}
	return *i
}
