// Package yamlconfig implements config.Loader for YAML files. Values may
// reference environment variables as ${NAME}.
package yamlconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vk/packgrid/internal/config"
	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/fsutil"
	"gopkg.in/yaml.v3"
)

// File models a packgrid YAML configuration file.
type File struct {
	Root           *string       `yaml:"root,omitempty"`
	Entries        []EntryFile   `yaml:"entries,omitempty"`
	Resolve        *ResolveFile  `yaml:"resolve,omitempty"`
	Optimization   *Optimization `yaml:"optimization,omitempty"`
	MaxConcurrency *int          `yaml:"max_concurrency,omitempty"`
	FailFast       *bool         `yaml:"fail_fast,omitempty"`
	Manifest       *string       `yaml:"manifest,omitempty"`
}

// EntryFile is one entry of the entries list.
type EntryFile struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// ResolveFile holds resolver settings.
type ResolveFile struct {
	Extensions  []string `yaml:"extensions,omitempty"`
	AliasFields []string `yaml:"alias_fields,omitempty"`
	MainFields  []string `yaml:"main_fields,omitempty"`
}

// Optimization holds chunking settings.
type Optimization struct {
	ChunkIDs           string `yaml:"chunk_ids,omitempty"`
	ModuleIDs          string `yaml:"module_ids,omitempty"`
	CodeSplitting      *bool  `yaml:"code_splitting,omitempty"`
	ReuseExistingChunk *bool  `yaml:"reuse_existing_chunk,omitempty"`
}

// Loader reads .yaml and .yml files.
type Loader struct {
	lookupEnv func(string) (string, bool)
}

// NewLoader creates a YAML loader expanding variables from the process environment.
func NewLoader() *Loader {
	return &Loader{lookupEnv: os.LookupEnv}
}

// Load reads every YAML file under the given paths and merges them in order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".yaml", ".yml")
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}
		files = append(files, found...)
	}

	model := &config.Model{}
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		f, err := l.decode(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
		}
		model.Merge(f.toModel(path))
	}

	logger.Debug("YAML loading complete.", "files", len(files), "entries", len(model.Entries))
	return model, nil
}

func (l *Loader) decode(data []byte) (*File, error) {
	var missing []string
	expanded := os.Expand(string(data), func(name string) string {
		value, ok := l.lookupEnv(name)
		if !ok {
			missing = append(missing, name)
		}
		return value
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("undefined environment variables: %v", missing)
	}

	dec := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &f, nil
}

func (f *File) toModel(path string) *config.Model {
	m := &config.Model{
		MaxConcurrency: f.MaxConcurrency,
		FailFast:       f.FailFast,
	}
	if f.Root != nil {
		m.Root = *f.Root
		if !filepath.IsAbs(m.Root) {
			m.Root = filepath.Join(filepath.Dir(path), m.Root)
		}
	}
	if f.Manifest != nil {
		m.Manifest = *f.Manifest
	}
	for _, e := range f.Entries {
		m.SetEntry(config.Entry{Name: e.Name, Path: e.Path})
	}
	if r := f.Resolve; r != nil {
		m.Resolve = config.Resolve{Extensions: r.Extensions, AliasFields: r.AliasFields, MainFields: r.MainFields}
	}
	if o := f.Optimization; o != nil {
		m.Optimization = config.Optimization{
			ChunkIDs:           o.ChunkIDs,
			ModuleIDs:          o.ModuleIDs,
			CodeSplitting:      o.CodeSplitting,
			ReuseExistingChunk: o.ReuseExistingChunk,
		}
	}
	return m
}
