// Package compiler drives a build: it seeds the entries into the scheduler,
// numbers the closed module graph and splits it into chunks.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/vk/packgrid/internal/chunkgraph"
	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/dependency"
	"github.com/vk/packgrid/internal/execorder"
	"github.com/vk/packgrid/internal/fsutil"
	"github.com/vk/packgrid/internal/loader"
	"github.com/vk/packgrid/internal/module"
	"github.com/vk/packgrid/internal/modulegraph"
	"github.com/vk/packgrid/internal/registry"
	"github.com/vk/packgrid/internal/resolver"
	"github.com/vk/packgrid/internal/scheduler"
	"github.com/vk/packgrid/internal/splitter"
)

// Compiler holds the collaborators of a build.
type Compiler struct {
	opts      Options
	scheduler *scheduler.Scheduler
}

// Compilation is the result of a successful build.
type Compilation struct {
	Options     Options
	ModuleGraph *modulegraph.Graph
	ChunkGraph  *chunkgraph.Graph
	// Entries are sorted by name and carry the resolved entry URIs.
	Entries []splitter.Entry
	// ExecOrder lists module URIs in the order they were numbered.
	ExecOrder []string
	Stats     scheduler.Stats
}

// New validates opts and wires the resolver, loader and scheduler over fsys.
func New(opts Options, fsys fsutil.FS, reg *registry.Registry) (*Compiler, error) {
	if len(opts.Entries) == 0 {
		return nil, errors.New("at least one entry is required")
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("invalid root %q: %w", opts.Root, err)
	}
	opts.Root = root

	entries := make([]Entry, len(opts.Entries))
	copy(entries, opts.Entries)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	for i, e := range entries {
		if e.Name == "" || e.Path == "" {
			return nil, fmt.Errorf("entry %d: name and path are required", i)
		}
		if i > 0 && entries[i-1].Name == e.Name {
			return nil, fmt.Errorf("duplicate entry name '%s'", e.Name)
		}
		if filepath.IsAbs(e.Path) {
			rel, err := filepath.Rel(root, e.Path)
			if err != nil {
				return nil, fmt.Errorf("entry '%s': %w", e.Name, err)
			}
			entries[i].Path = rel
		}
	}
	opts.Entries = entries

	if opts.Optimization.ChunkIDs == "" {
		opts.Optimization.ChunkIDs = splitter.Named
	}
	if opts.Optimization.ModuleIDs == "" {
		opts.Optimization.ModuleIDs = splitter.Named
	}

	res, err := resolver.New(root, fsys, opts.Resolve)
	if err != nil {
		return nil, err
	}
	sched := scheduler.New(res, loader.New(fsys), reg, scheduler.Options{
		MaxConcurrency: opts.MaxConcurrency,
		FailFast:       opts.FailFast,
	})
	return &Compiler{opts: opts, scheduler: sched}, nil
}

// Options returns the normalized options.
func (c *Compiler) Options() Options {
	return c.opts
}

// Compile runs the build.
func (c *Compiler) Compile(ctx context.Context) (*Compilation, error) {
	logger := ctxlog.FromContext(ctx)

	var deps []dependency.Dependency
	seen := make(map[dependency.Dependency]struct{})
	for _, e := range c.opts.Entries {
		dep := dependency.Entry(e.Path)
		if _, dup := seen[dep]; dup {
			continue
		}
		seen[dep] = struct{}{}
		deps = append(deps, dep)
	}

	graph := modulegraph.New()
	logger.Debug("Building module graph.", "entries", len(deps))
	stats, err := c.scheduler.Run(ctx, graph, deps)
	if err != nil {
		return nil, fmt.Errorf("failed to build module graph: %w", err)
	}

	entries := make([]splitter.Entry, 0, len(c.opts.Entries))
	uris := make([]string, 0, len(c.opts.Entries))
	for _, e := range c.opts.Entries {
		m, ok := graph.ModuleByDependency(dependency.Entry(e.Path))
		if !ok {
			return nil, fmt.Errorf("entry '%s' did not produce a module", e.Name)
		}
		entries = append(entries, splitter.Entry{Name: e.Name, URI: m.URI})
		uris = append(uris, m.URI)
	}

	order, err := execorder.Assign(ctx, graph, uris)
	if err != nil {
		return nil, fmt.Errorf("failed to assign execution order: %w", err)
	}

	logger.Debug("Sealing compilation.")
	chunks, err := splitter.Split(ctx, graph, entries, splitter.Options{
		Root:               c.opts.Root,
		ChunkIDs:           c.opts.Optimization.ChunkIDs,
		CodeSplitting:      c.opts.Optimization.CodeSplitting,
		ReuseExistingChunk: c.opts.Optimization.ReuseExistingChunk,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to split chunks: %w", err)
	}

	return &Compilation{
		Options:     c.opts,
		ModuleGraph: graph,
		ChunkGraph:  chunks,
		Entries:     entries,
		ExecOrder:   order,
		Stats:       stats,
	}, nil
}

// ModuleID returns the id of m under the configured module id strategy:
// the root-relative path for named ids, the execution order for numeric ids.
// Modules without an execution order keep their named id under numeric ids.
func (c *Compilation) ModuleID(m *module.GraphModule) string {
	if c.Options.Optimization.ModuleIDs == splitter.Numeric && m.Ordered() {
		return strconv.Itoa(m.ExecOrder)
	}
	rel, err := filepath.Rel(c.Options.Root, m.URI)
	if err != nil || strings.HasPrefix(rel, "..") {
		return m.URI
	}
	return "./" + filepath.ToSlash(rel)
}
