package modulegraph

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/dependency"
	"github.com/vk/packgrid/internal/module"
)

// Graph is an in-memory module graph.
type Graph struct {
	mu      sync.RWMutex
	modules map[string]*module.GraphModule
	edges   map[dependency.Dependency]string // Key: dependency edge, Value: resolved URI
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		modules: make(map[string]*module.GraphModule),
		edges:   make(map[dependency.Dependency]string),
	}
}

// AddModule inserts m keyed by its URI. An existing module under the same URI
// is replaced; the scheduler's visited set makes that a programming error, so
// it is logged.
func (g *Graph) AddModule(ctx context.Context, m *module.GraphModule) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.modules[m.URI]; exists {
		ctxlog.FromContext(ctx).Warn("Module replaced in graph.", "uri", m.URI)
	}
	g.modules[m.URI] = m
}

// AddDependency records that dep resolved to uri. The target module does not
// have to exist.
func (g *Graph) AddDependency(dep dependency.Dependency, uri string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.edges[dep] = uri
}

// ModuleByURI returns the module stored under uri.
func (g *Graph) ModuleByURI(uri string) (*module.GraphModule, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	m, ok := g.modules[uri]
	return m, ok
}

// URIByDependency returns the URI dep resolved to.
func (g *Graph) URIByDependency(dep dependency.Dependency) (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	uri, ok := g.edges[dep]
	return uri, ok
}

// ModuleByDependency returns the module dep resolved to, if it exists.
func (g *Graph) ModuleByDependency(dep dependency.Dependency) (*module.GraphModule, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	uri, ok := g.edges[dep]
	if !ok {
		return nil, false
	}
	m, ok := g.modules[uri]
	return m, ok
}

// Modules returns every module sorted by URI.
func (g *Graph) Modules() []*module.GraphModule {
	g.mu.RLock()
	defer g.mu.RUnlock()

	mods := make([]*module.GraphModule, 0, len(g.modules))
	for _, m := range g.modules {
		mods = append(mods, m)
	}
	sort.Slice(mods, func(i, j int) bool { return mods[i].URI < mods[j].URI })
	return mods
}

// Len returns the number of modules.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.modules)
}

// EdgeCount returns the number of recorded dependency edges.
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

// DependedModules returns the targets of m's static edges in declaration
// order. Edges without a target module are skipped.
func (g *Graph) DependedModules(m *module.GraphModule) []*module.GraphModule {
	return g.targets(m, func(k dependency.Kind) bool { return k.IsStatic() })
}

// DynamicImports returns the targets of m's dynamic-import edges.
func (g *Graph) DynamicImports(m *module.GraphModule) []*module.GraphModule {
	return g.targets(m, func(k dependency.Kind) bool { return !k.IsStatic() })
}

func (g *Graph) targets(m *module.GraphModule, keep func(dependency.Kind) bool) []*module.GraphModule {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []*module.GraphModule
	for _, dep := range m.Dependencies {
		if !keep(dep.Kind) {
			continue
		}
		uri, ok := g.edges[dep]
		if !ok {
			continue
		}
		if target, ok := g.modules[uri]; ok {
			out = append(out, target)
		}
	}
	return out
}

// SetExecOrder assigns the execution order of the module at uri.
func (g *Graph) SetExecOrder(uri string, order int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	m, ok := g.modules[uri]
	if !ok {
		return fmt.Errorf("module '%s' not found in graph", uri)
	}
	m.ExecOrder = order
	return nil
}
