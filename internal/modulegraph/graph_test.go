package modulegraph

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/dependency"
	"github.com/vk/packgrid/internal/module"
)

func dep(importer, spec string, kind dependency.Kind) dependency.Dependency {
	return dependency.Dependency{Importer: importer, Specifier: spec, Kind: kind}
}

func TestGraph_LookupsAndOrdering(t *testing.T) {
	ctx := context.Background()
	g := New()

	toB := dep("/a.js", "./b", dependency.Import)
	toC := dep("/a.js", "./c", dependency.Require)
	toLazy := dep("/a.js", "./lazy", dependency.DynamicImport)
	toMissing := dep("/a.js", "./missing", dependency.Import)
	toExternal := dep("/a.js", "fs", dependency.Require)

	a := module.New("/a.js", nil, module.JS, []dependency.Dependency{toB, toLazy, toMissing, toExternal, toC})
	b := module.New("/b.js", nil, module.JS, nil)
	c := module.New("/c.js", nil, module.JS, nil)
	lazy := module.New("/lazy.js", nil, module.JS, nil)

	// Edges may arrive before their modules.
	g.AddDependency(toB, "/b.js")
	g.AddDependency(toC, "/c.js")
	g.AddDependency(toLazy, "/lazy.js")
	g.AddDependency(toExternal, "fs")
	for _, m := range []*module.GraphModule{c, lazy, a, b} {
		g.AddModule(ctx, m)
	}

	assert.Equal(t, 4, g.Len())
	assert.Equal(t, 4, g.EdgeCount())

	got, ok := g.ModuleByURI("/b.js")
	require.True(t, ok)
	assert.Same(t, b, got)

	got, ok = g.ModuleByDependency(toC)
	require.True(t, ok)
	assert.Same(t, c, got)

	uri, ok := g.URIByDependency(toExternal)
	require.True(t, ok)
	assert.Equal(t, "fs", uri)
	_, ok = g.ModuleByDependency(toExternal)
	assert.False(t, ok)
	_, ok = g.URIByDependency(toMissing)
	assert.False(t, ok)

	var uris []string
	for _, m := range g.Modules() {
		uris = append(uris, m.URI)
	}
	assert.Equal(t, []string{"/a.js", "/b.js", "/c.js", "/lazy.js"}, uris)

	assert.Equal(t, []*module.GraphModule{b, c}, g.DependedModules(a))
	assert.Equal(t, []*module.GraphModule{lazy}, g.DynamicImports(a))
	assert.Empty(t, g.DependedModules(b))
}

func TestGraph_SetExecOrder(t *testing.T) {
	g := New()
	g.AddModule(context.Background(), module.New("/a.js", nil, module.JS, nil))

	require.NoError(t, g.SetExecOrder("/a.js", 3))
	m, _ := g.ModuleByURI("/a.js")
	assert.Equal(t, 3, m.ExecOrder)

	err := g.SetExecOrder("/nope.js", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nope.js")
}

func TestGraph_AddModuleOverwriteIsLogged(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))
	g := New()

	first := module.New("/a.js", nil, module.JS, nil)
	second := module.New("/a.js", nil, module.TS, nil)
	g.AddModule(ctx, first)
	g.AddModule(ctx, second)

	got, _ := g.ModuleByURI("/a.js")
	assert.Same(t, second, got)
	assert.Equal(t, 1, g.Len())
	assert.Contains(t, buf.String(), "Module replaced in graph.")
}
