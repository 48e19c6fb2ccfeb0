package chunkgraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/packgrid/internal/module"
	"github.com/vk/packgrid/internal/modulegraph"
)

func TestChunk_Membership(t *testing.T) {
	c := NewEntry("src_main_js", "main", "/src/main.js")

	assert.True(t, c.Add("/src/b.js"))
	assert.True(t, c.Add("/src/a.js"))
	assert.False(t, c.Add("/src/a.js"))
	assert.True(t, c.Has("/src/a.js"))
	assert.False(t, c.Has("/src/main.js"))
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"/src/a.js", "/src/b.js"}, c.ModuleURIs())
	assert.Equal(t, Entry, c.Kind)
	assert.Equal(t, "entry", c.Kind.String())
	assert.Equal(t, "normal", Normal.String())
}

func TestChunk_OrderedModules(t *testing.T) {
	ctx := context.Background()
	g := modulegraph.New()
	for uri, order := range map[string]int{"/a.js": 2, "/b.js": 0, "/c.js": 1, "/d.js": module.Unassigned} {
		m := module.New(uri, nil, module.JS, nil)
		m.ExecOrder = order
		g.AddModule(ctx, m)
	}

	c := NewEntry("main", "main", "/b.js")
	for _, uri := range []string{"/d.js", "/a.js", "/b.js", "/c.js", "/ghost.js"} {
		c.Add(uri)
	}

	var uris []string
	for _, m := range c.OrderedModules(g) {
		uris = append(uris, m.URI)
	}
	assert.Equal(t, []string{"/b.js", "/c.js", "/a.js", "/d.js"}, uris)
}

func TestGraph_IndexesStayConsistent(t *testing.T) {
	g := New()
	main := NewEntry("main", "main", "/main.js")
	admin := NewEntry("admin", "admin", "/admin.js")

	require.NoError(t, g.Add(main))
	require.NoError(t, g.Add(admin))
	assert.Equal(t, 2, g.Len())

	err := g.Add(NewEntry("main", "other", "/other.js"))
	require.Error(t, err)
	err = g.Add(NewEntry("again", "again", "/main.js"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already anchors chunk 'main'")

	got, ok := g.ByEntryURI("/admin.js")
	require.True(t, ok)
	assert.Same(t, admin, got)

	assert.True(t, g.RemoveByID("admin"))
	assert.False(t, g.RemoveByID("admin"))
	_, ok = g.ByID("admin")
	assert.False(t, ok)
	_, ok = g.ByEntryURI("/admin.js")
	assert.False(t, ok)

	require.NoError(t, g.Add(NewEntry("admin2", "admin", "/admin.js")), "anchor is free again after removal")
	ids := []string{}
	for _, c := range g.Chunks() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"admin2", "main"}, ids)
}

func TestGraph_ChunksOf(t *testing.T) {
	g := New()
	a := NewEntry("a", "a", "/a.js")
	b := NewEntry("b", "b", "/b.js")
	a.Add("/shared.js")
	b.Add("/shared.js")
	a.Add("/a.js")
	require.NoError(t, g.Add(b))
	require.NoError(t, g.Add(a))

	assert.Equal(t, []string{"a", "b"}, g.ChunksOf("/shared.js"))
	assert.Equal(t, []string{"a"}, g.ChunksOf("/a.js"))
	assert.Empty(t, g.ChunksOf("/none.js"))
}
