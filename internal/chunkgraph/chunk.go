// Package chunkgraph holds the output chunks of a build and the modules
// placed in each.
package chunkgraph

import (
	"sort"

	"github.com/vk/packgrid/internal/module"
	"github.com/vk/packgrid/internal/modulegraph"
)

// Kind distinguishes entry chunks from the rest.
type Kind int

const (
	// Entry chunks are created for a named entry and anchored at its module.
	Entry Kind = iota
	// Normal chunks have no entry of their own.
	Normal
)

func (k Kind) String() string {
	if k == Entry {
		return "entry"
	}
	return "normal"
}

// Chunk is a set of modules emitted together.
type Chunk struct {
	ID string
	// EntryURI is the anchor module of an entry chunk.
	EntryURI string
	Kind     Kind
	// Name is the entry name; empty for normal chunks.
	Name    string
	members map[string]struct{}
}

// NewEntry creates an entry chunk anchored at entryURI.
func NewEntry(id, name, entryURI string) *Chunk {
	return &Chunk{
		ID:       id,
		EntryURI: entryURI,
		Kind:     Entry,
		Name:     name,
		members:  make(map[string]struct{}),
	}
}

// Add places uri in the chunk and reports whether it was new.
func (c *Chunk) Add(uri string) bool {
	if _, ok := c.members[uri]; ok {
		return false
	}
	c.members[uri] = struct{}{}
	return true
}

// Has reports whether uri is a member.
func (c *Chunk) Has(uri string) bool {
	_, ok := c.members[uri]
	return ok
}

// Len returns the number of members.
func (c *Chunk) Len() int {
	return len(c.members)
}

// ModuleURIs returns the members sorted by URI.
func (c *Chunk) ModuleURIs() []string {
	uris := make([]string, 0, len(c.members))
	for uri := range c.members {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// OrderedModules returns the members in execution order. Members missing
// from graph are skipped; unnumbered members come last, by URI.
func (c *Chunk) OrderedModules(graph *modulegraph.Graph) []*module.GraphModule {
	mods := make([]*module.GraphModule, 0, len(c.members))
	for _, uri := range c.ModuleURIs() {
		if m, ok := graph.ModuleByURI(uri); ok {
			mods = append(mods, m)
		}
	}
	sort.SliceStable(mods, func(i, j int) bool {
		a, b := mods[i], mods[j]
		if a.Ordered() != b.Ordered() {
			return a.Ordered()
		}
		return a.ExecOrder < b.ExecOrder
	})
	return mods
}
