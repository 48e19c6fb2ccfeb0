package chunkgraph

import (
	"fmt"
	"sort"
)

// Graph indexes chunks by id and entry chunks by their anchor URI. It is
// built by a single goroutine and read-only afterwards.
type Graph struct {
	chunks  map[string]*Chunk
	byEntry map[string]string // Key: anchor URI, Value: chunk ID
}

// New creates an empty chunk graph.
func New() *Graph {
	return &Graph{
		chunks:  make(map[string]*Chunk),
		byEntry: make(map[string]string),
	}
}

// Add indexes c. Ids and anchor URIs must be unique.
func (g *Graph) Add(c *Chunk) error {
	if _, exists := g.chunks[c.ID]; exists {
		return fmt.Errorf("chunk '%s' already exists", c.ID)
	}
	if c.EntryURI != "" {
		if other, exists := g.byEntry[c.EntryURI]; exists {
			return fmt.Errorf("module '%s' already anchors chunk '%s'", c.EntryURI, other)
		}
		g.byEntry[c.EntryURI] = c.ID
	}
	g.chunks[c.ID] = c
	return nil
}

// ByID returns the chunk with the given id.
func (g *Graph) ByID(id string) (*Chunk, bool) {
	c, ok := g.chunks[id]
	return c, ok
}

// ByEntryURI returns the chunk anchored at uri.
func (g *Graph) ByEntryURI(uri string) (*Chunk, bool) {
	id, ok := g.byEntry[uri]
	if !ok {
		return nil, false
	}
	return g.ByID(id)
}

// RemoveByID deletes a chunk from both indexes.
func (g *Graph) RemoveByID(id string) bool {
	c, ok := g.chunks[id]
	if !ok {
		return false
	}
	delete(g.chunks, id)
	if c.EntryURI != "" {
		delete(g.byEntry, c.EntryURI)
	}
	return true
}

// Chunks returns all chunks sorted by id.
func (g *Graph) Chunks() []*Chunk {
	out := make([]*Chunk, 0, len(g.chunks))
	for _, c := range g.chunks {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of chunks.
func (g *Graph) Len() int {
	return len(g.chunks)
}

// ChunksOf returns the ids of every chunk containing uri, sorted.
func (g *Graph) ChunksOf(uri string) []string {
	var ids []string
	for _, c := range g.Chunks() {
		if c.Has(uri) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
