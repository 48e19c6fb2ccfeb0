package splitter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/dominikbraun/graph"
	"github.com/vk/packgrid/internal/chunkgraph"
	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/modulegraph"
)

// Split builds the chunk graph for entries over a closed module graph.
// Entries whose module is missing from modules are skipped.
func Split(ctx context.Context, modules *modulegraph.Graph, entries []Entry, opts Options) (*chunkgraph.Graph, error) {
	logger := ctxlog.FromContext(ctx)

	s := &splitter{
		modules:    modules,
		opts:       opts,
		chunks:     chunkgraph.New(),
		anchors:    make(map[string]string),
		candidates: make(map[string]map[string]struct{}),
	}
	if err := s.createEntryChunks(ctx, entries); err != nil {
		return nil, err
	}

	for _, c := range s.chunks.Chunks() {
		s.walk(c.EntryURI, c.ID, func(uri string) {
			set, ok := s.candidates[uri]
			if !ok {
				set = make(map[string]struct{})
				s.candidates[uri] = set
			}
			set[c.ID] = struct{}{}
		})
	}

	relations, err := s.relationGraph()
	if err != nil {
		return nil, err
	}
	reach, err := reachability(relations, s.chunkIDs())
	if err != nil {
		return nil, err
	}

	placed := make(map[string]struct{})
	for _, c := range s.chunks.Chunks() {
		s.walk(c.EntryURI, c.ID, func(uri string) {
			if _, done := placed[uri]; done {
				return
			}
			placed[uri] = struct{}{}
			for _, id := range s.placement(uri, reach) {
				target, _ := s.chunks.ByID(id)
				target.Add(uri)
			}
		})
	}

	for _, c := range s.chunks.Chunks() {
		if c.Len() == 0 {
			logger.Debug("Removing empty chunk.", "chunk", c.ID)
			s.chunks.RemoveByID(c.ID)
		}
	}

	logger.Debug("Chunks split.", "chunks", s.chunks.Len(), "modules", len(placed))
	return s.chunks, nil
}

type splitter struct {
	modules *modulegraph.Graph
	opts    Options
	chunks  *chunkgraph.Graph
	// anchors maps an anchor URI to its chunk id.
	anchors map[string]string
	// candidates maps a module URI to the ids of the chunks whose entry reaches it.
	candidates map[string]map[string]struct{}
}

// createEntryChunks creates one chunk per distinct entry module. Entries are
// taken in order, so the first name given for a module names its chunk.
func (s *splitter) createEntryChunks(ctx context.Context, entries []Entry) error {
	logger := ctxlog.FromContext(ctx)

	names := make(map[string]string)
	var uris []string
	for _, e := range entries {
		if _, ok := s.modules.ModuleByURI(e.URI); !ok {
			logger.Warn("Entry module not in graph, no chunk created.", "entry", e.Name, "uri", e.URI)
			continue
		}
		if _, seen := names[e.URI]; seen {
			logger.Debug("Entry shares its module with an earlier entry.", "entry", e.Name, "uri", e.URI)
			continue
		}
		names[e.URI] = e.Name
		uris = append(uris, e.URI)
	}
	sort.Strings(uris)

	for i, uri := range uris {
		id := strconv.Itoa(i)
		if s.opts.ChunkIDs != Numeric {
			id = s.uniqueID(NamedID(s.opts.Root, uri))
		}
		if err := s.chunks.Add(chunkgraph.NewEntry(id, names[uri], uri)); err != nil {
			return err
		}
		s.anchors[uri] = id
		logger.Debug("Entry chunk created.", "chunk", id, "entry", names[uri], "uri", uri)
	}
	return nil
}

func (s *splitter) uniqueID(id string) string {
	candidate := id
	for n := 2; ; n++ {
		if _, taken := s.chunks.ByID(candidate); !taken {
			return candidate
		}
		candidate = id + "~" + strconv.Itoa(n)
	}
}

func (s *splitter) chunkIDs() []string {
	var ids []string
	for _, c := range s.chunks.Chunks() {
		ids = append(ids, c.ID)
	}
	return ids
}

// boundary reports whether uri anchors a chunk other than chunkID.
func (s *splitter) boundary(uri, chunkID string) bool {
	if !s.opts.CodeSplitting {
		return false
	}
	owner, ok := s.anchors[uri]
	return ok && owner != chunkID
}

// walk visits the modules statically reachable from start in breadth-first
// order without entering other chunks' anchors.
func (s *splitter) walk(start, chunkID string, visit func(uri string)) {
	visited := map[string]struct{}{start: {}}
	queue := []string{start}
	for len(queue) > 0 {
		uri := queue[0]
		queue = queue[1:]
		visit(uri)

		m, ok := s.modules.ModuleByURI(uri)
		if !ok {
			continue
		}
		for _, dep := range s.modules.DependedModules(m) {
			if _, seen := visited[dep.URI]; seen || s.boundary(dep.URI, chunkID) {
				continue
			}
			visited[dep.URI] = struct{}{}
			queue = append(queue, dep.URI)
		}
	}
}

// relationGraph links chunk c to chunk e when a candidate module of c
// statically imports e's anchor.
func (s *splitter) relationGraph() (graph.Graph[string, string], error) {
	relations := graph.New(graph.StringHash, graph.Directed())
	for _, id := range s.chunkIDs() {
		if err := relations.AddVertex(id); err != nil {
			return nil, fmt.Errorf("failed to add chunk '%s' to relation graph: %w", id, err)
		}
	}

	for _, m := range s.modules.Modules() {
		cands := sortedKeys(s.candidates[m.URI])
		if len(cands) == 0 {
			continue
		}
		for _, dep := range s.modules.DependedModules(m) {
			target, ok := s.anchors[dep.URI]
			if !ok {
				continue
			}
			for _, c := range cands {
				if c == target {
					continue
				}
				err := relations.AddEdge(c, target)
				if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
					return nil, fmt.Errorf("failed to relate chunk '%s' to '%s': %w", c, target, err)
				}
			}
		}
	}
	return relations, nil
}

// reachability returns, per chunk, the set of other chunks it reaches.
func reachability(relations graph.Graph[string, string], ids []string) (map[string]map[string]struct{}, error) {
	reach := make(map[string]map[string]struct{}, len(ids))
	for _, id := range ids {
		set := make(map[string]struct{})
		err := graph.DFS(relations, id, func(other string) bool {
			if other != id {
				set[other] = struct{}{}
			}
			return false
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk relations of chunk '%s': %w", id, err)
		}
		reach[id] = set
	}
	return reach, nil
}

// placement returns the chunks uri is placed in.
func (s *splitter) placement(uri string, reach map[string]map[string]struct{}) []string {
	cands := sortedKeys(s.candidates[uri])
	if !s.opts.CodeSplitting || !s.opts.ReuseExistingChunk || len(cands) < 2 {
		return cands
	}

	reaches := func(from, to string) bool {
		_, ok := reach[from][to]
		return ok
	}

	var kept []string
	for _, c := range cands {
		dominated := false
		for _, other := range cands {
			if other == c || !reaches(c, other) {
				continue
			}
			// c loads other, which either holds uri alone or shares a
			// cycle with c and wins on id order.
			if !reaches(other, c) || other < c {
				dominated = true
				break
			}
		}
		if !dominated {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return cands[:1]
	}
	return kept
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
