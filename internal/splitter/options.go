package splitter

import (
	"fmt"
	"path/filepath"
	"strings"
)

// IDAlgo selects how chunk and module ids are derived.
type IDAlgo string

const (
	// Named ids are derived from the path relative to the project root.
	Named IDAlgo = "named"
	// Numeric ids are sequential.
	Numeric IDAlgo = "numeric"
)

// ParseIDAlgo validates a configured id strategy. Empty means Named.
func ParseIDAlgo(raw string) (IDAlgo, error) {
	switch IDAlgo(strings.ToLower(raw)) {
	case "", Named:
		return Named, nil
	case Numeric:
		return Numeric, nil
	}
	return "", fmt.Errorf("unknown id algorithm %q: must be 'named' or 'numeric'", raw)
}

// Entry is a named entry resolved to its module.
type Entry struct {
	Name string
	URI  string
}

// Options configures a split.
type Options struct {
	Root     string
	ChunkIDs IDAlgo
	// CodeSplitting makes anchors boundaries and enables pruning. Without it
	// every entry chunk holds everything its entry reaches.
	CodeSplitting bool
	// ReuseExistingChunk enables dominance pruning.
	ReuseExistingChunk bool
}

// NamedID flattens the path of uri relative to root into an identifier:
// "src/main.js" becomes "src_main_js".
func NamedID(root, uri string) string {
	rel, err := filepath.Rel(root, uri)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = strings.TrimPrefix(filepath.ToSlash(uri), "/")
	}
	rel = filepath.ToSlash(rel)

	ext := filepath.Ext(rel)
	id := strings.ReplaceAll(strings.TrimSuffix(rel, ext), "/", "_")
	if ext != "" {
		id += "_" + strings.TrimPrefix(ext, ".")
	}
	return id
}
