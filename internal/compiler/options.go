package compiler

import (
	"github.com/vk/packgrid/internal/resolver"
	"github.com/vk/packgrid/internal/splitter"
)

// Entry is a named build entry. Path is relative to the project root.
type Entry struct {
	Name string
	Path string
}

// Optimization groups the chunking switches.
type Optimization struct {
	ChunkIDs           splitter.IDAlgo
	ModuleIDs          splitter.IDAlgo
	CodeSplitting      bool
	ReuseExistingChunk bool
}

// DefaultOptimization returns named ids with code splitting and chunk reuse on.
func DefaultOptimization() Optimization {
	return Optimization{
		ChunkIDs:           splitter.Named,
		ModuleIDs:          splitter.Named,
		CodeSplitting:      true,
		ReuseExistingChunk: true,
	}
}

// Options configures a Compiler.
type Options struct {
	Root           string
	Entries        []Entry
	Resolve        resolver.Options
	Optimization   Optimization
	MaxConcurrency int
	FailFast       bool
}
