// Package manifest renders a compilation as a JSON build manifest, modelled
// on the esbuild metafile: one record per input module and one per output
// chunk.
package manifest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vk/packgrid/internal/compiler"
)

// Manifest is the document written after a build.
type Manifest struct {
	Inputs  map[string]Input  `json:"inputs"`
	Outputs map[string]Output `json:"outputs"`
}

// Input describes one module, keyed by module id. Lazy lists the ids of the
// modules it loads through dynamic imports.
type Input struct {
	URI        string   `json:"uri"`
	SourceType string   `json:"sourceType"`
	Bytes      int      `json:"bytes"`
	ExecOrder  int      `json:"execOrder"`
	Imports    []Import `json:"imports"`
	Lazy       []string `json:"lazy,omitempty"`
}

// Import is one dependency edge of an input.
type Import struct {
	// Path is the module id of the target, or the raw specifier when external.
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	Original string `json:"original"`
	External bool   `json:"external,omitempty"`
}

// Output describes one chunk, keyed by chunk id.
type Output struct {
	Kind        string   `json:"kind"`
	EntryPoint  string   `json:"entryPoint,omitempty"`
	EntryModule string   `json:"entryModule,omitempty"`
	Modules     []string `json:"modules"`
	Bytes       int      `json:"bytes"`
}

// Build collects the manifest of a compilation.
func Build(comp *compiler.Compilation) *Manifest {
	m := &Manifest{
		Inputs:  make(map[string]Input),
		Outputs: make(map[string]Output),
	}
	graph := comp.ModuleGraph

	for _, mod := range graph.Modules() {
		in := Input{
			URI:        mod.URI,
			SourceType: mod.SourceType.String(),
			ExecOrder:  mod.ExecOrder,
			Imports:    []Import{},
		}
		if mod.Module != nil {
			in.Bytes = len(mod.Module.Render())
		}
		for _, dep := range mod.Dependencies {
			imp := Import{Kind: dep.Kind.String(), Original: dep.Specifier}
			if target, ok := graph.ModuleByDependency(dep); ok {
				imp.Path = comp.ModuleID(target)
			} else if uri, ok := graph.URIByDependency(dep); ok {
				imp.Path = uri
				imp.External = true
			} else {
				continue
			}
			in.Imports = append(in.Imports, imp)
		}
		for _, target := range graph.DynamicImports(mod) {
			in.Lazy = append(in.Lazy, comp.ModuleID(target))
		}
		m.Inputs[comp.ModuleID(mod)] = in
	}

	for _, c := range comp.ChunkGraph.Chunks() {
		out := Output{Kind: c.Kind.String(), EntryPoint: c.Name, Modules: []string{}}
		if entry, ok := graph.ModuleByURI(c.EntryURI); ok {
			out.EntryModule = comp.ModuleID(entry)
		}
		for _, mod := range c.OrderedModules(graph) {
			out.Modules = append(out.Modules, comp.ModuleID(mod))
			out.Bytes += m.Inputs[comp.ModuleID(mod)].Bytes
		}
		m.Outputs[c.ID] = out
	}
	return m
}

// Write encodes the manifest as indented JSON.
func (m *Manifest) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	return nil
}

// WriteFile writes the manifest to path.
func (m *Manifest) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create manifest file: %w", err)
	}
	if err := m.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
