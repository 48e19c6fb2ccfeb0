package module

import (
	"github.com/vk/packgrid/internal/dependency"
)

// Unassigned is the ExecOrder of a module that has not been numbered yet.
const Unassigned = -1

// Import is a raw dependency as reported by a parser, before it is bound to
// an importer.
type Import struct {
	Specifier string
	Kind      dependency.Kind
}

// Module is the opaque capability a parser plugin hands back. The core never
// inspects its content; it only asks for the raw dependency list and, during
// rendering, for the rendered output.
type Module interface {
	Render() string
	Dependencies() []Import
}

// GraphModule is a single vertex in the module graph.
type GraphModule struct {
	// URI is the canonical identity of the module.
	URI string
	// Module is the parsed capability produced by the registered parser.
	Module Module
	// SourceType records which parser family produced the module.
	SourceType SourceType
	// Dependencies lists the outgoing edges in declaration order.
	Dependencies []dependency.Dependency
	// ExecOrder is assigned once after the graph is closed.
	ExecOrder int
}

// New creates a graph module with an unassigned execution order.
func New(uri string, mod Module, sourceType SourceType, deps []dependency.Dependency) *GraphModule {
	return &GraphModule{
		URI:          uri,
		Module:       mod,
		SourceType:   sourceType,
		Dependencies: deps,
		ExecOrder:    Unassigned,
	}
}

// Ordered reports whether the execution order has been assigned.
func (m *GraphModule) Ordered() bool {
	return m.ExecOrder != Unassigned
}

// BindDependencies converts a parser's raw imports into dependencies owned by
// the importer uri, preserving declaration order.
func BindDependencies(importer string, imports []Import) []dependency.Dependency {
	deps := make([]dependency.Dependency, 0, len(imports))
	for _, imp := range imports {
		deps = append(deps, dependency.Dependency{
			Importer:  importer,
			Specifier: imp.Specifier,
			Kind:      imp.Kind,
		})
	}
	return deps
}
