// Package js registers the parser for JavaScript and TypeScript sources.
package js

import (
	"context"
	"fmt"

	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/module"
	"github.com/vk/packgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Script is a parsed JavaScript-family module.
type Script struct {
	source  string
	imports []module.Import
}

// Render returns the module source unchanged.
func (s *Script) Render() string { return s.source }

// Dependencies returns the imports in the order they appear in the source.
func (s *Script) Dependencies() []module.Import { return s.imports }

// Parse scans content for import declarations, re-exports, require calls
// and dynamic imports. Markup text in JSX and TSX can trip the lexer, so for
// those the imports found before the error are kept.
func Parse(ctx context.Context, uri string, content []byte) (module.Module, error) {
	source := string(content)
	imports, err := Scan(source)
	if err != nil {
		st, _ := module.SourceTypeFromURI(uri)
		if st != module.JSX && st != module.TSX {
			return nil, fmt.Errorf("failed to scan %s: %w", uri, err)
		}
		ctxlog.FromContext(ctx).Debug("Scan stopped early.", "uri", uri, "error", err)
	}
	return &Script{source: source, imports: imports}, nil
}

// Register registers the parser with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterParser(&registry.RegisteredParser{
		Name:        "js",
		SourceTypes: []module.SourceType{module.JS, module.JSX, module.TS, module.TSX},
		Parse:       Parse,
	})
}
