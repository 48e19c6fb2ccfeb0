// Package json registers the parser for JSON modules, which are always leaves.
package json

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vk/packgrid/internal/module"
	"github.com/vk/packgrid/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Document is a parsed JSON module.
type Document struct {
	source string
}

func (d *Document) Render() string                { return d.source }
func (d *Document) Dependencies() []module.Import { return nil }

// Parse validates content as JSON.
func Parse(ctx context.Context, uri string, content []byte) (module.Module, error) {
	if !json.Valid(content) {
		return nil, fmt.Errorf("invalid JSON in %s", uri)
	}
	return &Document{source: string(content)}, nil
}

// Register registers the parser with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterParser(&registry.RegisteredParser{
		Name:        "json",
		SourceTypes: []module.SourceType{module.JSON},
		Parse:       Parse,
	})
}
