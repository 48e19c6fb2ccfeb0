package testutil

import (
	"github.com/vk/packgrid/internal/registry"
	"github.com/vk/packgrid/modules/css"
	"github.com/vk/packgrid/modules/js"
	"github.com/vk/packgrid/modules/json"
)

// WithCoreParsers returns the built-in parser modules followed by extra, so
// extra parsers override the built-in ones for their source types.
func WithCoreParsers(extra ...registry.Module) []registry.Module {
	return append([]registry.Module{&js.Module{}, &css.Module{}, &json.Module{}}, extra...)
}
