package app

import (
	"github.com/vk/packgrid/internal/registry"
	"github.com/vk/packgrid/modules/css"
	"github.com/vk/packgrid/modules/js"
	"github.com/vk/packgrid/modules/json"
)

// coreModules is the definitive list of all parser modules that are compiled
// into the packgrid binary.
var coreModules = []registry.Module{
	&js.Module{},
	&css.Module{},
	&json.Module{},
}
