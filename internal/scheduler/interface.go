package scheduler

import (
	"context"

	"github.com/vk/packgrid/internal/dependency"
	"github.com/vk/packgrid/internal/module"
)

// Resolver maps a dependency to a canonical URI. A URI that is not an
// absolute path is an external module and is not loaded.
type Resolver interface {
	Resolve(ctx context.Context, dep dependency.Dependency) (string, error)
}

// Loader returns the raw content stored at a URI.
type Loader interface {
	Load(ctx context.Context, uri string) ([]byte, error)
}

// Parser turns content into a module according to its source type.
type Parser interface {
	Parse(ctx context.Context, st module.SourceType, uri string, content []byte) (module.Module, error)
}
