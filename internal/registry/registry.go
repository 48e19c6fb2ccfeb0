package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/module"
)

// ErrUnsupported is returned when no parser is registered for a source type.
var ErrUnsupported = errors.New("no parser registered for source type")

// Module is the interface that all parser plugins must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// ParseFunc turns raw content into a module. It must be safe for concurrent use.
type ParseFunc func(ctx context.Context, uri string, content []byte) (module.Module, error)

// RegisteredParser holds a plugin's parse function and the source types it serves.
type RegisteredParser struct {
	Name        string
	SourceTypes []module.SourceType
	Parse       ParseFunc
}

// Registry maps source types to parsers for a single application instance.
type Registry struct {
	mu      sync.RWMutex
	parsers map[module.SourceType]*RegisteredParser
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		parsers: make(map[module.SourceType]*RegisteredParser),
	}
}

// RegisterParser registers p for each of its source types. A source type that
// is already claimed is taken over by p.
func (r *Registry) RegisterParser(p *RegisteredParser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, st := range p.SourceTypes {
		if prev, exists := r.parsers[st]; exists {
			slog.Warn("Parser registration overrides an earlier one.", "source_type", st.String(), "previous", prev.Name, "parser", p.Name)
		}
		slog.Debug("Registering parser.", "name", p.Name, "source_type", st.String())
		r.parsers[st] = p
	}
}

// Parser returns the parser registered for st.
func (r *Registry) Parser(st module.SourceType) (*RegisteredParser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[st]
	return p, ok
}

// Parse dispatches content to the parser registered for st.
func (r *Registry) Parse(ctx context.Context, st module.SourceType, uri string, content []byte) (module.Module, error) {
	p, ok := r.Parser(st)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, st)
	}
	ctxlog.FromContext(ctx).Debug("Parsing module.", "uri", uri, "parser", p.Name)
	return p.Parse(ctx, uri, content)
}

// SourceTypes returns the registered source types in ascending order.
func (r *Registry) SourceTypes() []module.SourceType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]module.SourceType, 0, len(r.parsers))
	for st := range r.parsers {
		types = append(types, st)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
