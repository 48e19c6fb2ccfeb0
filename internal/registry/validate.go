package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/module"
)

// Validate checks that every required source type has a parser. It reports
// all missing types at once.
func (r *Registry) Validate(ctx context.Context, required ...module.SourceType) error {
	logger := ctxlog.FromContext(ctx)

	var errs []string
	for _, st := range required {
		p, ok := r.Parser(st)
		if !ok {
			errs = append(errs, fmt.Sprintf("source type '%s' has no registered parser", st))
			continue
		}
		if p.Parse == nil {
			errs = append(errs, fmt.Sprintf("parser '%s' for source type '%s' has no parse function", p.Name, st))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Registry validation passed.", "source_types", len(required))
	return nil
}
