package app

import (
	"context"
	"fmt"

	"github.com/vk/packgrid/internal/compiler"
	"github.com/vk/packgrid/internal/config"
	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/manifest"
	"github.com/vk/packgrid/internal/resolver"
	"github.com/vk/packgrid/internal/splitter"
)

// Run executes the build described by the loaded configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	opts, err := compilerOptions(a.model)
	if err != nil {
		return err
	}
	c, err := compiler.New(opts, a.fsys, a.registry)
	if err != nil {
		return fmt.Errorf("failed to create compiler: %w", err)
	}

	a.logger.Info("🚀 Starting build...", "root", c.Options().Root, "entries", len(opts.Entries))
	comp, err := c.Compile(ctx)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	a.logger.Info("🏁 Build finished.",
		"modules", comp.ModuleGraph.Len(),
		"chunks", comp.ChunkGraph.Len(),
		"duplicates", comp.Stats.Duplicates,
		"duration", comp.Stats.Duration,
	)

	man := manifest.Build(comp)
	if a.model.Manifest != "" {
		if err := man.WriteFile(a.model.Manifest); err != nil {
			return err
		}
		a.logger.Info("Manifest written.", "path", a.model.Manifest)
	}

	fmt.Fprintln(a.outW, renderSummary(comp, man))
	a.logger.Debug("App.Run method finished.")
	return nil
}

// compilerOptions maps the configuration model onto compiler options,
// filling unset values with their defaults.
func compilerOptions(m *config.Model) (compiler.Options, error) {
	chunkIDs, err := splitter.ParseIDAlgo(m.Optimization.ChunkIDs)
	if err != nil {
		return compiler.Options{}, fmt.Errorf("invalid chunk_ids: %w", err)
	}
	moduleIDs, err := splitter.ParseIDAlgo(m.Optimization.ModuleIDs)
	if err != nil {
		return compiler.Options{}, fmt.Errorf("invalid module_ids: %w", err)
	}

	entries := make([]compiler.Entry, 0, len(m.Entries))
	for _, e := range m.Entries {
		entries = append(entries, compiler.Entry{Name: e.Name, Path: e.Path})
	}

	return compiler.Options{
		Root:    m.Root,
		Entries: entries,
		Resolve: resolver.Options{
			Extensions:  m.Resolve.Extensions,
			AliasFields: m.Resolve.AliasFields,
			MainFields:  m.Resolve.MainFields,
		},
		Optimization: compiler.Optimization{
			ChunkIDs:           chunkIDs,
			ModuleIDs:          moduleIDs,
			CodeSplitting:      config.BoolOr(m.Optimization.CodeSplitting, true),
			ReuseExistingChunk: config.BoolOr(m.Optimization.ReuseExistingChunk, true),
		},
		MaxConcurrency: config.IntOr(m.MaxConcurrency, 0),
		FailFast:       config.BoolOr(m.FailFast, false),
	}, nil
}
