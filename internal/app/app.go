package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/packgrid/internal/config"
	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/fsutil"
	"github.com/vk/packgrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	model    *config.Model
	fsys     fsutil.FS
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if err := loadEnv(ctx, appConfig.EnvFile); err != nil {
		return nil, err
	}

	model, err := loadModel(ctx, appConfig, loader)
	if err != nil {
		return nil, err
	}
	logger.Debug("Configuration loaded and translated into unified model.", "root", model.Root, "entries", len(model.Entries))

	if len(modules) == 0 {
		modules = coreModules
	}
	reg := registry.NewWithModules(modules...)
	logger.Debug("All parser modules registered.", "count", len(modules))

	if err := reg.Validate(ctx, reg.SourceTypes()...); err != nil {
		return nil, err
	}

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		model:    model,
		fsys:     fsutil.OS{},
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the effective configuration after overrides.
func (a *App) Model() *config.Model {
	return a.model
}
