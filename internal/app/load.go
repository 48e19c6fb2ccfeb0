package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/vk/packgrid/internal/config"
	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/hcl"
	"github.com/vk/packgrid/internal/yamlconfig"
)

// DefaultLoader reads both HCL and YAML configuration.
func DefaultLoader() config.Loader {
	return config.Chain(hcl.NewLoader(), yamlconfig.NewLoader())
}

// loadEnv populates the process environment from a .env file before config
// files are evaluated. Variables already set are not overridden. A missing
// default .env is not an error; a missing explicit one is.
func loadEnv(ctx context.Context, envFile string) error {
	logger := ctxlog.FromContext(ctx)
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", envFile, err)
		}
		logger.Debug("Env file loaded.", "path", envFile)
		return nil
	}
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}
	logger.Debug("Env file loaded.", "path", ".env")
	return nil
}

// loadModel reads the configuration files, applies the overrides and fills
// in the project root.
func loadModel(ctx context.Context, appConfig *Config, loader config.Loader) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	model := &config.Model{}
	if appConfig.ConfigPath != "" {
		loaded, err := loader.Load(ctx, appConfig.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		model = loaded
		logger.Debug("Configuration loaded.", "path", appConfig.ConfigPath, "entries", len(model.Entries))
	}
	model.Merge(&appConfig.Overrides)

	if model.Root == "" {
		model.Root = defaultRoot(appConfig.ConfigPath)
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	return model, nil
}

// defaultRoot is the directory holding the config, or the working directory
// when there is none.
func defaultRoot(configPath string) string {
	if configPath == "" {
		return "."
	}
	if info, err := os.Stat(configPath); err == nil && info.IsDir() {
		return configPath
	}
	return filepath.Dir(configPath)
}
