package testutil

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/packgrid/internal/app"
	"github.com/vk/packgrid/internal/config"
	"github.com/vk/packgrid/internal/manifest"
	"github.com/vk/packgrid/internal/registry"
)

// HarnessResult holds the outcomes of a system test build.
type HarnessResult struct {
	Dir       string
	LogOutput string
	Err       error
	App       *app.App
	// Manifest is nil when the build failed.
	Manifest *manifest.Manifest
}

// RunBuild writes files into a fresh project directory, loads every config
// file found there and runs the build.
func RunBuild(t *testing.T, files map[string]string, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunBuildWithContext(context.Background(), t, files, nil, modules...)
}

// RunBuildWithContext is RunBuild with a caller context. Non-nil overrides
// are applied on top of the loaded configuration.
func RunBuildWithContext(ctx context.Context, t *testing.T, files map[string]string, overrides *config.Model, modules ...registry.Module) *HarnessResult {
	t.Helper()

	dir := app.WriteProject(t, t.TempDir(), files)
	manifestPath := filepath.Join(dir, "manifest.json")

	appConfig := &app.Config{
		ConfigPath: dir,
		LogLevel:   "debug",
		LogFormat:  "text",
	}
	if overrides != nil {
		appConfig.Overrides = *overrides
	}
	appConfig.Overrides.Manifest = manifestPath

	logBuffer := &app.SafeBuffer{}
	result := &HarnessResult{Dir: dir}
	defer func() {
		result.LogOutput = logBuffer.String()
		if os.Getenv("PACKGRID_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
		}
	}()

	testApp, err := app.NewApp(logBuffer, appConfig, app.DefaultLoader(), modules...)
	if err != nil {
		result.Err = err
		return result
	}
	result.App = testApp

	if result.Err = testApp.Run(ctx); result.Err != nil {
		return result
	}

	data, err := os.ReadFile(manifestPath)
	require.NoError(t, err)
	result.Manifest = &manifest.Manifest{}
	require.NoError(t, json.Unmarshal(data, result.Manifest))
	return result
}
