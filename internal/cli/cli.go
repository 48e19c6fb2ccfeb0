package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/packgrid/internal/app"
	"github.com/vk/packgrid/internal/config"
	"github.com/vk/packgrid/internal/splitter"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("packgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
packgrid - A concurrent module graph builder and chunk splitter.

Usage:
  packgrid [options] [CONFIG_PATH]

Arguments:
  CONFIG_PATH
    Path to a .hcl/.yaml file or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	var entries entryList
	configFlag := flagSet.String("config", "", "Path to the config file or directory.")
	cFlag := flagSet.String("c", "", "Path to the config file or directory (shorthand).")
	envFileFlag := flagSet.String("env-file", "", "Path to a .env file loaded before the config. Defaults to ./.env when present.")
	rootFlag := flagSet.String("root", "", "Project root; overrides the config.")
	flagSet.Var(&entries, "entry", "Entry as name=path, relative to the root. Repeatable.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	concurrencyFlag := flagSet.Int("max-concurrency", 0, "Maximum number of concurrent resolution jobs. 0 is unbounded.")
	chunkIDsFlag := flagSet.String("chunk-ids", "", "Chunk id algorithm. Options: 'named' or 'numeric'.")
	moduleIDsFlag := flagSet.String("module-ids", "", "Module id algorithm. Options: 'named' or 'numeric'.")
	manifestFlag := flagSet.String("manifest", "", "Write the JSON build manifest to this path.")
	noSplitFlag := flagSet.Bool("no-code-splitting", false, "Put everything an entry reaches into its chunk.")
	noReuseFlag := flagSet.Bool("no-reuse-chunks", false, "Keep shared modules in every chunk that reaches them.")
	failFastFlag := flagSet.Bool("fail-fast", false, "Stop the build at the first failure.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *configFlag != "" {
		path = *configFlag
	} else if *cFlag != "" {
		path = *cFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Config path determined.", "path", path)

	if path == "" && len(entries) == 0 {
		slog.Debug("No config path or entries provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	// Only flags given on the command line override the config file.
	overrides := config.Model{
		Root:     *rootFlag,
		Entries:  entries,
		Manifest: *manifestFlag,
	}
	overrides.Optimization.ChunkIDs = strings.ToLower(*chunkIDsFlag)
	overrides.Optimization.ModuleIDs = strings.ToLower(*moduleIDsFlag)
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-concurrency":
			overrides.MaxConcurrency = concurrencyFlag
		case "no-code-splitting":
			split := !*noSplitFlag
			overrides.Optimization.CodeSplitting = &split
		case "no-reuse-chunks":
			reuse := !*noReuseFlag
			overrides.Optimization.ReuseExistingChunk = &reuse
		case "fail-fast":
			overrides.FailFast = failFastFlag
		}
	})
	for name, algo := range map[string]string{"chunk-ids": *chunkIDsFlag, "module-ids": *moduleIDsFlag} {
		if _, err := splitter.ParseIDAlgo(algo); err != nil {
			return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid %s: %v", name, err)}
		}
	}
	if *concurrencyFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid max-concurrency: must not be negative"}
	}
	slog.Debug("CLI parameter validation complete.")

	cfg, err := app.NewConfig(app.Config{
		ConfigPath: path,
		EnvFile:    *envFileFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config_path", cfg.ConfigPath, "entries", len(entries))
	return cfg, false, nil
}
