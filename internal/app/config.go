package app

import (
	"errors"

	"github.com/vk/packgrid/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // .hcl/.yaml file or a directory of them
	EnvFile    string // optional; .env in the working directory otherwise

	LogFormat string
	LogLevel  string

	// Overrides are applied on top of the loaded configuration.
	Overrides config.Model
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" && len(cfg.Overrides.Entries) == 0 {
		return nil, errors.New("a config path or at least one entry is required")
	}
	return &cfg, nil
}
