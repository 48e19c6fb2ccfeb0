// Package config defines the format-agnostic configuration model for a build,
// along with the Loader interface for reading it from various sources.
//
// The `config.Model` is the single source of truth for the `app` package,
// which turns it into compiler options. Concrete loaders, such as HCL and
// YAML, are provided in separate packages.
package config
