// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file discovery, parsing, evaluation
// against an `env` variable object and translation into the config model.
//
// A configuration file looks like:
//
//	root = env.PROJECT_ROOT
//
//	entry "main" {
//	  path = "src/main.js"
//	}
//
//	optimization {
//	  chunk_ids      = "named"
//	  code_splitting = true
//	}
package hcl
