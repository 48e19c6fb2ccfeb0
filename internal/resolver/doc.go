// Package resolver maps a dependency specifier to the canonical URI of the
// module it names.
//
// Entry dependencies are joined onto the project root. Dependencies with an
// importer follow node-style rules: relative and absolute paths are tried
// as files (with the configured extensions) and then as directories (through
// package.json "main" and index files), bare specifiers are looked up in
// node_modules directories walking up from the importer, and alias fields
// such as "browser" may remap or ignore a specifier. Node builtins and
// ignored modules resolve to the raw specifier, which callers treat as an
// external, non-path result.
package resolver
