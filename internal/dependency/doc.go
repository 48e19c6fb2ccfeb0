// internal/dependency/doc.go

/*
Package dependency defines the edge key of the module graph: a specifier as
it was written inside an importer, together with the kind of reference that
produced it.

A Dependency is a comparable value and is used directly as a map key. Entry
dependencies have no importer.
*/
package dependency
