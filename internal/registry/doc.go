// Package registry provides the central "glue" for the parser plugin system.
//
// Plugins under modules/ implement Module and register one RegisteredParser
// per family of source types. During a build the scheduler hands every loaded
// module to the registry, which dispatches on the module's exact source type.
// When two plugins claim the same source type the last registration wins.
package registry
