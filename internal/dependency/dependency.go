// internal/dependency/dependency.go
package dependency

import "fmt"

// Dependency is a reference from an importer module to a specifier. Its
// identity is the triple itself; two edges written identically in the same
// importer collapse to one key.
type Dependency struct {
	// Importer is the canonical URI of the module containing the reference.
	// It is empty for entry dependencies.
	Importer string
	// Specifier is the reference as written, e.g. `./a.js` in `import './a.js'`.
	Specifier string
	Kind      Kind
}

// Entry returns an importer-less dependency for an entry path.
func Entry(path string) Dependency {
	return Dependency{Specifier: path, Kind: Import}
}

// IsEntry reports whether the dependency has no importer.
func (d Dependency) IsEntry() bool {
	return d.Importer == ""
}

// String renders the dependency for logs and error messages.
func (d Dependency) String() string {
	if d.IsEntry() {
		return fmt.Sprintf("%s %q", d.Kind, d.Specifier)
	}
	return fmt.Sprintf("%s %q from %s", d.Kind, d.Specifier, d.Importer)
}

// Less orders dependencies by importer, then specifier, then kind. It gives
// reports a stable order independent of job completion order.
func Less(a, b Dependency) bool {
	if a.Importer != b.Importer {
		return a.Importer < b.Importer
	}
	if a.Specifier != b.Specifier {
		return a.Specifier < b.Specifier
	}
	return a.Kind < b.Kind
}
