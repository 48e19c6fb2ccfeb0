// internal/dependency/kind.go
package dependency

import "fmt"

// Kind is the syntactic form that produced a dependency.
type Kind int

const (
	// Import is a static ES module import (`import x from "./a"`).
	Import Kind = iota
	// Require is a CommonJS call (`require("./a")`).
	Require
	// DynamicImport is an `import("./a")` expression. Dynamic edges are
	// recorded in the graph but never traversed eagerly.
	DynamicImport
	// AtImport is a CSS `@import` rule.
	AtImport
)

var kindNames = map[Kind]string{
	Import:        "import",
	Require:       "require",
	DynamicImport: "dynamic-import",
	AtImport:      "at-import",
}

// String returns the canonical lowercase name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// IsStatic reports whether edges of this kind take part in eager traversal.
func (k Kind) IsStatic() bool {
	return k != DynamicImport
}
