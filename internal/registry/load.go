package registry

// NewWithModules creates a registry and registers every module in order, so
// later modules override earlier ones on conflicting source types.
func NewWithModules(modules ...Module) *Registry {
	reg := New()
	for _, mod := range modules {
		mod.Register(reg)
	}
	return reg
}
