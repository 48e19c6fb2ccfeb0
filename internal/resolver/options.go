package resolver

// Options configures resolution.
type Options struct {
	// Extensions are appended, in order, to a path that does not name a file.
	Extensions []string
	// AliasFields are package.json fields consulted for remapping.
	AliasFields []string
	// MainFields are package.json fields naming a package's entry file.
	MainFields []string
	// CacheSize bounds the number of parsed package.json files kept.
	CacheSize int
}

// DefaultOptions returns the resolution settings used when none are configured.
func DefaultOptions() Options {
	return Options{
		Extensions:  []string{".tsx", ".jsx", ".ts", ".js", ".json"},
		AliasFields: []string{"browser"},
		MainFields:  []string{"main"},
		CacheSize:   512,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Extensions == nil {
		o.Extensions = def.Extensions
	}
	if o.AliasFields == nil {
		o.AliasFields = def.AliasFields
	}
	if len(o.MainFields) == 0 {
		o.MainFields = def.MainFields
	}
	if o.CacheSize <= 0 {
		o.CacheSize = def.CacheSize
	}
	return o
}
