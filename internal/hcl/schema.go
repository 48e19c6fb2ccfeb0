package hcl

// fileRoot is a struct used to decode all possible top-level content of a file.
type fileRoot struct {
	Root           *string            `hcl:"root,optional"`
	MaxConcurrency *int               `hcl:"max_concurrency,optional"`
	FailFast       *bool              `hcl:"fail_fast,optional"`
	Manifest       *string            `hcl:"manifest,optional"`
	Entries        []*entryBlock      `hcl:"entry,block"`
	Resolve        *resolveBlock      `hcl:"resolve,block"`
	Optimization   *optimizationBlock `hcl:"optimization,block"`
}

type entryBlock struct {
	Name string `hcl:"name,label"`
	Path string `hcl:"path"`
}

type resolveBlock struct {
	Extensions  []string `hcl:"extensions,optional"`
	AliasFields []string `hcl:"alias_fields,optional"`
	MainFields  []string `hcl:"main_fields,optional"`
}

type optimizationBlock struct {
	ChunkIDs           *string `hcl:"chunk_ids,optional"`
	ModuleIDs          *string `hcl:"module_ids,optional"`
	CodeSplitting      *bool   `hcl:"code_splitting,optional"`
	ReuseExistingChunk *bool   `hcl:"reuse_existing_chunk,optional"`
}
