package resolver

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
)

// alias is the target of an alias-field mapping.
type alias struct {
	// ignored is set when the field maps the key to false.
	ignored bool
	target  string
}

// packageManifest is the subset of package.json the resolver understands.
type packageManifest struct {
	dir   string
	mains []string
	// mainAlias is set when an alias field is a plain string, replacing mains.
	mainAlias string
	// aliases maps either a bare module name or an absolute file path (for
	// keys starting with ".") to its replacement.
	aliases map[string]alias
}

func parseManifest(dir string, data []byte, opts Options) (*packageManifest, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("invalid package.json in %s: %w", dir, err)
	}

	pkg := &packageManifest{dir: dir, aliases: make(map[string]alias)}
	for _, name := range opts.MainFields {
		var main string
		if raw, ok := fields[name]; ok && json.Unmarshal(raw, &main) == nil && main != "" {
			pkg.mains = append(pkg.mains, main)
		}
	}

	for _, name := range opts.AliasFields {
		raw, ok := fields[name]
		if !ok {
			continue
		}
		var whole string
		if err := json.Unmarshal(raw, &whole); err == nil {
			if pkg.mainAlias == "" {
				pkg.mainAlias = whole
			}
			continue
		}
		var mapping map[string]any
		if err := json.Unmarshal(raw, &mapping); err != nil {
			return nil, fmt.Errorf("invalid %q field in %s/package.json: %w", name, dir, err)
		}
		for key, value := range mapping {
			k := pkg.aliasKey(key)
			if _, seen := pkg.aliases[k]; seen {
				continue
			}
			switch v := value.(type) {
			case bool:
				if !v {
					pkg.aliases[k] = alias{ignored: true}
				}
			case string:
				pkg.aliases[k] = alias{target: v}
			}
		}
	}
	return pkg, nil
}

func (p *packageManifest) aliasKey(key string) string {
	if strings.HasPrefix(key, ".") || strings.HasPrefix(key, "/") {
		return filepath.Join(p.dir, key)
	}
	return key
}

// lookup finds an alias for a bare module name or for an absolute file path,
// trying the path with each extension appended.
func (p *packageManifest) lookup(key string, extensions []string) (alias, bool) {
	if a, ok := p.aliases[key]; ok {
		return a, true
	}
	if !filepath.IsAbs(key) {
		return alias{}, false
	}
	for _, ext := range extensions {
		if a, ok := p.aliases[key+ext]; ok {
			return a, true
		}
	}
	return alias{}, false
}

// targetPath turns an alias target into either an absolute path inside the
// package or a bare module name.
func (p *packageManifest) targetPath(target string) string {
	if isRelative(target) {
		return filepath.Join(p.dir, target)
	}
	return target
}

func isRelative(specifier string) bool {
	return specifier == "." || specifier == ".." ||
		strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../")
}
