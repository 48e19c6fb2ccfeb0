package resolver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/dependency"
	"github.com/vk/packgrid/internal/fsutil"
)

// ErrNotFound is returned when a specifier names nothing on disk.
var ErrNotFound = errors.New("module not found")

// Resolver resolves dependencies against a project root. It is safe for
// concurrent use; parsed package.json files are shared through an LRU cache.
type Resolver struct {
	root      string
	fsys      fsutil.FS
	opts      Options
	manifests *lru.Cache[string, *packageManifest]
}

// New creates a Resolver for the project rooted at root.
func New(root string, fsys fsutil.FS, opts Options) (*Resolver, error) {
	opts = opts.withDefaults()
	cache, err := lru.New[string, *packageManifest](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest cache: %w", err)
	}
	return &Resolver{
		root:      filepath.Clean(root),
		fsys:      fsys,
		opts:      opts,
		manifests: cache,
	}, nil
}

// Resolve returns the canonical URI for dep. Builtins and ignored modules
// resolve to the raw specifier. A bare builtin name is only treated as a
// builtin when no installed package of that name is found, so browser
// polyfills such as "buffer" or "events" are bundled.
func (r *Resolver) Resolve(ctx context.Context, dep dependency.Dependency) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	logger := ctxlog.FromContext(ctx)

	if dep.IsEntry() {
		return filepath.Join(r.root, dep.Specifier), nil
	}

	spec := dep.Specifier
	if hasNodeScheme(spec) {
		logger.Debug("Specifier is a builtin, leaving unresolved.", "specifier", spec)
		return spec, nil
	}

	dir := filepath.Dir(dep.Importer)
	request := spec
	if isRelative(spec) {
		request = filepath.Join(dir, spec)
	}

	pkg, err := r.nearestManifest(dir)
	if err != nil {
		return "", err
	}
	if pkg != nil {
		if a, ok := pkg.lookup(request, r.opts.Extensions); ok {
			if a.ignored {
				logger.Debug("Specifier ignored by alias field.", "specifier", spec, "package", pkg.dir)
				return spec, nil
			}
			request = pkg.targetPath(a.target)
		}
	}

	resolved, found, err := r.resolveRequest(dir, request)
	if err != nil {
		return "", err
	}
	if !found {
		return "", fmt.Errorf("%w: %q from %s", ErrNotFound, spec, dep.Importer)
	}

	final, ignored, err := r.remap(resolved)
	if err != nil {
		return "", err
	}
	if ignored {
		return spec, nil
	}
	logger.Debug("Resolved specifier.", "specifier", spec, "importer", dep.Importer, "uri", final)
	return final, nil
}

func (r *Resolver) resolveRequest(dir, request string) (string, bool, error) {
	if filepath.IsAbs(request) {
		return r.resolvePath(request)
	}
	if hasNodeScheme(request) {
		return request, true, nil
	}
	resolved, found, err := r.resolveModule(dir, request)
	if err != nil || found || !IsBuiltin(request) {
		return resolved, found, err
	}
	return request, true, nil
}

// remap applies the alias fields of the package owning a resolved file.
func (r *Resolver) remap(resolved string) (string, bool, error) {
	if !filepath.IsAbs(resolved) {
		return resolved, false, nil
	}
	pkg, err := r.nearestManifest(filepath.Dir(resolved))
	if err != nil || pkg == nil {
		return resolved, false, err
	}
	a, ok := pkg.aliases[resolved]
	if !ok {
		return resolved, false, nil
	}
	if a.ignored {
		return "", true, nil
	}
	target, found, err := r.resolveRequest(pkg.dir, pkg.targetPath(a.target))
	if err != nil {
		return "", false, err
	}
	if !found {
		return "", false, fmt.Errorf("%w: alias %q in %s/package.json", ErrNotFound, a.target, pkg.dir)
	}
	return target, false, nil
}

func (r *Resolver) resolvePath(path string) (string, bool, error) {
	if file, ok := r.resolveFile(path); ok {
		return file, true, nil
	}
	if fsutil.IsDir(r.fsys, path) {
		return r.resolveDir(path)
	}
	return "", false, nil
}

func (r *Resolver) resolveFile(path string) (string, bool) {
	if fsutil.IsFile(r.fsys, path) {
		return path, true
	}
	for _, ext := range r.opts.Extensions {
		if fsutil.IsFile(r.fsys, path+ext) {
			return path + ext, true
		}
	}
	return "", false
}

func (r *Resolver) resolveDir(dir string) (string, bool, error) {
	pkg, err := r.manifestIn(dir)
	if err != nil {
		return "", false, err
	}
	if pkg != nil {
		mains := pkg.mains
		if pkg.mainAlias != "" {
			mains = append([]string{pkg.mainAlias}, mains...)
		}
		for _, main := range mains {
			target := filepath.Join(dir, main)
			if file, ok := r.resolveFile(target); ok {
				return file, true, nil
			}
			if file, ok := r.resolveFile(filepath.Join(target, "index")); ok {
				return file, true, nil
			}
		}
	}
	file, ok := r.resolveFile(filepath.Join(dir, "index"))
	return file, ok, nil
}

// resolveModule looks name up in every node_modules directory from dir to the
// file system root.
func (r *Resolver) resolveModule(dir, name string) (string, bool, error) {
	current := dir
	for {
		if filepath.Base(current) != "node_modules" {
			resolved, found, err := r.resolvePath(filepath.Join(current, "node_modules", name))
			if err != nil || found {
				return resolved, found, err
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", false, nil
		}
		current = parent
	}
}

func (r *Resolver) nearestManifest(dir string) (*packageManifest, error) {
	current := dir
	for {
		pkg, err := r.manifestIn(current)
		if err != nil || pkg != nil {
			return pkg, err
		}
		parent := filepath.Dir(current)
		if parent == current {
			return nil, nil
		}
		current = parent
	}
}

// manifestIn returns the package.json held directly in dir, or nil.
func (r *Resolver) manifestIn(dir string) (*packageManifest, error) {
	if pkg, ok := r.manifests.Get(dir); ok {
		return pkg, nil
	}
	data, err := r.fsys.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.manifests.Add(dir, nil)
			return nil, nil
		}
		return nil, err
	}
	pkg, err := parseManifest(dir, data, r.opts)
	if err != nil {
		return nil, err
	}
	r.manifests.Add(dir, pkg)
	return pkg, nil
}
