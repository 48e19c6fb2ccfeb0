package scheduler

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/dependency"
	"github.com/vk/packgrid/internal/module"
	"github.com/vk/packgrid/internal/registry"
)

// spawn counts the job as in flight before starting it.
func (r *run) spawn(ctx context.Context, dep dependency.Dependency) {
	r.inflight.Add(1)
	r.spawned.Add(1)
	go r.job(ctx, dep)
}

func (r *run) send(msg message) {
	r.messages <- msg
}

func (r *run) fail(dep dependency.Dependency, uri string, kind, err error) {
	if err != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)) {
		kind = ErrCanceled
	}
	r.send(message{kind: jobFailed, err: &JobError{Kind: kind, Dependency: dep, URI: uri, Err: err}})
}

// job processes one dependency edge. It sends exactly one terminal message.
func (r *run) job(ctx context.Context, dep dependency.Dependency) {
	if r.sem != nil {
		if err := r.sem.Acquire(ctx, 1); err != nil {
			r.fail(dep, "", ErrCanceled, err)
			return
		}
		defer r.sem.Release(1)
	}
	if err := ctx.Err(); err != nil {
		r.fail(dep, "", ErrCanceled, err)
		return
	}
	ctx = ctxlog.With(ctx, "dependency", dep.String())
	logger := ctxlog.FromContext(ctx)

	uri, err := r.s.resolver.Resolve(ctx, dep)
	if err != nil {
		r.fail(dep, "", ErrResolution, err)
		return
	}
	r.send(message{kind: dependencyResolved, dep: dep, uri: uri})

	if !filepath.IsAbs(uri) {
		r.send(message{kind: externalResolved, dep: dep, uri: uri})
		return
	}

	if _, claimed := r.visited.LoadOrStore(uri, struct{}{}); claimed {
		r.fail(dep, uri, ErrDuplicateModule, nil)
		return
	}

	st, ok := module.SourceTypeFromURI(uri)
	if !ok {
		r.fail(dep, uri, ErrUnsupportedSourceType, fmt.Errorf("unknown extension %q", filepath.Ext(uri)))
		return
	}

	content, err := r.s.loader.Load(ctx, uri)
	if err != nil {
		r.fail(dep, uri, ErrLoad, err)
		return
	}

	mod, err := r.s.parser.Parse(ctx, st, uri, content)
	if err != nil {
		kind := ErrParse
		if errors.Is(err, registry.ErrUnsupported) {
			kind = ErrUnsupportedSourceType
		}
		r.fail(dep, uri, kind, err)
		return
	}

	deps := module.BindDependencies(uri, mod.Dependencies())
	for _, child := range deps {
		r.spawn(ctx, child)
	}
	logger.Debug("Module ready.", "uri", uri, "dependencies", len(deps))
	r.send(message{kind: moduleReady, module: module.New(uri, mod, st, deps)})
}
