package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/dependency"
	"github.com/vk/packgrid/internal/modulegraph"
	"golang.org/x/sync/semaphore"
)

const messageBuffer = 256

// Options tunes a scheduler run.
type Options struct {
	// MaxConcurrency bounds the number of running jobs. Zero means unbounded.
	MaxConcurrency int
	// FailFast cancels all jobs after the first real failure.
	FailFast bool
}

// Stats summarizes a finished run.
type Stats struct {
	Jobs       int
	Modules    int
	Duplicates int
	Externals  int
	Canceled   int
	Duration   time.Duration
}

// Scheduler builds module graphs.
type Scheduler struct {
	resolver Resolver
	loader   Loader
	parser   Parser
	opts     Options
}

// New creates a Scheduler wired to its collaborators.
func New(resolver Resolver, loader Loader, parser Parser, opts Options) *Scheduler {
	return &Scheduler{
		resolver: resolver,
		loader:   loader,
		parser:   parser,
		opts:     opts,
	}
}

// run is the state shared by the jobs of one Run call.
type run struct {
	s        *Scheduler
	visited  sync.Map // Key: canonical URI
	inflight atomic.Int64
	spawned  atomic.Int64
	messages chan message
	sem      *semaphore.Weighted
}

// Run discovers every module reachable from entries and records it in graph.
// It returns once no job is in flight. Failures are returned as a *BuildError;
// cancellation of ctx without other failures returns ctx.Err().
func (s *Scheduler) Run(ctx context.Context, graph *modulegraph.Graph, entries []dependency.Dependency) (Stats, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := &run{
		s:        s,
		messages: make(chan message, messageBuffer),
	}
	if s.opts.MaxConcurrency > 0 {
		r.sem = semaphore.NewWeighted(int64(s.opts.MaxConcurrency))
	}

	logger.Debug("Scheduler starting.", "entries", len(entries), "max_concurrency", s.opts.MaxConcurrency, "fail_fast", s.opts.FailFast)
	for _, dep := range entries {
		r.spawn(jobCtx, dep)
	}

	var stats Stats
	var failures []*JobError
	for r.inflight.Load() > 0 {
		msg := <-r.messages
		if msg.terminal() {
			r.inflight.Add(-1)
		}

		switch msg.kind {
		case dependencyResolved:
			graph.AddDependency(msg.dep, msg.uri)
		case externalResolved:
			stats.Externals++
			logger.Debug("Dependency is external.", "dependency", msg.dep.String(), "uri", msg.uri)
		case moduleReady:
			graph.AddModule(ctx, msg.module)
			stats.Modules++
		case jobFailed:
			switch {
			case errors.Is(msg.err, ErrDuplicateModule):
				stats.Duplicates++
			case errors.Is(msg.err, ErrCanceled):
				stats.Canceled++
			default:
				logger.Debug("Job failed.", "error", msg.err)
				failures = append(failures, msg.err)
				if s.opts.FailFast {
					cancel()
				}
			}
		}
	}

	stats.Jobs = int(r.spawned.Load())
	stats.Duration = time.Since(start)
	logger.Debug("Scheduler finished.",
		"jobs", stats.Jobs, "modules", stats.Modules, "duplicates", stats.Duplicates,
		"externals", stats.Externals, "failures", len(failures), "duration", stats.Duration)

	if len(failures) > 0 {
		return stats, newBuildError(failures)
	}
	if err := ctx.Err(); err != nil {
		return stats, err
	}
	return stats, nil
}
