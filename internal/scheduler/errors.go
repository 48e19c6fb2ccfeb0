package scheduler

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/packgrid/internal/dependency"
)

var (
	// ErrResolution marks a specifier that could not be resolved.
	ErrResolution = errors.New("resolution failure")
	// ErrLoad marks content that could not be loaded.
	ErrLoad = errors.New("load failure")
	// ErrUnsupportedSourceType marks a URI no parser is registered for.
	ErrUnsupportedSourceType = errors.New("unsupported source type")
	// ErrParse marks content the registered parser rejected.
	ErrParse = errors.New("parse failure")
	// ErrDuplicateModule marks a job that found its URI already claimed.
	ErrDuplicateModule = errors.New("duplicate module")
	// ErrCanceled marks a job stopped by context cancellation.
	ErrCanceled = errors.New("job canceled")
)

// JobError describes the failure of a single resolution job.
type JobError struct {
	// Kind is one of the sentinel errors of this package.
	Kind       error
	Dependency dependency.Dependency
	// URI is set when the failure happened after resolution.
	URI string
	Err error
}

func (e *JobError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	b.WriteString(": ")
	b.WriteString(e.Dependency.String())
	if e.URI != "" {
		fmt.Fprintf(&b, " (%s)", e.URI)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the failure kind and its cause to errors.Is and errors.As.
func (e *JobError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// BuildError aggregates every failure observed during one build.
type BuildError struct {
	Failures []*JobError
}

func newBuildError(failures []*JobError) *BuildError {
	sort.SliceStable(failures, func(i, j int) bool {
		return dependency.Less(failures[i].Dependency, failures[j].Dependency)
	})
	return &BuildError{Failures: failures}
}

func (e *BuildError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "build failed with %d error(s):", len(e.Failures))
	for _, f := range e.Failures {
		b.WriteString("\n  - ")
		b.WriteString(f.Error())
	}
	return b.String()
}

func (e *BuildError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f
	}
	return errs
}
