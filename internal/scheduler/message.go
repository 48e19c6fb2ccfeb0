package scheduler

import (
	"github.com/vk/packgrid/internal/dependency"
	"github.com/vk/packgrid/internal/module"
)

type messageKind int

const (
	// dependencyResolved records an edge. It is not terminal.
	dependencyResolved messageKind = iota
	// externalResolved ends a job whose URI is not a path.
	externalResolved
	// moduleReady ends a job that produced a module.
	moduleReady
	// jobFailed ends a job with an error.
	jobFailed
)

type message struct {
	kind   messageKind
	dep    dependency.Dependency
	uri    string
	module *module.GraphModule
	err    *JobError
}

func (m message) terminal() bool {
	return m.kind != dependencyResolved
}
