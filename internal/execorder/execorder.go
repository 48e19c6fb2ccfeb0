// Package execorder numbers the modules of a closed graph.
//
// Numbering is a depth-first walk with an explicit stack, seeded with the
// entries in the given order. A module receives its number when it is popped,
// after its static dependencies have been pushed but before they are visited.
// The result is a pop-order numbering rather than a topological one: a module
// is numbered before the dependencies it pulls in. Entries are pushed in
// order and popped last-in-first-out, so the last entry is numbered first.
package execorder

import (
	"context"
	"fmt"

	"github.com/vk/packgrid/internal/ctxlog"
	"github.com/vk/packgrid/internal/module"
	"github.com/vk/packgrid/internal/modulegraph"
)

// Assign writes ExecOrder for every module reachable from entries and returns
// the URIs in the order they were numbered. Modules unreachable through
// static edges keep module.Unassigned.
func Assign(ctx context.Context, graph *modulegraph.Graph, entries []string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	stack := make([]string, 0, len(entries))
	for _, uri := range entries {
		if _, ok := graph.ModuleByURI(uri); !ok {
			return nil, fmt.Errorf("entry module '%s' not found in graph", uri)
		}
		stack = append(stack, uri)
	}

	visited := make(map[string]struct{}, graph.Len())
	order := make([]string, 0, graph.Len())
	next := 0

	for len(stack) > 0 {
		uri := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[uri]; seen {
			continue
		}
		visited[uri] = struct{}{}

		m, _ := graph.ModuleByURI(uri)
		deps := graph.DependedModules(m)
		for i := len(deps) - 1; i >= 0; i-- {
			stack = append(stack, deps[i].URI)
		}

		if err := graph.SetExecOrder(uri, next); err != nil {
			return nil, err
		}
		order = append(order, uri)
		next++
	}

	logger.Debug("Execution order assigned.", "modules", len(order), "unreached", graph.Len()-len(order))
	return order, nil
}

// Unordered returns the modules that were not reached by Assign.
func Unordered(graph *modulegraph.Graph) []*module.GraphModule {
	var out []*module.GraphModule
	for _, m := range graph.Modules() {
		if !m.Ordered() {
			out = append(out, m)
		}
	}
	return out
}
