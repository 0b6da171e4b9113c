package dag

import (
	"github.com/vk/metagraph/internal/nodeid"
)

// FindCycle returns the first dependency cycle found by a depth-first search
// started from each node in enumeration order, as a closed path whose first
// and last keys are equal. It returns nil when the graph is acyclic.
func (g *Graph) FindCycle() []nodeid.Key {
	visiting := make(map[nodeid.Key]bool)
	visited := make(map[nodeid.Key]bool)
	var stack []nodeid.Key

	var visit func(key nodeid.Key) []nodeid.Key
	visit = func(key nodeid.Key) []nodeid.Key {
		visiting[key] = true
		stack = append(stack, key)
		for _, dep := range g.DependencyView(key) {
			if visiting[dep] {
				return closeCycle(stack, dep)
			}
			if !visited[dep] {
				if cycle := visit(dep); cycle != nil {
					return cycle
				}
			}
		}
		stack = stack[:len(stack)-1]
		delete(visiting, key)
		visited[key] = true
		return nil
	}

	for _, key := range g.order {
		if !visited[key] {
			if cycle := visit(key); cycle != nil {
				return cycle
			}
		}
	}
	return nil
}

// DetectCycles returns a *CycleError describing the first cycle, or nil.
func (g *Graph) DetectCycles() error {
	if cycle := g.FindCycle(); cycle != nil {
		return &CycleError{Path: cycle}
	}
	return nil
}

// closeCycle extracts the stack segment starting at start and appends start
// again to close the loop.
func closeCycle(stack []nodeid.Key, start nodeid.Key) []nodeid.Key {
	idx := 0
	for i, key := range stack {
		if key == start {
			idx = i
			break
		}
	}
	cycle := append([]nodeid.Key(nil), stack[idx:]...)
	return append(cycle, start)
}
