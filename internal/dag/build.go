package dag

import (
	"context"
	"fmt"

	"github.com/vk/metagraph/internal/ctxlog"
	"github.com/vk/metagraph/internal/model"
	"github.com/vk/metagraph/internal/nodeid"
	"github.com/vk/metagraph/internal/rule"
)

// Build constructs the dependency graph of mg. Every vertex and edge gets an
// entry even when it has no dependencies. Unparseable rules and out-of-range
// references abort the build with a *NodeError.
func Build(ctx context.Context, mg *model.Metagraph) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting dependency graph construction.", "vertices", mg.NV(), "edges", mg.NE())
	graph := newGraph(mg.NV(), mg.NE())
	for _, edge := range mg.Edges() {
		graph.sources = append(graph.sources, edge.From)
	}

	// First pass: parse every rule once and create the nodes.
	if err := createNodes(mg, graph); err != nil {
		return nil, err
	}
	logger.Debug("Build: Node creation complete.", "node_count", graph.Len())

	// Second pass: link dependencies, vertices first, then edges.
	if err := linkVertices(mg, graph); err != nil {
		return nil, err
	}
	if err := linkEdges(mg, graph); err != nil {
		return nil, err
	}

	logger.Info("Dependency graph built.", "node_count", graph.Len())
	return graph, nil
}

// createNodes parses the rule of every vertex and edge and registers it.
func createNodes(mg *model.Metagraph, graph *Graph) error {
	for _, key := range mg.Keys() {
		raw, _ := mg.Rule(key)
		r, err := rule.Parse(key.Kind, raw)
		if err != nil {
			return &NodeError{Key: key, Rule: raw, Err: err}
		}
		if target, ok := r.Target(); ok && !target.InRange(mg.NV(), mg.NE()) {
			return referenceError(key, raw, target, mg.NV(), mg.NE())
		}
		graph.addNode(key, r)
	}
	return nil
}

// linkVertices adds the dependencies of `min` and `e <idx>` vertex rules.
func linkVertices(mg *model.Metagraph, graph *Graph) error {
	for v := 1; v <= mg.NV(); v++ {
		key := nodeid.VertexKey(v)
		r, _ := graph.Rule(key)

		switch r.Op {
		case rule.Min:
			for _, e := range mg.IncomingEdges(v) {
				if err := graph.addDependency(nodeid.EdgeKey(e), key); err != nil {
					return fmt.Errorf("linking %s: %w", key, err)
				}
			}
		case rule.EdgeRef:
			if err := graph.addDependency(nodeid.EdgeKey(r.Ref), key); err != nil {
				return fmt.Errorf("linking %s: %w", key, err)
			}
		}
	}
	return nil
}

// linkEdges adds the dependencies of `*` and `v <idx>` edge rules. A `*` edge
// depends on its source vertex first and then on every edge entering that
// source, looked up in the same incoming index the vertices use.
func linkEdges(mg *model.Metagraph, graph *Graph) error {
	for e := 1; e <= mg.NE(); e++ {
		key := nodeid.EdgeKey(e)
		r, _ := graph.Rule(key)

		switch r.Op {
		case rule.Product:
			edge, _ := mg.Edge(e)
			if err := graph.addDependency(nodeid.VertexKey(edge.From), key); err != nil {
				return fmt.Errorf("linking %s: %w", key, err)
			}
			for _, sibling := range mg.IncomingEdges(edge.From) {
				if err := graph.addDependency(nodeid.EdgeKey(sibling), key); err != nil {
					return fmt.Errorf("linking %s: %w", key, err)
				}
			}
		case rule.VertexRef:
			if err := graph.addDependency(nodeid.VertexKey(r.Ref), key); err != nil {
				return fmt.Errorf("linking %s: %w", key, err)
			}
		}
	}
	return nil
}
