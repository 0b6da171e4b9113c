package evaluator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vk/metagraph/internal/ctxlog"
	"github.com/vk/metagraph/internal/dag"
	"github.com/vk/metagraph/internal/nodeid"
	"github.com/vk/metagraph/internal/rule"
)

const (
	// VertexCycleDefault is assigned to a vertex re-entered through a cycle.
	VertexCycleDefault = 0.0
	// EdgeCycleDefault is assigned to an edge re-entered through a cycle.
	EdgeCycleDefault = 1.0
)

// CycleDefault returns the value a node of the given kind receives when its
// resolution re-enters itself.
func CycleDefault(kind nodeid.Kind) float64 {
	if kind == nodeid.Vertex {
		return VertexCycleDefault
	}
	return EdgeCycleDefault
}

// Evaluator owns the state of a single evaluation pass over a graph.
type Evaluator struct {
	graph  *dag.Graph
	logger *slog.Logger

	values      Values
	inProgress  map[nodeid.Key]struct{}
	cycleBreaks []nodeid.Key
}

// New creates an Evaluator for g. The logger is taken from ctx.
func New(ctx context.Context, g *dag.Graph) *Evaluator {
	return &Evaluator{
		graph:      g,
		logger:     ctxlog.FromContext(ctx),
		values:     make(Values, g.Len()),
		inProgress: make(map[nodeid.Key]struct{}),
	}
}

// Resolve returns the attribute of key, computing it and everything it
// depends on if necessary. Repeated calls return the memoized value.
func (ev *Evaluator) Resolve(key nodeid.Key) (float64, error) {
	if !ev.graph.Has(key) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownNode, key)
	}
	return ev.resolve(key), nil
}

// Run resolves every vertex and then every edge and returns the result.
func (ev *Evaluator) Run() *Result {
	for _, key := range ev.graph.Keys() {
		ev.resolve(key)
	}

	values := make(Values, len(ev.values))
	for key, val := range ev.values {
		values[key] = val
	}
	return &Result{
		Values:      values,
		CycleBreaks: append([]nodeid.Key(nil), ev.cycleBreaks...),
	}
}

// ResolveKeys resolves only keys and what they depend on. The result holds
// exactly the requested keys; CycleBreaks covers everything resolved so far.
func (ev *Evaluator) ResolveKeys(keys []nodeid.Key) (*Result, error) {
	values := make(Values, len(keys))
	for _, key := range keys {
		val, err := ev.Resolve(key)
		if err != nil {
			return nil, err
		}
		values[key] = val
	}
	return &Result{
		Values:      values,
		CycleBreaks: append([]nodeid.Key(nil), ev.cycleBreaks...),
	}, nil
}

// resolve is the memoized depth-first step. The in-progress set, not the
// memo, is what detects re-entry: a node on the active path has no value yet.
func (ev *Evaluator) resolve(key nodeid.Key) float64 {
	if val, ok := ev.values[key]; ok {
		return val
	}

	if _, active := ev.inProgress[key]; active {
		def := CycleDefault(key.Kind)
		ev.values[key] = def
		ev.cycleBreaks = append(ev.cycleBreaks, key)
		ev.logger.Warn("Cycle detected, using default value.", "node", key.String(), "default", def)
		return def
	}

	ev.inProgress[key] = struct{}{}
	defer delete(ev.inProgress, key)

	deps := ev.graph.DependencyView(key)
	for _, dep := range deps {
		ev.resolve(dep)
	}

	val := ev.compute(key, deps)

	// A re-entrant visit may have fixed this node's value while its own frame
	// was still open; values are write-once, so the default stands.
	if fixed, ok := ev.values[key]; ok {
		ev.logger.Debug("Keeping cycle default over computed value.", "node", key.String(), "default", fixed, "computed", val)
		return fixed
	}

	ev.values[key] = val
	r, _ := ev.graph.Rule(key)
	ev.logger.Debug("Node resolved.", "node", key.String(), "rule", r.String(), "value", val)
	return val
}

// compute derives key's value from its rule. All dependencies are already
// memoized when it runs.
func (ev *Evaluator) compute(key nodeid.Key, deps []nodeid.Key) float64 {
	r, _ := ev.graph.Rule(key)

	switch r.Op {
	case rule.Literal:
		return r.Value

	case rule.Min:
		minVal, found := 0.0, false
		for _, dep := range deps {
			if !dep.IsEdge() {
				continue
			}
			if val := ev.values[dep]; !found || val < minVal {
				minVal, found = val, true
			}
		}
		return minVal

	case rule.EdgeRef, rule.VertexRef:
		target, _ := r.Target()
		return ev.values[target]

	case rule.Product:
		source, _ := ev.graph.Source(key.ID)
		prod := ev.values[nodeid.VertexKey(source)]
		for _, dep := range deps {
			if dep.IsEdge() {
				prod *= ev.values[dep]
			}
		}
		return prod

	default:
		// Unreachable: dag.Build only admits parsed rules.
		panic(fmt.Sprintf("evaluator: unsupported rule op %v for %s", r.Op, key))
	}
}
