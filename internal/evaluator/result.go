package evaluator

import (
	"sort"

	"github.com/vk/metagraph/internal/nodeid"
)

// Values maps every node key to its resolved attribute.
type Values map[nodeid.Key]float64

// Vertex returns the attribute of vertex id.
func (v Values) Vertex(id int) (float64, bool) {
	val, ok := v[nodeid.VertexKey(id)]
	return val, ok
}

// Edge returns the attribute of edge id.
func (v Values) Edge(id int) (float64, bool) {
	val, ok := v[nodeid.EdgeKey(id)]
	return val, ok
}

// Len returns the number of resolved nodes.
func (v Values) Len() int { return len(v) }

// Keys returns the resolved keys in enumeration order.
func (v Values) Keys() []nodeid.Key {
	keys := make([]nodeid.Key, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Result is the outcome of one evaluation pass.
type Result struct {
	// Values holds exactly one entry per vertex and per edge.
	Values Values
	// CycleBreaks lists the nodes that received the cycle default, in the
	// order the cycles were broken.
	CycleBreaks []nodeid.Key
}

// CycleBreakCount returns how many vertices and edges received a default.
func (r *Result) CycleBreakCount() (vertices, edges int) {
	for _, key := range r.CycleBreaks {
		if key.IsVertex() {
			vertices++
		} else {
			edges++
		}
	}
	return vertices, edges
}
