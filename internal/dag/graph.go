package dag

import (
	"fmt"

	"github.com/vk/metagraph/internal/nodeid"
	"github.com/vk/metagraph/internal/rule"
)

// Graph maps every node key to the keys it depends on. It is read-only once
// Build returns and may be shared between goroutines.
type Graph struct {
	nv    int
	ne    int
	nodes map[nodeid.Key]*node
	order []nodeid.Key
	// sources[i] is the source vertex of edge i+1.
	sources []int
}

// node holds one key's parsed rule and its links in insertion order.
type node struct {
	key        nodeid.Key
	rule       rule.Rule
	deps       []nodeid.Key
	depSet     map[nodeid.Key]struct{}
	dependents []nodeid.Key
}

// newGraph creates an empty graph sized for nv vertices and ne edges.
func newGraph(nv, ne int) *Graph {
	return &Graph{
		nv:    nv,
		ne:    ne,
		nodes: make(map[nodeid.Key]*node, nv+ne),
		order: make([]nodeid.Key, 0, nv+ne),
	}
}

// addNode registers key with its parsed rule. Adding the same key twice
// keeps the first registration.
func (g *Graph) addNode(key nodeid.Key, r rule.Rule) {
	if _, ok := g.nodes[key]; ok {
		return
	}
	g.nodes[key] = &node{
		key:    key,
		rule:   r,
		depSet: make(map[nodeid.Key]struct{}),
	}
	g.order = append(g.order, key)
}

// addDependency records that `to` depends on `from`. Repeated links are
// ignored. A node may depend on itself: an edge looping on its source vertex
// with a `*` rule is one of its own siblings.
func (g *Graph) addDependency(from, to nodeid.Key) error {
	fromNode, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("dependency source node not found: %s", from)
	}
	toNode, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("dependency target node not found: %s", to)
	}

	if _, exists := toNode.depSet[from]; exists {
		return nil
	}
	toNode.depSet[from] = struct{}{}
	toNode.deps = append(toNode.deps, from)
	fromNode.dependents = append(fromNode.dependents, to)
	return nil
}

// Source returns the source vertex of edge id.
func (g *Graph) Source(edgeID int) (int, bool) {
	if edgeID < 1 || edgeID > len(g.sources) {
		return 0, false
	}
	return g.sources[edgeID-1], true
}

// NV returns the number of vertices the graph was built for.
func (g *Graph) NV() int { return g.nv }

// NE returns the number of edges the graph was built for.
func (g *Graph) NE() int { return g.ne }

// Len returns the number of nodes, always NV+NE.
func (g *Graph) Len() int { return len(g.order) }

// Keys returns all node keys in enumeration order.
func (g *Graph) Keys() []nodeid.Key {
	return append([]nodeid.Key(nil), g.order...)
}

// Has reports whether key is a node of the graph.
func (g *Graph) Has(key nodeid.Key) bool {
	_, ok := g.nodes[key]
	return ok
}

// Rule returns the parsed rule of key.
func (g *Graph) Rule(key nodeid.Key) (rule.Rule, bool) {
	n, ok := g.nodes[key]
	if !ok {
		return rule.Rule{}, false
	}
	return n.rule, true
}

// Dependencies returns the keys that key depends on, in link order.
func (g *Graph) Dependencies(key nodeid.Key) ([]nodeid.Key, error) {
	n, ok := g.nodes[key]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", key)
	}
	return append([]nodeid.Key(nil), n.deps...), nil
}

// Dependents returns the keys that depend on key, in link order.
func (g *Graph) Dependents(key nodeid.Key) ([]nodeid.Key, error) {
	n, ok := g.nodes[key]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", key)
	}
	return append([]nodeid.Key(nil), n.dependents...), nil
}

// DependencyView is Dependencies without the copy. It returns nil for an
// unknown key. Callers must not modify the result.
func (g *Graph) DependencyView(key nodeid.Key) []nodeid.Key {
	if n, ok := g.nodes[key]; ok {
		return n.deps
	}
	return nil
}
