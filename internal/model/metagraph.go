// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the Metagraph record and its accessors.
//
// Why copy on every accessor?
//
// The record is shared by reference between the builder, the evaluator and the
// report writers, some of which run on different goroutines when several inputs
// are evaluated at once. Handing out copies keeps the record immutable without
// any locking.
package model

import (
	"fmt"

	"github.com/vk/metagraph/internal/nodeid"
)

// Edge is a directed connection between two vertices, both 1-based.
type Edge struct {
	From int
	To   int
}

// String renders the edge as `from->to`.
func (e Edge) String() string {
	return fmt.Sprintf("%d->%d", e.From, e.To)
}

// Metagraph is the validated input record.
type Metagraph struct {
	nv          int
	edges       []Edge
	vertexRules []string
	edgeRules   []string
	incoming    map[int][]int
}

// New validates and builds a Metagraph. The number of edges is len(edges);
// vertexRules[i] belongs to vertex i+1 and edgeRules[i] to edge i+1.
func New(nv int, edges []Edge, vertexRules, edgeRules []string) (*Metagraph, error) {
	if nv < 1 {
		return nil, fmt.Errorf("%w: vertex count must be positive, got %d", ErrMalformedRecord, nv)
	}
	if len(vertexRules) != nv {
		return nil, fmt.Errorf("%w: expected %d vertex rules, got %d", ErrMalformedRecord, nv, len(vertexRules))
	}
	if len(edgeRules) != len(edges) {
		return nil, fmt.Errorf("%w: expected %d edge rules, got %d", ErrMalformedRecord, len(edges), len(edgeRules))
	}
	for i, e := range edges {
		if e.From < 1 || e.From > nv || e.To < 1 || e.To > nv {
			return nil, fmt.Errorf("%w: edge %d (%s) has an endpoint outside [1, %d]", ErrMalformedRecord, i+1, e, nv)
		}
	}

	mg := &Metagraph{
		nv:          nv,
		edges:       append([]Edge(nil), edges...),
		vertexRules: append([]string(nil), vertexRules...),
		edgeRules:   append([]string(nil), edgeRules...),
		incoming:    make(map[int][]int),
	}
	for i, e := range mg.edges {
		mg.incoming[e.To] = append(mg.incoming[e.To], i+1)
	}
	return mg, nil
}

// NV returns the vertex count.
func (m *Metagraph) NV() int { return m.nv }

// NE returns the edge count.
func (m *Metagraph) NE() int { return len(m.edges) }

// Edges returns a copy of the ordered edge list.
func (m *Metagraph) Edges() []Edge {
	return append([]Edge(nil), m.edges...)
}

// Edge returns edge id (1-based).
func (m *Metagraph) Edge(id int) (Edge, bool) {
	if id < 1 || id > len(m.edges) {
		return Edge{}, false
	}
	return m.edges[id-1], true
}

// VertexRule returns the raw rule text of vertex id.
func (m *Metagraph) VertexRule(id int) (string, bool) {
	if id < 1 || id > m.nv {
		return "", false
	}
	return m.vertexRules[id-1], true
}

// EdgeRule returns the raw rule text of edge id.
func (m *Metagraph) EdgeRule(id int) (string, bool) {
	if id < 1 || id > len(m.edges) {
		return "", false
	}
	return m.edgeRules[id-1], true
}

// VertexRules returns a copy of all vertex rules in id order.
func (m *Metagraph) VertexRules() []string {
	return append([]string(nil), m.vertexRules...)
}

// EdgeRules returns a copy of all edge rules in id order.
func (m *Metagraph) EdgeRules() []string {
	return append([]string(nil), m.edgeRules...)
}

// Rule returns the raw rule text for any node key.
func (m *Metagraph) Rule(key nodeid.Key) (string, bool) {
	if key.IsVertex() {
		return m.VertexRule(key.ID)
	}
	return m.EdgeRule(key.ID)
}

// IncomingEdges returns the ids of edges terminating at vertex v, in
// ascending order. The result is nil for a vertex without incoming edges.
func (m *Metagraph) IncomingEdges(v int) []int {
	ids := m.incoming[v]
	if len(ids) == 0 {
		return nil
	}
	return append([]int(nil), ids...)
}

// Keys returns every node key in enumeration order: vertices, then edges.
func (m *Metagraph) Keys() []nodeid.Key {
	keys := make([]nodeid.Key, 0, m.nv+len(m.edges))
	for v := 1; v <= m.nv; v++ {
		keys = append(keys, nodeid.VertexKey(v))
	}
	for e := 1; e <= len(m.edges); e++ {
		keys = append(keys, nodeid.EdgeKey(e))
	}
	return keys
}
