// internal/nodeid/types.go
package nodeid

// Kind distinguishes vertex slots from edge slots.
type Kind int

const (
	// Vertex marks a key addressing a vertex attribute.
	Vertex Kind = iota
	// Edge marks a key addressing an edge attribute.
	Edge
)

// String returns the long lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Vertex:
		return "vertex"
	case Edge:
		return "edge"
	default:
		return "unknown"
	}
}

// Prefix returns the single-letter prefix used in the canonical key form.
func (k Kind) Prefix() string {
	switch k {
	case Vertex:
		return "v"
	case Edge:
		return "e"
	default:
		return "?"
	}
}

// Key is the structured identifier of a single vertex or edge.
// The zero Key is invalid because ids start at 1.
type Key struct {
	Kind Kind
	ID   int
}

// VertexKey returns the key of vertex id.
func VertexKey(id int) Key {
	return Key{Kind: Vertex, ID: id}
}

// EdgeKey returns the key of edge id.
func EdgeKey(id int) Key {
	return Key{Kind: Edge, ID: id}
}

// IsVertex reports whether the key addresses a vertex.
func (k Key) IsVertex() bool {
	return k.Kind == Vertex
}

// IsEdge reports whether the key addresses an edge.
func (k Key) IsEdge() bool {
	return k.Kind == Edge
}
