package rule

import (
	"strconv"

	"github.com/vk/metagraph/internal/nodeid"
)

// Op identifies which rule form a Rule holds.
type Op int

const (
	// Literal is a constant numeric value.
	Literal Op = iota
	// Min is the minimum over a vertex's incoming edges.
	Min
	// EdgeRef copies the value of another edge.
	EdgeRef
	// VertexRef copies the value of another vertex.
	VertexRef
	// Product multiplies an edge's source vertex by the edges entering it.
	Product
)

// String returns a short name for the operation.
func (o Op) String() string {
	switch o {
	case Literal:
		return "literal"
	case Min:
		return "min"
	case EdgeRef:
		return "edge-ref"
	case VertexRef:
		return "vertex-ref"
	case Product:
		return "product"
	default:
		return "unknown"
	}
}

// Rule is a parsed attribute rule. Value is set only for Literal and Ref only
// for EdgeRef and VertexRef.
type Rule struct {
	Op    Op
	Value float64
	Ref   int
}

// NewLiteral returns a constant rule.
func NewLiteral(v float64) Rule { return Rule{Op: Literal, Value: v} }

// NewMin returns the vertex aggregation rule.
func NewMin() Rule { return Rule{Op: Min} }

// NewEdgeRef returns a rule copying edge id.
func NewEdgeRef(id int) Rule { return Rule{Op: EdgeRef, Ref: id} }

// NewVertexRef returns a rule copying vertex id.
func NewVertexRef(id int) Rule { return Rule{Op: VertexRef, Ref: id} }

// NewProduct returns the edge product rule.
func NewProduct() Rule { return Rule{Op: Product} }

// Target returns the node key a reference rule points at. ok is false for
// rules that are not direct references.
func (r Rule) Target() (key nodeid.Key, ok bool) {
	switch r.Op {
	case EdgeRef:
		return nodeid.EdgeKey(r.Ref), true
	case VertexRef:
		return nodeid.VertexKey(r.Ref), true
	default:
		return nodeid.Key{}, false
	}
}

// String renders the rule in its canonical text form.
func (r Rule) String() string {
	switch r.Op {
	case Literal:
		return strconv.FormatFloat(r.Value, 'g', -1, 64)
	case Min:
		return "min"
	case EdgeRef:
		return "e " + strconv.Itoa(r.Ref)
	case VertexRef:
		return "v " + strconv.Itoa(r.Ref)
	case Product:
		return "*"
	default:
		return "<invalid>"
	}
}
