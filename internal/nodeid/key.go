// internal/nodeid/key.go
package nodeid

import (
	"strconv"
)

// String serializes the Key into its canonical form, e.g. `v3` or `e1`.
func (k Key) String() string {
	return k.Kind.Prefix() + strconv.Itoa(k.ID)
}

// Less orders keys the way evaluation enumerates them: all vertices by id,
// then all edges by id.
func (k Key) Less(other Key) bool {
	if k.Kind != other.Kind {
		return k.Kind < other.Kind
	}
	return k.ID < other.ID
}

// InRange reports whether the key's id lies within [1, nv] for vertices or
// [1, ne] for edges.
func (k Key) InRange(nv, ne int) bool {
	if k.ID < 1 {
		return false
	}
	switch k.Kind {
	case Vertex:
		return k.ID <= nv
	case Edge:
		return k.ID <= ne
	default:
		return false
	}
}
