package rule

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vk/metagraph/internal/nodeid"
)

// Parse converts rule text for a node of the given kind into a Rule.
// Surrounding whitespace is ignored. Text that is valid only for the other
// kind (e.g. `*` on a vertex) is rejected like any other unknown text.
func Parse(kind nodeid.Kind, text string) (Rule, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Rule{}, fmt.Errorf("%w: empty rule", ErrUnrecognized)
	}

	if v, err := strconv.ParseFloat(text, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Rule{}, fmt.Errorf("%w: literal %q is not finite", ErrUnrecognized, text)
		}
		return NewLiteral(v), nil
	}

	switch kind {
	case nodeid.Vertex:
		if strings.EqualFold(text, "min") {
			return NewMin(), nil
		}
		if id, ok := parseRef(text, "e"); ok {
			return NewEdgeRef(id), nil
		}
	case nodeid.Edge:
		if text == "*" {
			return NewProduct(), nil
		}
		if id, ok := parseRef(text, "v"); ok {
			return NewVertexRef(id), nil
		}
	}

	return Rule{}, fmt.Errorf("%w for %s: %q", ErrUnrecognized, kind, text)
}

// parseRef matches `<prefix> <idx>`. The index is not range checked here;
// that needs the graph's counts and is done by the builder.
func parseRef(text, prefix string) (int, bool) {
	fields := strings.Fields(text)
	if len(fields) != 2 || fields[0] != prefix {
		return 0, false
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, false
	}
	return id, true
}
