package dag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/metagraph/internal/nodeid"
)

var (
	// ErrReferenceOutOfRange is returned when a `v <idx>` or `e <idx>` rule
	// names an id outside the vertex or edge count.
	ErrReferenceOutOfRange = errors.New("reference out of range")
	// ErrCycle marks errors that describe a dependency cycle.
	ErrCycle = errors.New("dependency cycle")
)

// NodeError ties a rule failure to the node that owns the rule.
type NodeError struct {
	Key  nodeid.Key
	Rule string
	Err  error
}

func (e *NodeError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: rule %q: %v", e.Key, e.Rule, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }

// CycleError describes one dependency cycle as a closed path of keys.
type CycleError struct {
	Path []nodeid.Key
}

func (e *CycleError) Error() string {
	if e == nil {
		return ""
	}
	parts := make([]string, len(e.Path))
	for i, key := range e.Path {
		parts[i] = key.String()
	}
	return fmt.Sprintf("%s: %s", ErrCycle, strings.Join(parts, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycle }

func referenceError(owner nodeid.Key, raw string, target nodeid.Key, nv, ne int) error {
	limit := nv
	if target.IsEdge() {
		limit = ne
	}
	return &NodeError{
		Key:  owner,
		Rule: raw,
		Err:  fmt.Errorf("%w: %s %d not in [1, %d]", ErrReferenceOutOfRange, target.Kind, target.ID, limit),
	}
}
