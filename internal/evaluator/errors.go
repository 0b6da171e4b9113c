package evaluator

import (
	"errors"

	"github.com/vk/metagraph/internal/dag"
	"github.com/vk/metagraph/internal/rule"
)

var (
	// ErrUnknownNode is returned by Resolve for a key outside the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrReference aliases dag.ErrReferenceOutOfRange for callers that only
	// import this package.
	ErrReference = dag.ErrReferenceOutOfRange

	// ErrSyntax aliases rule.ErrUnrecognized for callers that only import
	// this package.
	ErrSyntax = rule.ErrUnrecognized
)
