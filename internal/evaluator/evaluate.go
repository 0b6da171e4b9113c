package evaluator

import (
	"context"
	"fmt"

	"github.com/vk/metagraph/internal/ctxlog"
	"github.com/vk/metagraph/internal/dag"
	"github.com/vk/metagraph/internal/model"
)

// Evaluate builds the dependency graph of mg and resolves every vertex and
// edge. Reference and syntax errors in the rules abort the pass; cycles do
// not.
func Evaluate(ctx context.Context, mg *model.Metagraph) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	graph, err := dag.Build(ctx, mg)
	if err != nil {
		return nil, fmt.Errorf("failed to build dependency graph: %w", err)
	}

	result := New(ctx, graph).Run()
	logger.Info("All attributes computed.", "nodes", result.Values.Len(), "cycle_breaks", len(result.CycleBreaks))
	return result, nil
}
