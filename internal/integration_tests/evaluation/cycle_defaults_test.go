package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/metagraph/internal/app"
	"github.com/vk/metagraph/internal/dag"
	"github.com/vk/metagraph/internal/testutil"
)

// Test for: a mutual reference between a vertex and an edge terminates with
// the vertex default and a warning.
func TestEvaluation_CycleUsesDefaults(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{"loop.txt": "1 1\n1 1\ne 1\nv 1\n"}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, nil)

	// --- Assert ---
	require.NoError(t, result.Err)
	assert.Equal(t, "Vertex 1: 0.0\nEdge 1: 0.0\n", result.Output)
	assert.Contains(t, result.LogOutput, "level=WARN")
	assert.Contains(t, result.LogOutput, "node=v1")
}

// Test for: strict mode turns the same cycle into an error.
func TestEvaluation_FailOnCycle(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	files := map[string]string{"loop.txt": "1 1\n1 1\ne 1\nv 1\n"}

	// --- Act ---
	result := testutil.RunIntegrationTest(t, files, func(_ string, cfg *app.Config) {
		cfg.FailOnCycle = true
	})

	// --- Assert ---
	require.ErrorIs(t, result.Err, dag.ErrCycle)
	assert.Empty(t, result.Output)
}
