package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/metagraph/internal/evaluator"
	"github.com/vk/metagraph/internal/nodeid"
)

func TestMetrics_ObservePass(t *testing.T) {
	t.Parallel()

	// Arrange
	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)
	result := &evaluator.Result{
		Values: evaluator.Values{
			nodeid.VertexKey(1): 0,
			nodeid.VertexKey(2): 1,
			nodeid.EdgeKey(1):   1,
		},
		CycleBreaks: []nodeid.Key{nodeid.EdgeKey(1)},
	}

	// Act
	m.ObservePass(result, 3*time.Millisecond)
	m.ObserveFailure()

	// Assert
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evaluations.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Evaluations.WithLabelValues(OutcomeFailure)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.NodesEvaluated.WithLabelValues("vertex")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NodesEvaluated.WithLabelValues("edge")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CycleBreaks.WithLabelValues("vertex")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CycleBreaks.WithLabelValues("edge")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))
}

func TestNew_DuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	m, err := New(reg)
	require.NoError(t, err)
	m.ObserveFailure()
	path := filepath.Join(t.TempDir(), "metagraph.prom")

	require.NoError(t, WriteTextfile(path, reg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `metagraph_evaluations_total{outcome="failure"} 1`)
}
