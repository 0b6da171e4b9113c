package evaluator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/metagraph/internal/ctxlog"
	"github.com/vk/metagraph/internal/dag"
	"github.com/vk/metagraph/internal/model"
	"github.com/vk/metagraph/internal/nodeid"
)

var (
	v = nodeid.VertexKey
	e = nodeid.EdgeKey
)

func mustMetagraph(t *testing.T, nv int, edges []model.Edge, vr, er []string) *model.Metagraph {
	t.Helper()
	mg, err := model.New(nv, edges, vr, er)
	require.NoError(t, err)
	return mg
}

func TestEvaluate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		nv       int
		edges    []model.Edge
		vr       []string
		er       []string
		expected Values
		breaks   []nodeid.Key
	}{
		{
			name:     "vertex reads edge that copies source vertex",
			nv:       2,
			edges:    []model.Edge{{From: 1, To: 2}},
			vr:       []string{"5", "min"},
			er:       []string{"v 1"},
			expected: Values{v(1): 5, v(2): 5, e(1): 5},
		},
		{
			name:     "min over incoming edges",
			nv:       4,
			edges:    []model.Edge{{From: 1, To: 4}, {From: 2, To: 4}, {From: 3, To: 4}},
			vr:       []string{"0", "0", "0", "min"},
			er:       []string{"3", "7", "2"},
			expected: Values{v(1): 0, v(2): 0, v(3): 0, v(4): 2, e(1): 3, e(2): 7, e(3): 2},
		},
		{
			name:     "min without incoming edges is zero",
			nv:       1,
			vr:       []string{"min"},
			expected: Values{v(1): 0},
		},
		{
			name:  "min over overflowed edges stays infinite",
			nv:    3,
			edges: []model.Edge{{From: 1, To: 2}, {From: 3, To: 1}},
			vr:    []string{"1e308", "min", "1"},
			er:    []string{"*", "1e308"},
			expected: Values{
				v(1): 1e308, v(2): math.Inf(1), v(3): 1,
				e(1): math.Inf(1), e(2): 1e308,
			},
		},
		{
			name:  "product of source vertex and edges entering it",
			nv:    3,
			edges: []model.Edge{{From: 2, To: 1}, {From: 3, To: 1}, {From: 1, To: 2}},
			vr:    []string{"5", "1", "1"},
			er:    []string{"2", "3", "*"},
			expected: Values{
				v(1): 5, v(2): 1, v(3): 1,
				e(1): 2, e(2): 3, e(3): 30,
			},
		},
		{
			name:     "product without incoming edges equals source vertex",
			nv:       2,
			edges:    []model.Edge{{From: 1, To: 2}},
			vr:       []string{"5", "0"},
			er:       []string{"*"},
			expected: Values{v(1): 5, v(2): 0, e(1): 5},
		},
		{
			name:     "literals pass through",
			nv:       2,
			edges:    []model.Edge{{From: 1, To: 2}},
			vr:       []string{"-1.5", "1e3"},
			er:       []string{"0.25"},
			expected: Values{v(1): -1.5, v(2): 1000, e(1): 0.25},
		},
		{
			name:     "vertex edge reference",
			nv:       2,
			edges:    []model.Edge{{From: 1, To: 2}},
			vr:       []string{"e 1", "4"},
			er:       []string{"v 2"},
			expected: Values{v(1): 4, v(2): 4, e(1): 4},
		},
		{
			name:     "two node cycle breaks at the first vertex",
			nv:       1,
			edges:    []model.Edge{{From: 1, To: 1}},
			vr:       []string{"e 1"},
			er:       []string{"v 1"},
			expected: Values{v(1): 0, e(1): 0},
			breaks:   []nodeid.Key{v(1)},
		},
		{
			name:     "self referencing product keeps edge default",
			nv:       1,
			edges:    []model.Edge{{From: 1, To: 1}},
			vr:       []string{"3"},
			er:       []string{"*"},
			expected: Values{v(1): 3, e(1): 1},
			breaks:   []nodeid.Key{e(1)},
		},
		{
			name:     "min through a cycle",
			nv:       2,
			edges:    []model.Edge{{From: 1, To: 2}, {From: 2, To: 1}},
			vr:       []string{"min", "min"},
			er:       []string{"v 1", "v 2"},
			expected: Values{v(1): 0, v(2): 0, e(1): 0, e(2): 0},
			breaks:   []nodeid.Key{v(1)},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Arrange
			mg := mustMetagraph(t, tc.nv, tc.edges, tc.vr, tc.er)

			// Act
			result, err := Evaluate(context.Background(), mg)

			// Assert
			require.NoError(t, err)
			if diff := cmp.Diff(tc.expected, result.Values); diff != "" {
				t.Errorf("values mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tc.breaks, result.CycleBreaks)
		})
	}
}

func TestEvaluate_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		vr      []string
		er      []string
		wantErr error
	}{
		{name: "edge reference out of range", vr: []string{"1", "e 99"}, er: []string{"1"}, wantErr: ErrReference},
		{name: "vertex reference out of range", vr: []string{"1", "2"}, er: []string{"v 99"}, wantErr: ErrReference},
		{name: "unrecognized vertex rule", vr: []string{"max", "2"}, er: []string{"1"}, wantErr: ErrSyntax},
		{name: "product on a vertex", vr: []string{"*", "2"}, er: []string{"1"}, wantErr: ErrSyntax},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mg := mustMetagraph(t, 2, []model.Edge{{From: 1, To: 2}}, tc.vr, tc.er)

			result, err := Evaluate(context.Background(), mg)

			require.Error(t, err)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestEvaluate_TotalOverEveryNode(t *testing.T) {
	t.Parallel()

	// Arrange: a dense graph with cycles everywhere.
	const nv = 6
	var edges []model.Edge
	var er []string
	for from := 1; from <= nv; from++ {
		for to := 1; to <= nv; to++ {
			edges = append(edges, model.Edge{From: from, To: to})
			if (from+to)%2 == 0 {
				er = append(er, "*")
			} else {
				er = append(er, fmt.Sprintf("v %d", to))
			}
		}
	}
	vr := []string{"min", "2", "min", "e 5", "min", "0.5"}
	mg := mustMetagraph(t, nv, edges, vr, er)

	// Act
	result, err := Evaluate(context.Background(), mg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, nv+len(edges), result.Values.Len())
	for _, key := range mg.Keys() {
		_, ok := result.Values[key]
		assert.True(t, ok, "missing value for %s", key)
	}
	assert.NotEmpty(t, result.CycleBreaks)
}

func TestEvaluate_LongChainDoesNotOverflow(t *testing.T) {
	t.Parallel()

	// Arrange: v1 = 7, e_i = v_i, v_{i+1} = e_i.
	const n = 5000
	edges := make([]model.Edge, 0, n-1)
	vr := make([]string, n)
	er := make([]string, 0, n-1)
	vr[0] = "7"
	for i := 1; i < n; i++ {
		edges = append(edges, model.Edge{From: i, To: i + 1})
		er = append(er, fmt.Sprintf("v %d", i))
		vr[i] = fmt.Sprintf("e %d", i)
	}
	mg := mustMetagraph(t, n, edges, vr, er)

	// Act
	result, err := Evaluate(context.Background(), mg)

	// Assert
	require.NoError(t, err)
	last, ok := result.Values.Vertex(n)
	require.True(t, ok)
	assert.Equal(t, 7.0, last)
	assert.Empty(t, result.CycleBreaks)
}

func TestEvaluator_Resolve(t *testing.T) {
	t.Parallel()

	mg := mustMetagraph(t, 2, []model.Edge{{From: 1, To: 2}}, []string{"5", "min"}, []string{"v 1"})
	g, err := dag.Build(context.Background(), mg)
	require.NoError(t, err)
	ev := New(context.Background(), g)

	t.Run("resolves on demand and memoizes", func(t *testing.T) {
		first, err := ev.Resolve(v(2))
		require.NoError(t, err)
		second, err := ev.Resolve(v(2))
		require.NoError(t, err)

		assert.Equal(t, 5.0, first)
		assert.Equal(t, first, second)
	})

	t.Run("unknown node", func(t *testing.T) {
		_, err := ev.Resolve(e(9))
		assert.ErrorIs(t, err, ErrUnknownNode)
	})
}

func TestEvaluator_IndependentPasses(t *testing.T) {
	t.Parallel()

	mg := mustMetagraph(t, 1, []model.Edge{{From: 1, To: 1}}, []string{"e 1"}, []string{"v 1"})
	g, err := dag.Build(context.Background(), mg)
	require.NoError(t, err)

	first := New(context.Background(), g).Run()
	second := New(context.Background(), g).Run()

	assert.Equal(t, first, second)
	assert.Len(t, second.CycleBreaks, 1)
}

func TestEvaluate_LogsCycleBreaks(t *testing.T) {
	t.Parallel()

	// Arrange
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	ctx := ctxlog.WithLogger(context.Background(), logger)
	mg := mustMetagraph(t, 1, []model.Edge{{From: 1, To: 1}}, []string{"e 1"}, []string{"v 1"})

	// Act
	_, err := Evaluate(ctx, mg)

	// Assert
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Cycle detected")
	assert.Contains(t, buf.String(), "node=v1")
}

func TestResult_CycleBreakCount(t *testing.T) {
	t.Parallel()

	r := &Result{CycleBreaks: []nodeid.Key{v(1), e(2), e(3)}}
	vertices, edges := r.CycleBreakCount()

	assert.Equal(t, 1, vertices)
	assert.Equal(t, 2, edges)
}

func TestCycleDefault(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0.0, CycleDefault(nodeid.Vertex))
	assert.Equal(t, 1.0, CycleDefault(nodeid.Edge))
	assert.False(t, errors.Is(ErrUnknownNode, ErrReference))
}

func TestEvaluator_ResolveKeys(t *testing.T) {
	t.Parallel()

	// Arrange: v3 is independent of the requested keys and must stay unresolved.
	mg := mustMetagraph(t, 3,
		[]model.Edge{{From: 1, To: 2}, {From: 3, To: 3}},
		[]string{"5", "min", "e 2"},
		[]string{"v 1", "v 3"},
	)
	g, err := dag.Build(context.Background(), mg)
	require.NoError(t, err)
	ev := New(context.Background(), g)

	// Act
	result, err := ev.ResolveKeys([]nodeid.Key{v(2)})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, Values{v(2): 5}, result.Values)
	assert.Empty(t, result.CycleBreaks)

	_, err = ev.ResolveKeys([]nodeid.Key{v(2), v(4)})
	assert.ErrorIs(t, err, ErrUnknownNode)
}
