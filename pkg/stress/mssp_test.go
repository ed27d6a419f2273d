package stress

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sparsestress/pkg/errors"
	"github.com/matzehuels/sparsestress/pkg/graph"
	"github.com/matzehuels/sparsestress/pkg/paths"
)

func newGraph(t *testing.T, n int, weighted bool, edges [][3]float64) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder(n, weighted)
	for _, e := range edges {
		require.NoError(t, b.AddEdge(int(e[0]), int(e[1]), e[2]))
	}
	return b.Build()
}

func pathGraph(t *testing.T, n int) *graph.Graph {
	t.Helper()
	var edges [][3]float64
	for i := 0; i+1 < n; i++ {
		edges = append(edges, [3]float64{float64(i), float64(i + 1), 1})
	}
	return newGraph(t, n, false, edges)
}

func cycleGraph(t *testing.T, n int) *graph.Graph {
	t.Helper()
	var edges [][3]float64
	for i := 0; i < n; i++ {
		edges = append(edges, [3]float64{float64(i), float64((i + 1) % n), 1})
	}
	return newGraph(t, n, false, edges)
}

func TestMSSPSinglePivotMatchesDijkstra(t *testing.T) {
	g := newGraph(t, 6, true, [][3]float64{
		{0, 1, 2}, {1, 2, 0.5}, {0, 3, 4}, {3, 4, 1}, {2, 4, 1.5}, {4, 5, 3},
	})
	want := paths.SingleSource(g, 0)

	data := NewData(g.NodeCount())
	_, err := MSSP(g, data, []int{0}, MSSPOptions{IncludeOwnPivot: true})
	require.NoError(t, err)

	assert.Empty(t, data.Terms[0], "the pivot itself is at distance 0")
	for v := 1; v < g.NodeCount(); v++ {
		require.Len(t, data.Terms[v], 1, "node %d", v)
		assert.Equal(t, 0, data.Terms[v][0].Target)
		assert.InDelta(t, want[v], data.Terms[v][0].Distance, 1e-12, "node %d", v)
	}
}

func TestMSSPHangingWeights(t *testing.T) {
	g := pathGraph(t, 5)
	data := NewData(5)
	_, err := MSSP(g, data, []int{0}, MSSPOptions{IncludeOwnPivot: true})
	require.NoError(t, err)

	want := []float64{1, 2.0 / 4, 2.0 / 9, 3.0 / 16}
	for v := 1; v < 5; v++ {
		require.Len(t, data.Terms[v], 1)
		assert.InDelta(t, want[v-1], data.Terms[v][0].Weight, 1e-12, "node %d", v)
	}
}

func TestMSSPFilters(t *testing.T) {
	g := pathGraph(t, 4)

	data := NewData(4)
	_, err := MSSP(g, data, []int{0}, MSSPOptions{NeighborTerms: true, IncludeOwnPivot: true})
	require.NoError(t, err)
	assert.Empty(t, data.Terms[1], "neighbor of the pivot is covered by its edge term")
	assert.Len(t, data.Terms[2], 1)

	data = NewData(4)
	_, err = MSSP(g, data, []int{0}, MSSPOptions{})
	require.NoError(t, err)
	assert.Zero(t, data.Len(), "every node is in the only pivot's cluster")
}

func TestMSSPBalancedClusters(t *testing.T) {
	g := cycleGraph(t, 12)
	data := NewData(12)
	cl, err := MSSP(g, data, []int{0, 4, 8}, MSSPOptions{IncludeOwnPivot: true})
	require.NoError(t, err)

	total := 0
	for _, s := range cl.Sizes {
		total += s
	}
	assert.Equal(t, 12, total)
	assert.LessOrEqual(t, slices.Max(cl.Sizes)-slices.Min(cl.Sizes), 1, "sizes %v", cl.Sizes)
	for v, o := range cl.Owner {
		assert.GreaterOrEqual(t, o, 0, "node %d unassigned", v)
	}
	assert.Equal(t, 0, cl.Owner[0])
	assert.Equal(t, 1, cl.Owner[4])
	assert.Equal(t, 2, cl.Owner[8])
}

func TestMSSPUnreachableNode(t *testing.T) {
	g := newGraph(t, 4, false, [][3]float64{{0, 1, 1}, {1, 2, 1}})
	data := NewData(4)
	cl, err := MSSP(g, data, []int{0, 2}, MSSPOptions{IncludeOwnPivot: true})
	require.NoError(t, err)
	assert.Empty(t, data.Terms[3])
	assert.Equal(t, -1, cl.Owner[3])
}

func TestMSSPErrors(t *testing.T) {
	g := pathGraph(t, 3)
	_, err := MSSP(g, NewData(3), []int{5}, MSSPOptions{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	big := graph.NewBuilder(70000, false).Build()
	pivots := make([]int, 40000)
	for i := range pivots {
		pivots[i] = i
	}
	_, err = MSSP(big, NewData(70000), pivots, MSSPOptions{})
	assert.True(t, errors.Is(err, errors.ErrCodeCapacity), "got %v", err)
}
