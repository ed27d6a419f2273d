package mds

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/mds"

	"github.com/matzehuels/sparsestress/pkg/graph"
	"github.com/matzehuels/sparsestress/pkg/paths"
)

func gridGraph(t *testing.T, w, h int) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder(w*h, false)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if x+1 < w {
				require.NoError(t, b.AddEdge(i, i+1, 1))
			}
			if y+1 < h {
				require.NoError(t, b.AddEdge(i, i+w, 1))
			}
		}
	}
	return b.Build()
}

func TestDistanceMatrixMaxMin(t *testing.T) {
	// path 0-1-2-3-4: first pivot is node 4, the farthest from it is node 0
	b := graph.NewBuilder(5, false)
	for i := 0; i < 4; i++ {
		require.NoError(t, b.AddEdge(i, i+1, 1))
	}
	g := b.Build()

	dm, pivots := DistanceMatrix(g, 3)
	assert.Equal(t, []int{4, 0, 2}, pivots)
	assert.Equal(t, []float64{4, 3, 2, 1, 0}, mat.Row(nil, 0, dm))
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, mat.Row(nil, 1, dm))
}

func TestDistanceMatrixClampsAndZeroesUnreachable(t *testing.T) {
	b := graph.NewBuilder(3, false)
	require.NoError(t, b.AddEdge(0, 1, 1))
	g := b.Build()

	dm, pivots := DistanceMatrix(g, 10)
	r, c := dm.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
	assert.ElementsMatch(t, []int{0, 1, 2}, pivots)
	assert.Equal(t, []float64{0, 0, 0}, mat.Row(nil, 0, dm), "pivot 2 is isolated")
}

func TestCenterRowsAndColumnsSumToZero(t *testing.T) {
	g := gridGraph(t, 4, 3)
	dm, _ := DistanceMatrix(g, 5)
	Center(dm)

	p, n := dm.Dims()
	for i := 0; i < p; i++ {
		assert.InDelta(t, 0, floats.Sum(mat.Row(nil, i, dm)), 1e-9, "row %d", i)
	}
	for j := 0; j < n; j++ {
		assert.InDelta(t, 0, floats.Sum(mat.Col(nil, j, dm)), 1e-9, "column %d", j)
	}
}

func TestPowerIterationMatchesEigenSym(t *testing.T) {
	// symmetric positive definite matrix with well separated eigenvalues
	a := mat.NewDense(4, 4, []float64{
		4, 1, 0, 0,
		1, 3, 1, 0,
		0, 1, 2, 0.5,
		0, 0, 0.5, 1,
	})
	k := mat.NewSymDense(4, nil)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			k.SetSym(i, j, a.At(i, j))
		}
	}

	vecs, vals, err := PowerIteration(k, 2, 0, 10000)
	require.NoError(t, err)

	var es mat.EigenSym
	require.True(t, es.Factorize(k, true))
	want := es.Values(nil) // ascending
	var ev mat.Dense
	es.VectorsTo(&ev)

	for m := 0; m < 2; m++ {
		idx := 3 - m
		assert.InDelta(t, want[idx], vals[m], 1e-6, "eigenvalue %d", m)
		dot := mat.Dot(vecs[m], ev.ColView(idx))
		assert.InDelta(t, 1, math.Abs(dot), 1e-6, "eigenvector %d", m)
	}
}

func TestPowerIterationZeroMatrix(t *testing.T) {
	vecs, vals, err := PowerIteration(mat.NewSymDense(3, nil), 2, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, vals)
	assert.Zero(t, mat.Norm(vecs[0], 2))
}

func TestPowerIterationNaN(t *testing.T) {
	k := mat.NewSymDense(2, []float64{math.NaN(), 0, 0, 1})
	_, _, err := PowerIteration(k, 2, 0, 100)
	require.Error(t, err)
}

// euclideanGraph returns the complete graph on pts weighted by euclidean
// distance, so shortest paths equal straight-line distances.
func euclideanGraph(t *testing.T, pts [][2]float64) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder(len(pts), true)
	for i := range pts {
		for j := i + 1; j < len(pts); j++ {
			d := math.Hypot(pts[i][0]-pts[j][0], pts[i][1]-pts[j][1])
			require.NoError(t, b.AddEdge(i, j, d))
		}
	}
	return b.Build()
}

func TestLayoutMatchesTorgersonWithAllPivots(t *testing.T) {
	pts := [][2]float64{{0, 0}, {4, 0.5}, {1, 2}, {3, 3}, {-1, 1.5}, {2, -1}, {5, 2}, {0.5, 4}}
	g := euclideanGraph(t, pts)
	n := g.NodeCount()

	l, err := Layout(g, Options{Pivots: n})
	require.NoError(t, err)

	all := paths.AllPairs(g)
	dis := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			dis.SetSym(i, j, all[i][j])
		}
	}
	var want mat.Dense
	k, _ := mds.TorgersonScaling(&want, nil, dis)
	require.GreaterOrEqual(t, k, 2)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := want.At(i, 0) - want.At(j, 0)
			dy := want.At(i, 1) - want.At(j, 1)
			assert.InDelta(t, math.Hypot(dx, dy), l.Dist(i, j), 1e-4, "pair %d,%d", i, j)
			assert.InDelta(t, all[i][j], l.Dist(i, j), 1e-4, "pair %d,%d", i, j)
		}
	}
}

func TestLayoutDegenerate(t *testing.T) {
	t.Run("single node", func(t *testing.T) {
		l, err := Layout(graph.NewBuilder(1, false).Build(), Options{})
		require.NoError(t, err)
		assert.Equal(t, graph.Layout{0, 0}, l)
	})

	t.Run("no edges", func(t *testing.T) {
		l, err := Layout(graph.NewBuilder(3, false).Build(), Options{})
		require.NoError(t, err)
		for _, v := range l {
			assert.Zero(t, v)
		}
	})

	t.Run("one pivot", func(t *testing.T) {
		l, err := Layout(gridGraph(t, 3, 1), Options{Pivots: 1})
		require.NoError(t, err)
		for _, v := range l {
			assert.False(t, math.IsNaN(v))
		}
	})
}

func TestLayoutDeterministic(t *testing.T) {
	g := gridGraph(t, 6, 4)
	a, err := Layout(g, Options{Pivots: 8, Seed: 3})
	require.NoError(t, err)
	b, err := Layout(g, Options{Pivots: 8, Seed: 3})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
