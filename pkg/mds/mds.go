package mds

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/sparsestress/pkg/graph"
	"github.com/matzehuels/sparsestress/pkg/paths"
)

// Defaults for Options.
const (
	DefaultPivots        = 200
	DefaultMaxIterations = 1000
	Dimensions           = 2
	Epsilon              = 1e-10
)

// Options configures Layout.
type Options struct {
	// Pivots is the number of max-min pivots, clamped to the node count.
	Pivots int
	// Seed seeds the random start vectors of the power iteration.
	Seed uint64
	// MaxIterations caps the power iteration. The current iterate is
	// accepted at the cap.
	MaxIterations int
}

func (o *Options) setDefaults() {
	if o.Pivots <= 0 {
		o.Pivots = DefaultPivots
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
}

// Layout returns the pivot MDS layout of g.
// Nodes unreachable from every pivot end up near the origin.
func Layout(g *graph.Graph, opts Options) (graph.Layout, error) {
	opts.setDefaults()
	n := g.NodeCount()
	out := graph.NewLayout(n)
	if n < 2 {
		return out, nil
	}

	c, _ := DistanceMatrix(g, opts.Pivots)
	Center(c)

	coords, sv, err := SingularVectors(c, Dimensions, opts)
	if err != nil {
		return nil, err
	}
	for d := 0; d < Dimensions; d++ {
		s := math.Sqrt(sv[d])
		for i := 0; i < n; i++ {
			out[2*i+d] = coords[d].AtVec(i) * s
		}
	}
	return out, nil
}

// DistanceMatrix picks min(p, n) pivots by max-min selection, starting at
// node n-1, and returns their p x n shortest-path distance matrix
// (unreachable entries are 0) with the pivots in selection order.
func DistanceMatrix(g *graph.Graph, p int) (*mat.Dense, []int) {
	n := g.NodeCount()
	p = min(p, n)
	if p <= 0 {
		return nil, nil
	}
	dm := mat.NewDense(p, n, nil)
	pivots := make([]int, p)

	minDist := make([]float64, n)
	for i := range minDist {
		minDist[i] = math.Inf(1)
	}
	row := make([]float64, n)
	search := paths.NewSearcher(g)

	pivot := n - 1
	for k := 0; k < p; k++ {
		pivots[k] = pivot
		search.Distances(pivot, nil, row)
		minDist[pivot] = 0
		for j, d := range row {
			minDist[j] = math.Min(minDist[j], d)
			if minDist[j] > minDist[pivot] {
				pivot = j
			}
			if !paths.Reachable(d) {
				row[j] = 0
			}
		}
		dm.SetRow(k, row)
	}
	return dm, pivots
}

// Center replaces the p x n distance matrix c in place by its double
// centered squared form, -1/2 (D² - row means - column means + grand mean).
func Center(c *mat.Dense) {
	p, n := c.Dims()
	rows := make([][]float64, p)
	rowMean := make([]float64, p)
	var total float64
	for i := range rows {
		rows[i] = c.RawRowView(i)
		var s float64
		for _, d := range rows[i] {
			s += d * d
		}
		total += s
		rowMean[i] = s / float64(n)
	}
	grand := total / float64(n*p)

	for j := 0; j < n; j++ {
		var colMean float64
		for i, row := range rows {
			sq := row[j] * row[j]
			colMean += sq
			row[j] = sq + grand - rowMean[i]
		}
		colMean /= float64(p)
		for _, row := range rows {
			row[j] = -0.5 * (row[j] - colMean)
		}
	}
}
