package stress

import (
	"github.com/matzehuels/sparsestress/pkg/errors"
	"github.com/matzehuels/sparsestress/pkg/graph"
	"github.com/matzehuels/sparsestress/pkg/pqueue"
)

// MSSPOptions selects which (pivot, node) pairs become terms.
type MSSPOptions struct {
	// NeighborTerms skips a pivot's own node and its neighbors, which get
	// dedicated edge terms instead.
	NeighborTerms bool
	// IncludeOwnPivot also emits terms towards the pivot whose cluster
	// the node belongs to.
	IncludeOwnPivot bool
}

// Clustering is the pivot partition built during MSSP.
type Clustering struct {
	// Owner maps each node to the index (into pivots) of its cluster,
	// or -1 when no pivot reaches it.
	Owner []int
	// Sizes holds the number of nodes per cluster.
	Sizes []int
}

// clusters is the mutable partition state threaded through one MSSP run.
type clusters struct {
	owner   []int
	size    []int
	sorted  [][]float64 // per pivot, member distances in insertion order
	hanging []int       // per pivot, members within half the current distance
}

// MSSP runs one Dijkstra per pivot in lockstep over a shared queue and
// appends a term to data for every settled (pivot, node) pair that passes
// the filters in opts. Slot pivotIndex*n + node stands for the node as
// seen from that pivot.
//
// Pairs settled at the same distance form a block. When the distance
// changes, the block's unassigned nodes join the smallest competing
// cluster, every pair of the block emits its term, and each pivot's
// hanging count advances to the members within half the new distance.
// A term's weight is that count divided by the squared distance.
func MSSP(g *graph.Graph, data *Data, pivots []int, opts MSSPOptions) (*Clustering, error) {
	n, p := g.NodeCount(), len(pivots)
	if err := errors.ValidatePivotCapacity(p, n); err != nil {
		return nil, err
	}
	for _, piv := range pivots {
		if piv < 0 || piv >= n {
			return nil, errors.New(errors.ErrCodeInvalidInput, "pivot %d outside 0..%d", piv, n-1)
		}
	}

	c := &clusters{
		owner:   make([]int, n),
		size:    make([]int, p),
		sorted:  make([][]float64, p),
		hanging: make([]int, p),
	}
	for i := range c.owner {
		c.owner[i] = -1
	}

	var near []map[int]bool
	if opts.NeighborTerms {
		near = make([]map[int]bool, p)
		for k, piv := range pivots {
			near[k] = map[int]bool{piv: true}
			for _, v := range g.Neighbors(piv) {
				near[k][v] = true
			}
		}
	}

	q := pqueue.New(p * n)
	for k, piv := range pivots {
		q.Upsert(k*n+piv, 0)
	}

	var (
		blockDist float64
		dist      float64
		block     []int // slots whose node had no cluster when settled
		settled   []int // every slot settled at blockDist
	)
	for !q.Empty() {
		slot := q.Pop()
		dist = q.Value(slot)
		if dist != blockDist {
			commit(c, data, pivots, near, opts, n, blockDist, dist, block, settled)
			block, settled = block[:0], settled[:0]
			blockDist = dist
		}

		piv := slot / n
		node := slot - piv*n
		settled = append(settled, slot)
		if c.owner[node] < 0 {
			block = append(block, slot)
		}

		base := slot - node
		ws := g.Weights(node)
		for k, v := range g.Neighbors(node) {
			q.Upsert(base+v, dist+ws[k])
		}
	}
	commit(c, data, pivots, near, opts, n, blockDist, dist, block, settled)

	return &Clustering{Owner: c.owner, Sizes: c.size}, nil
}

func commit(c *clusters, data *Data, pivots []int, near []map[int]bool, opts MSSPOptions,
	n int, blockDist, next float64, block, settled []int) {
	assign(c, n, blockDist, block)
	emit(c, data, pivots, near, opts, n, blockDist, settled)
	advance(c, next/2)
}

// assign gives every node of the block a cluster, moving it to a smaller
// competing cluster when its current one is more than one node larger.
func assign(c *clusters, n int, dist float64, block []int) {
	for _, slot := range block {
		piv := slot / n
		node := slot - piv*n
		if c.owner[node] < 0 {
			c.owner[node] = piv
			c.size[piv]++
			c.sorted[piv] = append(c.sorted[piv], dist)
		}
		if own := c.owner[node]; c.size[own] > c.size[piv]+1 {
			c.sorted[own] = c.sorted[own][:len(c.sorted[own])-1]
			c.size[own]--
			c.sorted[piv] = append(c.sorted[piv], dist)
			c.owner[node] = piv
			c.size[piv]++
		}
	}
}

func emit(c *clusters, data *Data, pivots []int, near []map[int]bool, opts MSSPOptions,
	n int, dist float64, settled []int) {
	if dist <= 0 {
		return
	}
	for _, slot := range settled {
		piv := slot / n
		node := slot - piv*n
		if !opts.IncludeOwnPivot && c.owner[node] == piv {
			continue
		}
		if opts.NeighborTerms && near[piv][node] {
			continue
		}
		data.Add(node, Term{
			Target:   pivots[piv],
			Distance: dist,
			Weight:   float64(c.hanging[piv]) / (dist * dist),
		})
	}
}

// advance moves each pivot's hanging count past the members whose
// distance is at most limit.
func advance(c *clusters, limit float64) {
	for k, sorted := range c.sorted {
		for c.hanging[k] < len(sorted) && sorted[c.hanging[k]] <= limit {
			c.hanging[k]++
		}
	}
}
