package graph

import (
	"github.com/matzehuels/sparsestress/pkg/errors"
)

// Graph is an undirected graph with positive edge weights over the node
// ids 0..n-1. Each node stores its neighbors and the matching weights in
// two index-aligned slices. Unweighted graphs carry weight 1 on every edge.
type Graph struct {
	adj      [][]int
	weights  [][]float64
	labels   []string
	entries  int
	weighted bool
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.adj) }

// EdgeCount returns the number of undirected edges (adjacency entries / 2).
func (g *Graph) EdgeCount() int { return g.entries / 2 }

// IsWeighted reports whether the graph was built with explicit weights.
func (g *Graph) IsWeighted() bool { return g.weighted }

// Degree returns the number of adjacency entries of node i.
func (g *Graph) Degree(i int) int { return len(g.adj[i]) }

// Neighbors returns the neighbors of node i in insertion order.
// The returned slice must not be modified.
func (g *Graph) Neighbors(i int) []int { return g.adj[i] }

// Weights returns the edge weights of node i, aligned with Neighbors(i).
// The returned slice must not be modified.
func (g *Graph) Weights(i int) []float64 { return g.weights[i] }

// Label returns the display label of node i, or "" when none was set.
func (g *Graph) Label(i int) string {
	if g.labels == nil {
		return ""
	}
	return g.labels[i]
}

// HasLabels reports whether any node carries a label.
func (g *Graph) HasLabels() bool { return g.labels != nil }

// Builder accumulates edges for a Graph with a fixed node count.
type Builder struct {
	g *Graph
}

// NewBuilder returns a builder for a graph with n nodes. When weighted is
// false, AddEdge ignores the supplied weight and stores 1.
func NewBuilder(n int, weighted bool) *Builder {
	if n < 0 {
		n = 0
	}
	return &Builder{g: &Graph{
		adj:      make([][]int, n),
		weights:  make([][]float64, n),
		weighted: weighted,
	}}
}

// AddEdge adds the undirected edge {u, v} with weight w.
func (b *Builder) AddEdge(u, v int, w float64) error {
	n := len(b.g.adj)
	if u < 0 || u >= n || v < 0 || v >= n {
		return errors.New(errors.ErrCodeInvalidGraph, "edge (%d, %d) references a node outside 0..%d", u, v, n-1)
	}
	if u == v {
		return errors.New(errors.ErrCodeInvalidGraph, "self-loop on node %d", u)
	}
	if !b.g.weighted {
		w = 1
	}
	if err := errors.ValidateWeight(w); err != nil {
		return err
	}
	b.g.adj[u] = append(b.g.adj[u], v)
	b.g.weights[u] = append(b.g.weights[u], w)
	b.g.adj[v] = append(b.g.adj[v], u)
	b.g.weights[v] = append(b.g.weights[v], w)
	b.g.entries += 2
	return nil
}

// SetLabel attaches a display label to node i.
func (b *Builder) SetLabel(i int, label string) {
	if i < 0 || i >= len(b.g.adj) {
		return
	}
	if b.g.labels == nil {
		b.g.labels = make([]string, len(b.g.adj))
	}
	b.g.labels[i] = label
}

// Build returns the finished graph. The builder must not be used afterwards.
func (b *Builder) Build() *Graph {
	return b.g
}
