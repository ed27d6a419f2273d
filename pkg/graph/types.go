package graph

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/sparsestress/pkg/errors"
)

// =============================================================================
// Document - Graph Serialization
// =============================================================================

// Document is the node-link serialization format for graphs.
// Used for JSON input files, API requests and cache keys.
type Document struct {
	Nodes []Node `json:"nodes" yaml:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges" bson:"edges"`
}

// Node is a serialized graph node.
type Node struct {
	ID    string `json:"id" yaml:"id" bson:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty" bson:"label,omitempty"`
}

// DisplayLabel returns the label if set, otherwise the ID.
func (n *Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a serialized undirected edge. A zero weight means unweighted.
type Edge struct {
	From   string  `json:"from" yaml:"from" bson:"from"`
	To     string  `json:"to" yaml:"to" bson:"to"`
	Weight float64 `json:"weight,omitempty" yaml:"weight,omitempty" bson:"weight,omitempty"`
}

// ToGraph converts the document into a Graph. Node ids map to indices in
// document order. The graph is weighted when any edge carries a weight;
// edges without one then default to 1.
func (d Document) ToGraph() (*Graph, error) {
	index := make(map[string]int, len(d.Nodes))
	for i, n := range d.Nodes {
		if n.ID == "" {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "node %d has an empty id", i)
		}
		if _, dup := index[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate node id %q", n.ID)
		}
		index[n.ID] = i
	}

	weighted := false
	for _, e := range d.Edges {
		if e.Weight != 0 {
			weighted = true
			break
		}
	}

	b := NewBuilder(len(d.Nodes), weighted)
	for i, n := range d.Nodes {
		b.SetLabel(i, n.DisplayLabel())
	}
	for _, e := range d.Edges {
		u, ok := index[e.From]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "edge %s-%s: unknown node %q", e.From, e.To, e.From)
		}
		v, ok := index[e.To]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "edge %s-%s: unknown node %q", e.From, e.To, e.To)
		}
		w := e.Weight
		if w == 0 {
			w = 1
		}
		if err := b.AddEdge(u, v, w); err != nil {
			return nil, fmt.Errorf("edge %s-%s: %w", e.From, e.To, err)
		}
	}
	return b.Build(), nil
}

// FromGraph converts g into its serialization format. Nodes without a
// label are named by their index. Each undirected edge is listed once,
// from the lower to the higher index.
func FromGraph(g *Graph) Document {
	doc := Document{Nodes: make([]Node, g.NodeCount())}
	for i := range doc.Nodes {
		doc.Nodes[i] = Node{ID: NodeID(g, i)}
	}
	for u := 0; u < g.NodeCount(); u++ {
		ws := g.Weights(u)
		for k, v := range g.Neighbors(u) {
			if v < u {
				continue
			}
			e := Edge{From: doc.Nodes[u].ID, To: doc.Nodes[v].ID}
			if g.IsWeighted() {
				e.Weight = ws[k]
			}
			doc.Edges = append(doc.Edges, e)
		}
	}
	return doc
}

// NodeID returns the label of node i, or its decimal index when unlabeled.
func NodeID(g *Graph, i int) string {
	if l := g.Label(i); l != "" {
		return l
	}
	return strconv.Itoa(i)
}

// =============================================================================
// Embedding - Layout Serialization
// =============================================================================

// Embedding is the serialization format for a computed layout.
type Embedding struct {
	Nodes  []Placement `json:"nodes" bson:"nodes"`
	Factor float64     `json:"factor,omitempty" bson:"factor,omitempty"`
}

// Placement is one positioned node.
type Placement struct {
	ID string  `json:"id" bson:"id"`
	X  float64 `json:"x" bson:"x"`
	Y  float64 `json:"y" bson:"y"`
}

// Embed pairs every coordinate of l with its node id from g, multiplied
// by factor.
func Embed(g *Graph, l Layout, factor float64) Embedding {
	out := Embedding{Nodes: make([]Placement, l.Len()), Factor: factor}
	for i := range out.Nodes {
		out.Nodes[i] = Placement{ID: NodeID(g, i), X: factor * l.X(i), Y: factor * l.Y(i)}
	}
	return out
}

// Layout returns the coordinates of the embedding in node order.
func (e Embedding) Layout() Layout {
	l := NewLayout(len(e.Nodes))
	for i, p := range e.Nodes {
		l[2*i], l[2*i+1] = p.X, p.Y
	}
	return l
}
