package graph

import (
	"math"
	"testing"

	"github.com/matzehuels/sparsestress/pkg/errors"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestBuilderAddEdge(t *testing.T) {
	b := NewBuilder(3, true)
	if err := b.AddEdge(0, 1, 2.5); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if err := b.AddEdge(1, 2, 1); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	g := b.Build()

	if g.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", g.NodeCount())
	}
	if g.EdgeCount() != 2 {
		t.Errorf("EdgeCount = %d, want 2", g.EdgeCount())
	}
	if g.Degree(1) != 2 {
		t.Errorf("Degree(1) = %d, want 2", g.Degree(1))
	}
	if got := g.Neighbors(0); len(got) != 1 || got[0] != 1 {
		t.Errorf("Neighbors(0) = %v, want [1]", got)
	}
	if got := g.Weights(1); got[0] != 2.5 || got[1] != 1 {
		t.Errorf("Weights(1) = %v, want [2.5 1]", got)
	}
}

func TestBuilderUnweightedIgnoresWeight(t *testing.T) {
	b := NewBuilder(2, false)
	if err := b.AddEdge(0, 1, 7); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}
	if w := b.Build().Weights(0)[0]; w != 1 {
		t.Errorf("weight = %v, want 1", w)
	}
}

func TestBuilderRejects(t *testing.T) {
	tests := []struct {
		name string
		u, v int
		w    float64
	}{
		{"out of range", 0, 5, 1},
		{"negative node", -1, 0, 1},
		{"self loop", 1, 1, 1},
		{"zero weight", 0, 1, 0},
		{"negative weight", 0, 1, -2},
		{"nan weight", 0, 1, math.NaN()},
		{"inf weight", 0, 1, math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder(3, true)
			err := b.AddEdge(tt.u, tt.v, tt.w)
			if !errors.Is(err, errors.ErrCodeInvalidGraph) {
				t.Errorf("AddEdge(%d, %d, %v) = %v, want INVALID_GRAPH", tt.u, tt.v, tt.w, err)
			}
		})
	}
}

func TestLayout(t *testing.T) {
	l := NewLayout(2)
	l.Set(0, r2.Vec{X: 0, Y: 0})
	l.Set(1, r2.Vec{X: 3, Y: 4})

	if l.Len() != 2 {
		t.Errorf("Len = %d, want 2", l.Len())
	}
	if d := l.Dist(0, 1); d != 5 {
		t.Errorf("Dist = %v, want 5", d)
	}

	c := l.Clone()
	c.Scale(2)
	if c.X(1) != 6 || c.Y(1) != 8 {
		t.Errorf("scaled = (%v, %v), want (6, 8)", c.X(1), c.Y(1))
	}
	if l.X(1) != 3 {
		t.Error("Clone shares storage with original")
	}

	min, max := l.Bounds()
	if min != (r2.Vec{}) || max != (r2.Vec{X: 3, Y: 4}) {
		t.Errorf("Bounds = %v %v", min, max)
	}
}

func TestLayoutDistNaN(t *testing.T) {
	l := Layout{math.NaN(), 0, 1, 1}
	if d := l.Dist(0, 1); d != 0 {
		t.Errorf("Dist with NaN = %v, want 0", d)
	}
}

func TestDocumentToGraph(t *testing.T) {
	doc := Document{
		Nodes: []Node{{ID: "a"}, {ID: "b", Label: "Bee"}, {ID: "c"}},
		Edges: []Edge{{From: "a", To: "b", Weight: 2}, {From: "b", To: "c"}},
	}
	g, err := doc.ToGraph()
	if err != nil {
		t.Fatalf("ToGraph: %v", err)
	}
	if !g.IsWeighted() {
		t.Error("IsWeighted = false, want true")
	}
	if g.Weights(2)[0] != 1 {
		t.Errorf("default weight = %v, want 1", g.Weights(2)[0])
	}
	if g.Label(1) != "Bee" {
		t.Errorf("Label(1) = %q, want Bee", g.Label(1))
	}

	back := FromGraph(g)
	if len(back.Edges) != 2 {
		t.Fatalf("FromGraph edges = %d, want 2", len(back.Edges))
	}
	if back.Edges[0].Weight != 2 {
		t.Errorf("round trip weight = %v, want 2", back.Edges[0].Weight)
	}
}

func TestDocumentToGraphErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
	}{
		{"duplicate id", Document{Nodes: []Node{{ID: "a"}, {ID: "a"}}}},
		{"empty id", Document{Nodes: []Node{{ID: ""}}}},
		{"unknown from", Document{Nodes: []Node{{ID: "a"}}, Edges: []Edge{{From: "x", To: "a"}}}},
		{"unknown to", Document{Nodes: []Node{{ID: "a"}}, Edges: []Edge{{From: "a", To: "x"}}}},
		{"self loop", Document{Nodes: []Node{{ID: "a"}}, Edges: []Edge{{From: "a", To: "a"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.doc.ToGraph(); !errors.Is(err, errors.ErrCodeInvalidGraph) {
				t.Errorf("ToGraph() error = %v, want INVALID_GRAPH", err)
			}
		})
	}
}

func TestEmbed(t *testing.T) {
	b := NewBuilder(2, false)
	_ = b.AddEdge(0, 1, 1)
	g := b.Build()
	l := Layout{1, 2, 3, 4}

	e := Embed(g, l, 10)
	if e.Nodes[1].ID != "1" || e.Nodes[1].X != 30 || e.Nodes[1].Y != 40 {
		t.Errorf("Embed node 1 = %+v", e.Nodes[1])
	}
	back := e.Layout()
	if back[3] != 40 {
		t.Errorf("Layout()[3] = %v, want 40", back[3])
	}
}
