package graph

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Layout holds 2-D coordinates for n nodes interleaved as
// x0, y0, x1, y1, ... The zero value is an empty layout.
type Layout []float64

// NewLayout returns a layout of n nodes placed at the origin.
func NewLayout(n int) Layout {
	return make(Layout, 2*n)
}

// Len returns the number of nodes in the layout.
func (l Layout) Len() int { return len(l) / 2 }

// X returns the x coordinate of node i.
func (l Layout) X(i int) float64 { return l[2*i] }

// Y returns the y coordinate of node i.
func (l Layout) Y(i int) float64 { return l[2*i+1] }

// Point returns the position of node i.
func (l Layout) Point(i int) r2.Vec { return r2.Vec{X: l[2*i], Y: l[2*i+1]} }

// Set moves node i to p.
func (l Layout) Set(i int, p r2.Vec) {
	l[2*i] = p.X
	l[2*i+1] = p.Y
}

// Dist returns the euclidean distance between nodes i and j.
// A NaN distance is reported as 0 so callers treat the pair as coincident.
func (l Layout) Dist(i, j int) float64 {
	d := r2.Norm(r2.Sub(l.Point(i), l.Point(j)))
	if math.IsNaN(d) {
		return 0
	}
	return d
}

// Scale multiplies every coordinate by f in place.
func (l Layout) Scale(f float64) {
	for i := range l {
		l[i] *= f
	}
}

// Clone returns an independent copy.
func (l Layout) Clone() Layout {
	out := make(Layout, len(l))
	copy(out, l)
	return out
}

// Bounds returns the bounding box of all node positions.
func (l Layout) Bounds() (min, max r2.Vec) {
	if len(l) < 2 {
		return r2.Vec{}, r2.Vec{}
	}
	min, max = l.Point(0), l.Point(0)
	for i := 1; i < l.Len(); i++ {
		p := l.Point(i)
		min.X = math.Min(min.X, p.X)
		min.Y = math.Min(min.Y, p.Y)
		max.X = math.Max(max.X, p.X)
		max.Y = math.Max(max.Y, p.Y)
	}
	return min, max
}
