// Package mds computes the initial 2-D layout with pivot multidimensional
// scaling.
//
// Classical scaling needs all n² distances. Pivot MDS only measures the
// distances from p max-min pivots, double-centers the squared p x n matrix
// C, and recovers the top two singular vectors of C from the p x p Gram
// matrix C·Cᵀ by power iteration. The cost is p shortest-path runs plus
// O(p²n) arithmetic.
//
//	l, err := mds.Layout(g, mds.Options{Pivots: 200})
//
// With p = n the result matches classical (Torgerson) scaling up to
// reflection.
package mds
