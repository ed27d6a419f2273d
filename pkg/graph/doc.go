// Package graph provides the undirected weighted graph and the 2-D layout
// vector that every sparsestress stage operates on, plus their wire formats.
//
// # Core Types
//
//   - [Graph]: immutable adjacency lists over dense node ids 0..n-1
//   - [Builder]: validating constructor for [Graph]
//   - [Layout]: 2n interleaved coordinates (x0, y0, x1, y1, ...)
//   - [Document], [Node], [Edge]: node-link JSON format for graphs
//   - [Embedding], [Placement]: JSON format for computed layouts
//
// # Building Graphs
//
// Edges are undirected. Every call to [Builder.AddEdge] records the edge in
// both endpoints' adjacency lists, so Degree(i) counts incident edges and
// EdgeCount is half the number of adjacency entries:
//
//	b := graph.NewBuilder(4, false)
//	_ = b.AddEdge(0, 1, 1)
//	_ = b.AddEdge(1, 2, 1)
//	g := b.Build()
//
// The builder rejects out-of-range endpoints, self-loops and weights that
// are not finite positive numbers.
//
// # Graph Serialization
//
// Graphs use a simple node-link JSON format with string ids:
//
//	{
//	  "nodes": [{"id": "a"}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b", "weight": 2.5}]
//	}
//
// Use [Document.ToGraph] and [FromGraph] to convert between the two.
//
// # Concurrency
//
// A built [Graph] is read-only and safe for concurrent use. A [Layout] has
// a single writer at a time.
package graph
