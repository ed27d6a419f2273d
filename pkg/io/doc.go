// Package io reads graphs and reads and writes layouts.
//
// # Graph Formats
//
// Edge list (the default, any extension other than those below). The first
// line holds the node count n, every following line one undirected edge
// between 0-based node indices, with an optional weight:
//
//	4
//	0,1
//	1,2,2.5
//	2,3
//
// The weight column is read only for weighted graphs and is then required.
// Blank lines and lines starting with '#' are ignored.
//
// JSON (.json) and YAML (.yaml, .yml) documents with string node ids:
//
//	{
//	  "nodes": [{"id": "a"}, {"id": "b", "label": "B"}],
//	  "edges": [{"from": "a", "to": "b", "weight": 2}]
//	}
//
// A document is weighted when any edge carries a non-zero weight.
//
// # Layout Formats
//
// CSV: one "x,y" line per node in node order, multiplied by the layout
// factor. JSON: a [graph.Embedding] pairing node ids with coordinates.
//
// Use [ReadGraphFile] and [WriteLayoutFile] to pick the format from a file
// extension.
package io
