// Package render turns computed layouts into images.
//
// # Overview
//
// The [nodelink] subpackage draws a graph with every node pinned at its
// computed coordinates, using Graphviz for SVG. This package converts any
// SVG to PDF or PNG with the external rsvg-convert tool (from librsvg):
//
//	dot := nodelink.ToDOT(g, layout, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [nodelink]: github.com/matzehuels/sparsestress/pkg/render/nodelink
package render
