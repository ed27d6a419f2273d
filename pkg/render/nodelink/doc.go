// Package nodelink draws a laid-out graph as a node-link diagram.
//
// [ToDOT] writes Graphviz DOT with every node pinned at its layout
// position (pos="x,y!"), and [RenderSVG] renders it with the neato engine,
// which keeps pinned nodes in place and only routes the edges:
//
//	dot := nodelink.ToDOT(g, layout, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package nodelink
