package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/sparsestress/pkg/graph"
	"github.com/matzehuels/sparsestress/pkg/render"
)

// DefaultUnit is the drawing size, in points, of one layout unit.
const DefaultUnit = 36.0

// Options configures node-link diagram rendering.
type Options struct {
	// Labels draws node labels (or ids) inside the nodes.
	// When false, nodes are small dots.
	Labels bool

	// Factor multiplies every coordinate, as for CSV output. Zero means 1.
	Factor float64

	// Unit is the size in points of one scaled layout unit.
	// Zero means DefaultUnit.
	Unit float64
}

// ToDOT converts a graph and its layout to Graphviz DOT with pinned node
// positions. Each undirected edge is written once.
func ToDOT(g *graph.Graph, l graph.Layout, opts Options) string {
	scale := opts.Factor
	if scale == 0 {
		scale = 1
	}
	if opts.Unit > 0 {
		scale *= opts.Unit
	} else {
		scale *= DefaultUnit
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  overlap=true;\n")
	if opts.Labels {
		buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3, fixedsize=true];\n")
	} else {
		buf.WriteString("  node [shape=point, width=0.08, color=\"#1f4e79\"];\n")
	}
	buf.WriteString("  edge [color=\"#00000060\"];\n")
	buf.WriteString("\n")

	for i := 0; i < g.NodeCount(); i++ {
		attrs := fmt.Sprintf("pos=\"%s,%s!\"", fmtCoord(scale*l.X(i)), fmtCoord(scale*l.Y(i)))
		if opts.Labels {
			attrs += fmt.Sprintf(", label=%q", graph.NodeID(g, i))
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", i, attrs)
	}

	buf.WriteString("\n")
	for u := 0; u < g.NodeCount(); u++ {
		for _, v := range g.Neighbors(u) {
			if v > u {
				fmt.Fprintf(&buf, "  n%d -- n%d;\n", u, v)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// RenderSVG renders a DOT graph to SVG using the Graphviz neato engine.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// A scale of 2.0 produces a 2x resolution image.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
