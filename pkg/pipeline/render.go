package pipeline

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/sparsestress/pkg/errors"
	"github.com/matzehuels/sparsestress/pkg/graph"
	sio "github.com/matzehuels/sparsestress/pkg/io"
	"github.com/matzehuels/sparsestress/pkg/render/nodelink"
)

// Render generates output artifacts in the requested formats. Coordinates
// are multiplied by opts.Factor in every format.
func Render(g *graph.Graph, l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	if l.Len() != g.NodeCount() {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"layout has %d nodes, graph has %d", l.Len(), g.NodeCount())
	}

	var dot string
	if opts.NeedsRender() {
		dot = nodelink.ToDOT(g, l, nodelink.Options{Labels: opts.Labels, Factor: opts.Factor})
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)

		switch format {
		case FormatCSV:
			var buf bytes.Buffer
			err = sio.WriteCSV(&buf, l, opts.Factor)
			data = buf.Bytes()
		case FormatJSON:
			var buf bytes.Buffer
			err = sio.WriteEmbedding(&buf, g, l, opts.Factor)
			data = buf.Bytes()
		case FormatSVG:
			data, err = nodelink.RenderSVG(dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(dot, DefaultPNGScale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(dot)
		default:
			return nil, ValidateFormat(format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
