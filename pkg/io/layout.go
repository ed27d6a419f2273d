package io

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	serrors "github.com/matzehuels/sparsestress/pkg/errors"
	"github.com/matzehuels/sparsestress/pkg/graph"
)

// WriteCSV writes one "x,y" line per node, multiplied by factor.
func WriteCSV(w io.Writer, l graph.Layout, factor float64) error {
	var sb strings.Builder
	for i := 0; i < l.Len(); i++ {
		sb.Reset()
		sb.WriteString(formatFloat(factor * l.X(i)))
		sb.WriteByte(',')
		sb.WriteString(formatFloat(factor * l.Y(i)))
		sb.WriteByte('\n')
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

// ReadLayoutCSV reads a layout written by [WriteCSV].
func ReadLayoutCSV(r io.Reader) (graph.Layout, error) {
	cr := newCSVReader(r)
	var l graph.Layout
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return l, nil
		}
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "read layout")
		}
		line, _ := cr.FieldPos(0)
		if len(rec) != 2 {
			return nil, serrors.New(serrors.ErrCodeInvalidFormat, "line %d: expected x,y", line)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "line %d", line)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "line %d", line)
		}
		l = append(l, x, y)
	}
}

// WriteEmbedding writes the layout of g as an indented [graph.Embedding].
func WriteEmbedding(w io.Writer, g *graph.Graph, l graph.Layout, factor float64) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(graph.Embed(g, l, factor)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadEmbedding reads a layout written by [WriteEmbedding]. The
// coordinates are returned as stored, including the factor.
func ReadEmbedding(r io.Reader) (graph.Layout, error) {
	var e graph.Embedding
	if err := json.NewDecoder(r).Decode(&e); err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "decode layout")
	}
	return e.Layout(), nil
}
