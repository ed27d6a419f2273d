package io

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	serrors "github.com/matzehuels/sparsestress/pkg/errors"
	"github.com/matzehuels/sparsestress/pkg/graph"
)

// ReadEdgeList parses an edge list from r. When weighted is false any
// weight column is ignored and every edge has length 1.
func ReadEdgeList(r io.Reader, weighted bool) (*graph.Graph, error) {
	cr := newCSVReader(r)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, serrors.New(serrors.ErrCodeInvalidGraph, "empty edge list")
	}
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeInvalidGraph, err, "read header")
	}
	n, err := strconv.Atoi(strings.TrimSpace(header[0]))
	if err != nil || n < 0 || len(header) != 1 {
		return nil, serrors.New(serrors.ErrCodeInvalidGraph, "first line has to contain the number of nodes")
	}

	b := graph.NewBuilder(n, weighted)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidGraph, err, "read edge")
		}
		line, _ := cr.FieldPos(0)
		u, v, w, err := parseEdge(rec, weighted)
		if err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidGraph, err, "line %d", line)
		}
		if err := b.AddEdge(u, v, w); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	return b.Build(), nil
}

func parseEdge(rec []string, weighted bool) (u, v int, w float64, err error) {
	if len(rec) < 2 {
		return 0, 0, 0, fmt.Errorf("expected u,v[,w], got %d fields", len(rec))
	}
	if u, err = strconv.Atoi(strings.TrimSpace(rec[0])); err != nil {
		return 0, 0, 0, fmt.Errorf("node index %q: %w", rec[0], err)
	}
	if v, err = strconv.Atoi(strings.TrimSpace(rec[1])); err != nil {
		return 0, 0, 0, fmt.Errorf("node index %q: %w", rec[1], err)
	}
	w = 1
	if !weighted {
		return u, v, w, nil
	}
	if len(rec) < 3 {
		return 0, 0, 0, fmt.Errorf("the graph has no weights")
	}
	if w, err = strconv.ParseFloat(strings.TrimSpace(rec[2]), 64); err != nil {
		return 0, 0, 0, fmt.Errorf("weights have to be numbers: %q", rec[2])
	}
	return u, v, w, nil
}

// WriteEdgeList writes g in the edge list format. Each undirected edge is
// written once, from its lower endpoint.
func WriteEdgeList(w io.Writer, g *graph.Graph) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{strconv.Itoa(g.NodeCount())}); err != nil {
		return err
	}
	for u := 0; u < g.NodeCount(); u++ {
		ws := g.Weights(u)
		for k, v := range g.Neighbors(u) {
			if v < u {
				continue
			}
			rec := []string{strconv.Itoa(u), strconv.Itoa(v)}
			if g.IsWeighted() {
				rec = append(rec, formatFloat(ws[k]))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

func newCSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true
	return cr
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
