package io

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/sparsestress/pkg/errors"
	"github.com/matzehuels/sparsestress/pkg/graph"
)

// ReadJSON decodes a graph document from r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var doc graph.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode json")
	}
	return doc.ToGraph()
}

// ReadYAML decodes a graph document from r.
func ReadYAML(r io.Reader) (*graph.Graph, error) {
	var doc graph.Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode yaml")
	}
	return doc.ToGraph()
}

// WriteJSON encodes g as a graph document.
// The output can be re-imported with [ReadJSON].
func WriteJSON(w io.Writer, g *graph.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(graph.FromGraph(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
