package io

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/sparsestress/pkg/errors"
	"github.com/matzehuels/sparsestress/pkg/graph"
)

// Layout output formats understood by WriteLayoutFile.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ReadGraphFile reads the graph at path, choosing the format from the
// extension. weighted applies to edge lists only.
func ReadGraphFile(path string, weighted bool) (*graph.Graph, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "graph file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ReadJSON(r)
	case ".yaml", ".yml":
		return ReadYAML(r)
	default:
		return ReadEdgeList(r, weighted)
	}
}

// ReadLayoutFile reads a layout from a .csv or .json file.
func ReadLayoutFile(path string) (graph.Layout, error) {
	if err := errors.ValidateExtension(path, ".csv", ".json"); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "layout file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadEmbedding(f)
	}
	return ReadLayoutCSV(bufio.NewReader(f))
}

// WriteLayoutFile writes the layout of g to path in format (csv or json).
func WriteLayoutFile(path, format string, g *graph.Graph, l graph.Layout, factor float64) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if format != FormatCSV && format != FormatJSON {
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported layout format: %s", format)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if format == FormatJSON {
		err = WriteEmbedding(w, g, l, factor)
	} else {
		err = WriteCSV(w, l, factor)
	}
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
