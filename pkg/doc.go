// Package pkg provides the core libraries for sparsestress graph layout.
//
// # Overview
//
// sparsestress draws undirected graphs by sparse stress minimization: a
// pivot MDS initialization followed by stress majorization in which every
// node is attracted to a small set of pivots and its direct neighbors
// instead of to all other nodes. The pkg directory is organized into three
// main areas:
//
//  1. Layout algorithms ([pqueue], [paths], [sampling], [mds], [stress])
//  2. Orchestration ([pipeline], [server]) and rendering ([render])
//  3. Infrastructure ([cache], [errors], [observability], [metrics])
//
// # Architecture
//
// The data flow through sparsestress:
//
//	edge list / JSON / YAML
//	         ↓
//	    [io] package (read into a [graph.Graph])
//	         ↓
//	    [mds] package (pivot MDS initial layout)
//	         ↓
//	    [sampling] package (pick pivots, build clustered stress terms)
//	         ↓
//	    [stress] package (majorization sweeps)
//	         ↓
//	    CSV/JSON/SVG/PNG/PDF output
//
// # Quick Start
//
//	g, _ := io.ReadGraphFile("graph.txt", false)
//	res, _ := pipeline.GenerateLayout(ctx, g, pipeline.Options{
//	    Pivots:     50,
//	    Iterations: 200,
//	    Sampler:    "maxmin",
//	})
//	_ = io.WriteCSV(os.Stdout, res.Layout, pipeline.DefaultFactor)
//
// # Main Packages
//
// ## Layout
//
// [pqueue] - Indexed binary min-heap with decrease-key, sized by slot so a
// multi-source search can keep one entry per (node, source) pair.
//
// [paths] - Dijkstra searches, including the multi-source search that
// assigns each node to the region of its closest pivot.
//
// [sampling] - Pivot samplers: uniform random, max/min distance and k-means
// on sampled distance features.
//
// [mds] - Pivot MDS with power iteration on the double-centered pivot
// distance matrix.
//
// [stress] - Sparse stress model and majorization, plus exact stress
// evaluation with optimal rescaling.
//
// ## Orchestration
//
// [pipeline] - Options, validation and the cached read → layout → render
// pipeline shared by the CLI and the HTTP server.
//
// [server] - HTTP API for computing layouts, with per-client cache scopes
// and Prometheus metrics.
//
// [render] - Graphviz node-link drawings with pinned coordinates, and SVG
// to PNG/PDF conversion.
//
// ## Infrastructure
//
// [cache] - File, Redis and MongoDB cache backends behind one interface.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hook interfaces for pipeline, cache and HTTP events.
//
// [metrics] - Prometheus collectors implementing the observability hooks.
//
// # Testing
//
//	go test ./pkg/...                  # All tests
//	go test ./pkg/stress/...           # Specific package
//	go test -run Example ./pkg/...     # Examples only
//
// Redis and MongoDB cache tests run only when SPARSESTRESS_TEST_REDIS or
// SPARSESTRESS_TEST_MONGO is set.
//
// [pqueue]: https://pkg.go.dev/github.com/matzehuels/sparsestress/pkg/pqueue
// [paths]: https://pkg.go.dev/github.com/matzehuels/sparsestress/pkg/paths
// [sampling]: https://pkg.go.dev/github.com/matzehuels/sparsestress/pkg/sampling
// [mds]: https://pkg.go.dev/github.com/matzehuels/sparsestress/pkg/mds
// [stress]: https://pkg.go.dev/github.com/matzehuels/sparsestress/pkg/stress
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sparsestress/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/sparsestress/pkg/server
// [render]: https://pkg.go.dev/github.com/matzehuels/sparsestress/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/sparsestress/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/sparsestress/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/sparsestress/pkg/observability
// [metrics]: https://pkg.go.dev/github.com/matzehuels/sparsestress/pkg/metrics
//
// [io]: https://pkg.go.dev/github.com/matzehuels/sparsestress/pkg/io
// [graph.Graph]: https://pkg.go.dev/github.com/matzehuels/sparsestress/pkg/graph#Graph
package pkg
