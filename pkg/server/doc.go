// Package server exposes the layout pipeline over HTTP.
//
// # Endpoints
//
//	POST /v1/layouts   compute a layout for a graph document
//	GET  /healthz      liveness and build version
//	GET  /metrics      Prometheus metrics
//
// A layout request carries a graph in the node-link document format and
// the same options the CLI accepts:
//
//	{
//	  "graph": {
//	    "nodes": [{"id": "a"}, {"id": "b"}, {"id": "c"}],
//	    "edges": [{"from": "a", "to": "b"}, {"from": "b", "to": "c"}]
//	  },
//	  "options": {"pivots": 3, "iterations": 200, "sampler": "maxmin"}
//	}
//
// The response holds the coordinates keyed by node id, the run statistics
// and, when compute_stress is set, the stress report. Rendered artifacts
// are included when options.formats is set.
//
// # Caching
//
// Layouts are cached through the Runner's cache. Requests that carry an
// X-Client-ID header are cached under a per-client key prefix, so clients
// sharing one backend never read each other's entries.
//
// # Request IDs
//
// Every response carries an X-Request-ID header. A valid UUID sent by the
// client is echoed back, otherwise a new one is generated.
package server
