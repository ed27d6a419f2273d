package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sparsestress/pkg/cache"
	"github.com/matzehuels/sparsestress/pkg/graph"
	"github.com/matzehuels/sparsestress/pkg/metrics"
	"github.com/matzehuels/sparsestress/pkg/observability"
	"github.com/matzehuels/sparsestress/pkg/pipeline"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := pipeline.NewRunner(c, nil, nil)
	t.Cleanup(func() { runner.Close() })
	return New(runner, nil, cfg)
}

func squareRequest() LayoutRequest {
	return LayoutRequest{
		Graph: graph.Document{
			Nodes: []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
			Edges: []graph.Edge{
				{From: "a", To: "b"},
				{From: "b", To: "c"},
				{From: "c", To: "d"},
				{From: "d", To: "a"},
			},
		},
		Options: pipeline.Options{Pivots: 4, Iterations: 100, Sampler: "maxmin"},
	}
}

func post(t *testing.T, h http.Handler, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/layouts", &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Config{})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Version)
	_, err := uuid.Parse(rec.Header().Get(HeaderRequestID))
	assert.NoError(t, err, "response should carry a request id")
}

func TestLayout(t *testing.T) {
	s := newTestServer(t, Config{})
	req := squareRequest()
	req.Options.ComputeStress = true
	req.Options.Factor = 10

	rec := post(t, s.Handler(), req, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LayoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, rec.Header().Get(HeaderRequestID), resp.ID)
	require.Len(t, resp.Layout.Nodes, 4)
	assert.Equal(t, "a", resp.Layout.Nodes[0].ID)
	assert.Equal(t, 10.0, resp.Layout.Factor)
	assert.Len(t, resp.Pivots, 4)
	assert.NotNil(t, resp.Stress)
	assert.False(t, resp.Stats.Cached)
	assert.Equal(t, 4, resp.Stats.Nodes)
	assert.Equal(t, 4, resp.Stats.Edges)
	assert.Empty(t, resp.Artifacts)

	// Opposite corners of the square
	l := resp.Layout.Layout()
	assert.InDelta(t, l.Dist(0, 2), l.Dist(1, 3), 0.05*l.Dist(0, 2))

	again := post(t, s.Handler(), req, nil)
	require.Equal(t, http.StatusOK, again.Code)
	var cached LayoutResponse
	require.NoError(t, json.Unmarshal(again.Body.Bytes(), &cached))
	assert.True(t, cached.Stats.Cached)
	assert.Equal(t, resp.Layout, cached.Layout)
	assert.NotEqual(t, resp.ID, cached.ID)
}

func TestLayoutArtifacts(t *testing.T) {
	s := newTestServer(t, Config{})
	req := squareRequest()
	req.Options.Formats = []string{"csv"}

	rec := post(t, s.Handler(), req, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp LayoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Artifacts, "csv")
	assert.Equal(t, 4, strings.Count(string(resp.Artifacts["csv"]), "\n"))
}

func TestLayoutClientScope(t *testing.T) {
	s := newTestServer(t, Config{})
	req := squareRequest()
	alice := http.Header{HeaderClientID: []string{"alice"}}
	bob := http.Header{HeaderClientID: []string{"bob"}}

	cached := func(h http.Header) bool {
		rec := post(t, s.Handler(), req, h)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp LayoutResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp.Stats.Cached
	}

	assert.False(t, cached(alice))
	assert.True(t, cached(alice))
	assert.False(t, cached(bob), "clients must not share cache entries")
	assert.False(t, cached(nil), "unscoped requests use their own key space")
}

func TestLayoutErrors(t *testing.T) {
	s := newTestServer(t, Config{MaxNodes: 3})

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"malformed json", "{", http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", `{"graph":{},"opts":{}}`, http.StatusBadRequest, "INVALID_INPUT"},
		{
			"unknown node",
			LayoutRequest{
				Graph:   graph.Document{Nodes: []graph.Node{{ID: "a"}}, Edges: []graph.Edge{{From: "a", To: "z"}}},
				Options: pipeline.Options{Pivots: 1, Iterations: 1, Sampler: "maxmin"},
			},
			http.StatusBadRequest, "INVALID_GRAPH",
		},
		{
			"missing pivots",
			LayoutRequest{
				Graph:   graph.Document{Nodes: []graph.Node{{ID: "a"}, {ID: "b"}}, Edges: []graph.Edge{{From: "a", To: "b"}}},
				Options: pipeline.Options{Iterations: 1, Sampler: "maxmin"},
			},
			http.StatusBadRequest, "INVALID_CONFIG",
		},
		{"too many nodes", squareRequest(), http.StatusRequestEntityTooLarge, "CAPACITY_EXCEEDED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s.Handler(), tt.body, nil)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			e := decodeError(t, rec)
			assert.Equal(t, tt.code, e.Code)
			assert.NotEmpty(t, e.Error)
			assert.Equal(t, rec.Header().Get(HeaderRequestID), e.RequestID)
		})
	}
}

func TestLayoutBodyLimit(t *testing.T) {
	s := newTestServer(t, Config{MaxBodyBytes: 64})
	rec := post(t, s.Handler(), squareRequest(), nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRequestIDEcho(t *testing.T) {
	s := newTestServer(t, Config{})
	id := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, id)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(HeaderRequestID))

	// Non-UUID ids are replaced
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(HeaderRequestID, "not a uuid\n")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.NotEqual(t, "not a uuid\n", rec.Header().Get(HeaderRequestID))
}

func TestNotFoundAndMethod(t *testing.T) {
	s := newTestServer(t, Config{})

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v2/nothing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/layouts", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, rec).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := metrics.NewRegistry()
	observability.SetHTTPHooks(reg)
	defer observability.Reset()

	s := newTestServer(t, Config{Metrics: reg.Handler()})
	require.Equal(t, http.StatusOK, post(t, s.Handler(), squareRequest(), nil).Code)

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(),
		`sparsestress_http_requests_total{method="POST",route="/v1/layouts",status="200"} 1`)
}

func TestServeShutdown(t *testing.T) {
	s := newTestServer(t, Config{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
