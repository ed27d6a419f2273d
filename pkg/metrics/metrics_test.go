package metrics

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/matzehuels/sparsestress/pkg/observability"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.LayoutsTotal == nil || r.CacheHitsTotal == nil || r.HTTPRequestsTotal == nil {
		t.Fatal("metrics not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Fatal("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestLayoutHooks(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	r.OnLayoutStart(ctx, 100, 300)
	if got := testutil.ToFloat64(r.LayoutsInFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	for i := 1; i <= 5; i++ {
		r.OnIteration(ctx, i)
	}
	r.OnLayoutComplete(ctx, 100, 5, time.Second, nil)

	r.OnLayoutStart(ctx, 10, 0)
	r.OnLayoutComplete(ctx, 10, 0, time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(r.LayoutsInFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
	if got := testutil.ToFloat64(r.IterationsTotal); got != 5 {
		t.Errorf("iterations = %v, want 5", got)
	}
	if got := testutil.ToFloat64(r.LayoutsTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("ok layouts = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.LayoutsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("failed layouts = %v, want 1", got)
	}
}

func TestCacheHooks(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	r.OnCacheHit(ctx, "layout")
	r.OnCacheHit(ctx, "layout")
	r.OnCacheMiss(ctx, "artifact")
	r.OnCacheSet(ctx, "artifact", 2048)

	if got := testutil.ToFloat64(r.CacheHitsTotal.WithLabelValues("layout")); got != 2 {
		t.Errorf("layout hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.CacheMissesTotal.WithLabelValues("artifact")); got != 1 {
		t.Errorf("artifact misses = %v, want 1", got)
	}
}

func TestHTTPHooks(t *testing.T) {
	ctx := context.Background()
	r := NewRegistry()

	r.OnRequest(ctx, "POST", "/v1/layouts")
	r.OnResponse(ctx, "POST", "/v1/layouts", 200, 50*time.Millisecond)

	if got := testutil.ToFloat64(r.HTTPRequestsTotal.WithLabelValues("POST", "/v1/layouts", "200")); got != 1 {
		t.Errorf("requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.HTTPRequestsInFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.OnCacheHit(context.Background(), "layout")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `sparsestress_cache_hits_total{kind="layout"} 1`) {
		t.Errorf("metrics output missing cache hit counter:\n%s", body)
	}
}

func TestInstall(t *testing.T) {
	defer observability.Reset()
	r := NewRegistry()
	r.Install()
	if observability.Pipeline() != observability.PipelineHooks(r) {
		t.Error("Install should register pipeline hooks")
	}
	if observability.Cache() != observability.CacheHooks(r) {
		t.Error("Install should register cache hooks")
	}
}
