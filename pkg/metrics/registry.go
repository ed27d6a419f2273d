// Package metrics exports layout, cache and HTTP metrics to Prometheus.
//
// A Registry implements the observability hook interfaces, so registering
// it with observability.SetPipelineHooks (and friends) is all that is
// needed to instrument the pipeline. Handler serves the registry in the
// Prometheus text format.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/sparsestress/pkg/observability"
)

const namespace = "sparsestress"

// Registry holds every metric of the process.
type Registry struct {
	// Layout metrics
	LayoutsTotal     *prometheus.CounterVec
	LayoutDuration   prometheus.Histogram
	LayoutNodes      prometheus.Histogram
	LayoutIterations prometheus.Histogram
	StageDuration    *prometheus.HistogramVec
	IterationsTotal  prometheus.Counter
	LayoutsInFlight  prometheus.Gauge
	RendersTotal     *prometheus.CounterVec
	RenderDuration   prometheus.Histogram

	// Cache metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	CacheWriteBytes  *prometheus.HistogramVec

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with all metrics initialized.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initLayoutMetrics()
	r.initCacheMetrics()
	r.initHTTPMetrics()
	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry for scraping.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Install registers r as the pipeline, cache and HTTP hooks.
func (r *Registry) Install() {
	observability.SetPipelineHooks(r)
	observability.SetCacheHooks(r)
	observability.SetHTTPHooks(r)
}

var (
	_ observability.PipelineHooks = (*Registry)(nil)
	_ observability.CacheHooks    = (*Registry)(nil)
	_ observability.HTTPHooks     = (*Registry)(nil)
)
