package metrics

import (
	"context"
	"strconv"
	"time"
)

// OnLayoutStart implements observability.PipelineHooks.
func (r *Registry) OnLayoutStart(_ context.Context, nodeCount, _ int) {
	r.LayoutsInFlight.Inc()
	r.LayoutNodes.Observe(float64(nodeCount))
}

// OnStage implements observability.PipelineHooks.
func (r *Registry) OnStage(_ context.Context, stage string, duration time.Duration) {
	r.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// OnIteration implements observability.PipelineHooks.
func (r *Registry) OnIteration(context.Context, int) {
	r.IterationsTotal.Inc()
}

// OnLayoutComplete implements observability.PipelineHooks.
func (r *Registry) OnLayoutComplete(_ context.Context, _, iterations int, duration time.Duration, err error) {
	r.LayoutsInFlight.Dec()
	r.LayoutsTotal.WithLabelValues(status(err)).Inc()
	if err != nil {
		return
	}
	r.LayoutDuration.Observe(duration.Seconds())
	r.LayoutIterations.Observe(float64(iterations))
}

// OnRenderStart implements observability.PipelineHooks.
func (r *Registry) OnRenderStart(context.Context, []string) {}

// OnRenderComplete implements observability.PipelineHooks.
func (r *Registry) OnRenderComplete(_ context.Context, _ []string, duration time.Duration, err error) {
	r.RendersTotal.WithLabelValues(status(err)).Inc()
	r.RenderDuration.Observe(duration.Seconds())
}

// OnCacheHit implements observability.CacheHooks.
func (r *Registry) OnCacheHit(_ context.Context, keyType string) {
	r.CacheHitsTotal.WithLabelValues(keyType).Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (r *Registry) OnCacheMiss(_ context.Context, keyType string) {
	r.CacheMissesTotal.WithLabelValues(keyType).Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (r *Registry) OnCacheSet(_ context.Context, keyType string, size int) {
	r.CacheWriteBytes.WithLabelValues(keyType).Observe(float64(size))
}

// OnRequest implements observability.HTTPHooks.
func (r *Registry) OnRequest(context.Context, string, string) {
	r.HTTPRequestsInFlight.Inc()
}

// OnResponse implements observability.HTTPHooks.
func (r *Registry) OnResponse(_ context.Context, method, route string, statusCode int, duration time.Duration) {
	r.HTTPRequestsInFlight.Dec()
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
