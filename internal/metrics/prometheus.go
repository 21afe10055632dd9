package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusMetrics implements Metrics by registering a small set of
// counters/histograms/gauges against the supplied Registerer. Construction
// never panics on duplicate registration; callers that share a Registerer
// across multiple lists should construct one PrometheusMetrics and reuse it.
type PrometheusMetrics struct {
	renderDuration prometheus.Histogram
	renderItems    prometheus.Histogram
	poolCreated    prometheus.Gauge
	poolReused     prometheus.Gauge
	poolSize       prometheus.Gauge
	scrollVelocity prometheus.Histogram
	chunkLoads     *prometheus.CounterVec
	chunkDuration  prometheus.Histogram
	chunkEvictions prometheus.Counter
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
}

// NewPrometheusMetrics registers vlist's metric set against reg and returns
// a Metrics implementation backed by it.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vlist",
			Name:      "render_duration_seconds",
			Help:      "Duration of one Renderer.Render pass.",
			Buckets:   prometheus.DefBuckets,
		}),
		renderItems: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vlist",
			Name:      "render_items",
			Help:      "Number of items touched by one render pass.",
			Buckets:   prometheus.LinearBuckets(0, 20, 10),
		}),
		poolCreated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vlist", Name: "pool_created", Help: "Cumulative cells created by the render pool.",
		}),
		poolReused: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vlist", Name: "pool_reused", Help: "Cumulative cells reused by the render pool.",
		}),
		poolSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "vlist", Name: "pool_size", Help: "Current free-stack size of the render pool.",
		}),
		scrollVelocity: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vlist",
			Name:      "scroll_velocity",
			Help:      "Observed scroll velocity samples (cells/ms).",
		}),
		chunkLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vlist", Name: "chunk_loads_total", Help: "Async chunk loads by outcome.",
		}, []string{"outcome"}),
		chunkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vlist",
			Name:      "chunk_load_duration_seconds",
			Help:      "Duration of one adapter chunk fetch.",
			Buckets:   prometheus.DefBuckets,
		}),
		chunkEvictions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vlist", Name: "chunk_evictions_total", Help: "Chunks evicted from the sparse store.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vlist", Name: "cache_hits_total", Help: "Sparse-store chunk lookups served from cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vlist", Name: "cache_misses_total", Help: "Sparse-store chunk lookups that missed cache.",
		}),
	}

	for _, c := range []prometheus.Collector{
		m.renderDuration, m.renderItems, m.poolCreated, m.poolReused, m.poolSize,
		m.scrollVelocity, m.chunkLoads, m.chunkDuration, m.chunkEvictions,
		m.cacheHits, m.cacheMisses,
	} {
		if reg != nil {
			_ = reg.Register(c) // AlreadyRegisteredError is fine: metric already live
		}
	}
	return m
}

func (m *PrometheusMetrics) RecordRender(d time.Duration, itemCount int) {
	m.renderDuration.Observe(d.Seconds())
	m.renderItems.Observe(float64(itemCount))
}

func (m *PrometheusMetrics) RecordPoolStats(created, reused, poolSize int) {
	m.poolCreated.Set(float64(created))
	m.poolReused.Set(float64(reused))
	m.poolSize.Set(float64(poolSize))
}

func (m *PrometheusMetrics) RecordScroll(velocity float64) {
	m.scrollVelocity.Observe(velocity)
}

func (m *PrometheusMetrics) RecordChunkLoad(d time.Duration, success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	m.chunkLoads.WithLabelValues(outcome).Inc()
	m.chunkDuration.Observe(d.Seconds())
}

func (m *PrometheusMetrics) RecordChunkEviction() { m.chunkEvictions.Inc() }
func (m *PrometheusMetrics) RecordCacheHit()       { m.cacheHits.Inc() }
func (m *PrometheusMetrics) RecordCacheMiss()      { m.cacheMisses.Inc() }
