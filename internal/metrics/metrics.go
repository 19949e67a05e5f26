// Package metrics provides Prometheus metrics for the Lenslog API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	// Metadata extractor requests
	ExtractorRequests *prometheus.CounterVec

	// Metadata cache lookups
	ExtractorCache *prometheus.CounterVec

	// Catalog search calls
	CatalogSearches *prometheus.CounterVec

	// Analytics computation duration
	AnalyticsDuration prometheus.Histogram

	// Photos fed into the last analytics run
	AnalyticsBatchSize prometheus.Gauge

	// Mirror sync upserts
	MirrorUpserts prometheus.Counter
}

// New creates and registers all service metrics.
func New() *Metrics {
	return &Metrics{
		ExtractorRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lenslog_extractor_requests_total",
			Help: "Total metadata extractor requests",
		}, []string{"status"}), // status: success, not_found, error

		ExtractorCache: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lenslog_extractor_cache_total",
			Help: "Metadata cache lookups",
		}, []string{"result"}), // result: hit, miss

		CatalogSearches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lenslog_catalog_searches_total",
			Help: "Total catalog search calls",
		}, []string{"status"}), // status: success, error

		AnalyticsDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lenslog_analytics_duration_seconds",
			Help:    "Time taken to compute one analytics payload",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),

		AnalyticsBatchSize: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "lenslog_analytics_batch_size",
			Help: "Photos fed into the most recent analytics run",
		}),

		MirrorUpserts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lenslog_mirror_upserts_total",
			Help: "Total photo records upserted into the mirror store",
		}),
	}
}

// The increment helpers are nil-safe so tests can pass a nil registry.

// IncExtractorRequests increments the extractor request counter.
func (m *Metrics) IncExtractorRequests(status string) {
	if m == nil {
		return
	}
	m.ExtractorRequests.WithLabelValues(status).Inc()
}

// IncExtractorCache increments the cache lookup counter.
func (m *Metrics) IncExtractorCache(result string) {
	if m == nil {
		return
	}
	m.ExtractorCache.WithLabelValues(result).Inc()
}

// IncCatalogSearches increments the catalog search counter.
func (m *Metrics) IncCatalogSearches(status string) {
	if m == nil {
		return
	}
	m.CatalogSearches.WithLabelValues(status).Inc()
}

// ObserveAnalyticsDuration records an analytics run duration.
func (m *Metrics) ObserveAnalyticsDuration(seconds float64) {
	if m == nil {
		return
	}
	m.AnalyticsDuration.Observe(seconds)
}

// SetAnalyticsBatchSize records the size of the last analytics batch.
func (m *Metrics) SetAnalyticsBatchSize(n int) {
	if m == nil {
		return
	}
	m.AnalyticsBatchSize.Set(float64(n))
}

// AddMirrorUpserts adds to the mirror upsert counter.
func (m *Metrics) AddMirrorUpserts(n int) {
	if m == nil {
		return
	}
	m.MirrorUpserts.Add(float64(n))
}
