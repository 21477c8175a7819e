// file: internal/metrics/metrics.go
// version: 1.0.0
// guid: 6e8f0a2b-4c5d-4e7f-9a1b-3c5d7e9f0a2b

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	searchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "school_finder",
		Name:      "searches_total",
		Help:      "Total number of search requests by outcome",
	}, []string{"outcome"})
	searchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "school_finder",
		Name:      "search_duration_seconds",
		Help:      "Histogram of search durations in seconds",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms up to ~4s
	})
	datasetLoads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "school_finder",
		Name:      "dataset_loads_total",
		Help:      "Total number of dataset loads by source",
	}, []string{"source"})

	datasetRecordsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "school_finder",
		Name:      "dataset_records",
		Help:      "Number of records in the active dataset",
	})
	cacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "school_finder",
		Name:      "search_cache_hits_total",
		Help:      "Total number of search responses served from cache",
	})
	cacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "school_finder",
		Name:      "search_cache_misses_total",
		Help:      "Total number of search cache misses",
	})
)

// Search outcomes used as label values.
const (
	OutcomeOK            = "ok"
	OutcomeNoMatch       = "no_match"
	OutcomeEmptyDistrict = "empty_district"
	OutcomeEmptyDataset  = "empty_dataset"
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(searchesTotal, searchDuration, datasetLoads,
			datasetRecordsGauge, cacheHits, cacheMisses)
	})
}

// Search lifecycle helpers
func IncSearch(outcome string) { searchesTotal.WithLabelValues(outcome).Inc() }
func ObserveSearchDuration(d time.Duration) {
	searchDuration.Observe(d.Seconds())
}
func IncDatasetLoad(source string) { datasetLoads.WithLabelValues(source).Inc() }

// Gauges and cache counters
func SetDatasetRecords(n int) { datasetRecordsGauge.Set(float64(n)) }
func IncCacheHit()            { cacheHits.Inc() }
func IncCacheMiss()           { cacheMisses.Inc() }
