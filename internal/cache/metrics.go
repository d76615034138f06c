package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// cacheHits tracks snapshot reads served without an upstream reload.
	cacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_hits_total",
		Help: "Total number of cache hits by view",
	}, []string{"view"})

	// cacheMisses tracks reads that found no fresh snapshot.
	cacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_misses_total",
		Help: "Total number of cache misses by view",
	}, []string{"view"})

	// loadDuration tracks upstream snapshot load latency.
	loadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "catalog_cache_load_duration_seconds",
		Help:    "Time taken to load a snapshot by view",
		Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
	}, []string{"view"})

	// loadErrors tracks failed snapshot loads.
	loadErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_load_errors_total",
		Help: "Total number of snapshot load errors by view",
	}, []string{"view"})

	// snapshotSize tracks the record count of the current snapshot.
	snapshotSize = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "catalog_cache_snapshot_records",
		Help: "Number of records in the current snapshot by view",
	}, []string{"view"})
)
