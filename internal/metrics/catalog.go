package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every iconhub metric.
const Namespace = "iconhub"

// Catalog and store Prometheus metrics.
var (
	CatalogFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "catalog_fallbacks_total",
			Help:      "Catalog operations that absorbed a store error and returned an empty value",
		},
		[]string{"operation"},
	)

	StoreOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Entity store operation duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"driver", "op", "status"},
	)

	ImportedRecordsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "imported_records_total",
			Help:      "Records written by the asset importer",
		},
		[]string{"kind"}, // category / subcategory / tag / icon / skipped
	)
)

var registerCatalogOnce sync.Once

// RegisterCatalogMetrics registers catalog and store metrics with the default
// registry. Safe to call more than once.
func RegisterCatalogMetrics() {
	registerCatalogOnce.Do(func() {
		prometheus.MustRegister(CatalogFallbacksTotal)
		prometheus.MustRegister(StoreOperationDuration)
		prometheus.MustRegister(ImportedRecordsTotal)
	})
}
