package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the settings service.
type Metrics struct {
	CatalogEntries *prometheus.GaugeVec   // labels: table
	CatalogLookups *prometheus.CounterVec // labels: table, result={hit,miss}

	// Routine dispatch metrics.
	JobsDispatched   *prometheus.CounterVec   // labels: routine
	DispatchErrors   *prometheus.CounterVec   // labels: routine
	DispatchDuration *prometheus.HistogramVec // labels: routine
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.CatalogEntries,
		m.CatalogLookups,
		m.JobsDispatched,
		m.DispatchErrors,
		m.DispatchDuration,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

// RecordCatalogSizes publishes the entry count of every catalog table.
func (m *Metrics) RecordCatalogSizes(sizes map[string]int) {
	for table, n := range sizes {
		m.CatalogEntries.WithLabelValues(table).Set(float64(n))
	}
}

func newMetrics() *Metrics {
	return &Metrics{
		CatalogEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "clim_settings",
			Name:      "catalog_entries",
			Help:      "Number of entries per catalog table.",
		}, []string{"table"}),
		CatalogLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clim_settings",
			Name:      "catalog_lookups_total",
			Help:      "Catalog lookups by table and result.",
		}, []string{"table", "result"}),
		JobsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clim_settings",
			Name:      "jobs_dispatched_total",
			Help:      "Routine jobs published to the worker topic.",
		}, []string{"routine"}),
		DispatchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clim_settings",
			Name:      "dispatch_errors_total",
			Help:      "Routine jobs that could not be published.",
		}, []string{"routine"}),
		DispatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clim_settings",
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent publishing a routine job.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"routine"}),
	}
}
