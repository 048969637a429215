// Package monitoring collects Prometheus metrics for catalog operations and
// recipe pricing on a private registry.
package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values
const (
	OutcomeOK       = "ok"
	OutcomeMiss     = "miss"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeDangling = "dangling"
	OutcomeError    = "error"
)

// Monitor collects the service metrics on its own registry
type Monitor struct {
	registry     *prometheus.Registry
	storeOps     *prometheus.CounterVec
	calculations *prometheus.CounterVec
	finalPrice   prometheus.Histogram
	entities     *prometheus.GaugeVec
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	m := &Monitor{
		registry: prometheus.NewRegistry(),
		storeOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipecost_store_operations_total",
				Help: "Catalog operations by entity, operation and outcome",
			},
			[]string{"entity", "operation", "outcome"},
		),
		calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipecost_calculations_total",
				Help: "Recipe price calculations by outcome",
			},
			[]string{"outcome"},
		),
		finalPrice: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "recipecost_recipe_final_price",
				Help:    "Final prices produced by successful calculations",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 12),
			},
		),
		entities: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "recipecost_catalog_entities",
				Help: "Number of stored records by entity",
			},
			[]string{"entity"},
		),
	}

	m.registry.MustRegister(m.storeOps, m.calculations, m.finalPrice, m.entities)
	return m
}

// RecordStoreOp counts one catalog operation
func (m *Monitor) RecordStoreOp(entity, operation, outcome string) {
	m.storeOps.WithLabelValues(entity, operation, outcome).Inc()
}

// RecordCalculation counts one calculation and, for successful ones,
// observes the resulting price
func (m *Monitor) RecordCalculation(outcome string, finalPrice float64) {
	m.calculations.WithLabelValues(outcome).Inc()
	if outcome == OutcomeOK {
		m.finalPrice.Observe(finalPrice)
	}
}

// SetEntityCount records how many records of entity are stored
func (m *Monitor) SetEntityCount(entity string, n int) {
	m.entities.WithLabelValues(entity).Set(float64(n))
}

// Registry exposes the underlying registry
func (m *Monitor) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Monitor) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
