// Package metrics provides Prometheus metrics for the pharmacy assistant.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
type Metrics struct {
	PrescriptionsCreated prometheus.Counter
	TransfersReceived    prometheus.Counter
	RefillRequests       prometheus.Counter
	PriceQuotes          prometheus.Counter
	CatalogMisses        prometheus.Counter
	StatusLookups        prometheus.Counter
	RegistryLookups      *prometheus.CounterVec
	FeedbackEntries      *prometheus.CounterVec
}

// New creates and registers all metrics against reg. Main passes
// prometheus.DefaultRegisterer so the standard /metrics handler picks
// them up; tests pass a fresh registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		PrescriptionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "prescriptions_created_total",
			Help: "Total prescriptions submitted",
		}),
		TransfersReceived: factory.NewCounter(prometheus.CounterOpts{
			Name: "prescription_transfers_total",
			Help: "Total incoming prescription transfers",
		}),
		RefillRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "refill_requests_total",
			Help: "Total refill requests placed",
		}),
		PriceQuotes: factory.NewCounter(prometheus.CounterOpts{
			Name: "price_quotes_total",
			Help: "Total drug price quotes served",
		}),
		CatalogMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "catalog_misses_total",
			Help: "Lookups for medications absent from a catalog",
		}),
		StatusLookups: factory.NewCounter(prometheus.CounterOpts{
			Name: "order_status_lookups_total",
			Help: "Total order status lookups",
		}),
		RegistryLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registry_lookups_total",
			Help: "Drug information registry lookups by outcome",
		}, []string{"outcome"}),
		FeedbackEntries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "feedback_entries_total",
			Help: "Feedback entries stored by kind",
		}, []string{"kind"}),
	}
}
