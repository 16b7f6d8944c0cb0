// Package metrics holds the Prometheus collectors of the quotation service.
// They are registered on the default registry and exposed by promhttp on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "quotation"

var (
	// StoreMutations counts catalog store mutations by operation.
	StoreMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "mutations_total",
			Help:      "Catalog store mutations by operation.",
		},
		[]string{"op"},
	)

	// SlotWrites counts persisted state writes by result (ok / error).
	SlotWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "persistence",
			Name:      "slot_writes_total",
			Help:      "Writes of the persisted quotation slot by result.",
		},
		[]string{"result"},
	)

	// DescriptionRequests counts description generations by outcome.
	DescriptionRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "description",
			Name:      "requests_total",
			Help:      "Description generations by outcome (generated, no_credentials, empty, error, superseded).",
		},
		[]string{"outcome"},
	)

	// Exports counts rendered documents by format.
	Exports = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "document",
			Name:      "exports_total",
			Help:      "Rendered quotation documents by format.",
		},
		[]string{"format"},
	)
)

func init() {
	prometheus.MustRegister(StoreMutations, SlotWrites, DescriptionRequests, Exports)
}

// Handler returns the scrape endpoint handler
func Handler() http.Handler {
	return promhttp.Handler()
}
