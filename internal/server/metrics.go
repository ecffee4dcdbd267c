package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts claim traffic by outcome. Labels stay low-cardinality:
// species and claim type only.
type Metrics struct {
	ClaimsSubmitted *prometheus.CounterVec
	ClaimsRejected  *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		ClaimsSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockclaims",
			Name:      "claims_submitted_total",
			Help:      "Claims accepted and persisted.",
		}, []string{"species", "type"}),
		ClaimsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockclaims",
			Name:      "claims_rejected_total",
			Help:      "Claim submissions rejected by validation.",
		}, []string{"species", "type"}),
	}
}
