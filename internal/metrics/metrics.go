// Package metrics provides Prometheus counters for the registration flows.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/AnibalRGC/beefirst/internal/model"
)

// Claim outcome labels.
const (
	OutcomeClaimed  = "claimed"
	OutcomeRejected = "rejected"
)

// Metrics tracks claim and activation outcomes.
type Metrics struct {
	Claims      *prometheus.CounterVec
	Activations *prometheus.CounterVec
}

// New creates a Metrics instance with all registration metrics registered.
func New() *Metrics {
	return &Metrics{
		Claims: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "beefirst_claims_total",
			Help: "Total number of claim attempts by outcome",
		}, []string{"outcome"}),
		Activations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "beefirst_activations_total",
			Help: "Total number of verification attempts by result",
		}, []string{"result"}),
	}
}

// IncrementClaim records one claim attempt.
func (m *Metrics) IncrementClaim(outcome string) {
	m.Claims.WithLabelValues(outcome).Inc()
}

// IncrementActivation records one verification attempt by its store result.
func (m *Metrics) IncrementActivation(res model.VerifyResult) {
	m.Activations.WithLabelValues(res.String()).Inc()
}
