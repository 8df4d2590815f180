package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes.
const (
	outcomeOK            = "ok"
	outcomeShortCircuit  = "short_circuit"
	outcomeInvalidInput  = "validation_error"
	outcomeInvalidTarget = "invalid_target"
	outcomeFailed        = "provider_failure"
)

var outcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "glosa_gateway_outcomes_total",
		Help: "Gateway request outcomes by endpoint",
	},
	[]string{"endpoint", "outcome"},
)

func recordOutcome(endpoint, outcome string) {
	outcomesTotal.WithLabelValues(endpoint, outcome).Inc()
}
