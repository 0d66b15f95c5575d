package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics counts dispatched operations.
type Metrics struct {
	Operations *prometheus.CounterVec
}

// NewMetrics registers the dispatch metrics with registry, or with the default
// registerer if registry is nil.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "coinentry_operations_total",
				Help: "The total number of coin entry operations by coin, operation and outcome",
			},
			[]string{"coin", "operation", "outcome"},
		),
	}
}

func (m *Metrics) observe(coin string, operation string, err error) {
	if m == nil {
		return
	}

	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.Operations.WithLabelValues(coin, operation, outcome).Inc()
}
