// Package metrics exposes Prometheus collectors behind the small observer
// interfaces the components accept.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chama_coordinator",
		Subsystem: "ledger_gateway",
		Name:      "operations_total",
		Help:      "Count of ledger gateway operations.",
	}, []string{"operation", "contract", "status"})
	gatewayOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chama_coordinator",
		Subsystem: "ledger_gateway",
		Name:      "operation_duration_seconds",
		Help:      "Duration of ledger gateway operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "contract", "status"})
)

// Gateway tracks metrics for calls to the ledger gateway.
type Gateway struct {
	contract string
}

// NewGateway constructs a metrics collector for gateway calls.
func NewGateway(contract string) *Gateway {
	if contract == "" {
		contract = "unknown"
	}
	return &Gateway{contract: contract}
}

// Observe records a single gateway call outcome and duration.
func (m Gateway) Observe(operation string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}

	gatewayOperationsTotal.WithLabelValues(operation, m.contract, status).Inc()
	gatewayOperationDuration.WithLabelValues(operation, m.contract, status).Observe(time.Since(started).Seconds())
}
