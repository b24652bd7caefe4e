package metrics

import (
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registryAppliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chama_coordinator",
		Subsystem: "registry",
		Name:      "event_applies_total",
		Help:      "Count of confirmed events handled by the cache, by outcome.",
	}, []string{"kind", "outcome"})

	registryRefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chama_coordinator",
		Subsystem: "registry",
		Name:      "refresh_total",
		Help:      "Count of full refresh passes.",
	}, []string{"status"})

	registryRefreshDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chama_coordinator",
		Subsystem: "registry",
		Name:      "refresh_duration_seconds",
		Help:      "Duration of full refresh passes.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})

	registryRefreshGroups = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chama_coordinator",
		Subsystem: "registry",
		Name:      "refresh_groups",
		Help:      "Groups applied per refresh pass.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"status"})

	registryRefillTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chama_coordinator",
		Subsystem: "registry",
		Name:      "refill_total",
		Help:      "Count of targeted refill flushes.",
	}, []string{"status"})

	registryRefillDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chama_coordinator",
		Subsystem: "registry",
		Name:      "refill_duration_seconds",
		Help:      "Duration of targeted refill flushes.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
)

// Registry tracks metrics for the group cache and its refresh loop.
type Registry struct{}

// NewRegistry constructs a metrics collector for the registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// ObserveApply records how the cache handled one confirmed event.
func (m Registry) ObserveApply(kind model.EventKind, outcome string) {
	registryAppliesTotal.WithLabelValues(string(kind), outcome).Inc()
}

// ObserveRefresh records one full refresh pass.
func (m Registry) ObserveRefresh(err error, groups int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	registryRefreshTotal.WithLabelValues(status).Inc()
	registryRefreshDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
	registryRefreshGroups.WithLabelValues(status).Observe(float64(groups))
}

// ObserveRefill records one targeted refill flush.
func (m Registry) ObserveRefill(err error, groups int, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	registryRefillTotal.WithLabelValues(status).Inc()
	registryRefillDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}
