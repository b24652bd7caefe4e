package metrics

import (
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	coordinatorSubmitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chama_coordinator",
		Subsystem: "coordinator",
		Name:      "submits_total",
		Help:      "Count of transaction submissions forwarded to the ledger.",
	}, []string{"kind", "status"})

	coordinatorSubmitDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chama_coordinator",
		Subsystem: "coordinator",
		Name:      "submit_duration_seconds",
		Help:      "Duration of ledger submissions.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind", "status"})

	coordinatorOutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chama_coordinator",
		Subsystem: "coordinator",
		Name:      "action_outcomes_total",
		Help:      "Count of pending-action status transitions.",
	}, []string{"kind", "action_status", "reason"})

	coordinatorPollsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chama_coordinator",
		Subsystem: "coordinator",
		Name:      "polls_total",
		Help:      "Count of transaction status polls.",
	}, []string{"status"})

	coordinatorPollDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chama_coordinator",
		Subsystem: "coordinator",
		Name:      "poll_duration_seconds",
		Help:      "Duration of transaction status polls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"status"})
)

// Coordinator tracks metrics for the transaction coordinator.
type Coordinator struct{}

// NewCoordinator constructs a metrics collector for the coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{}
}

// ObserveSubmit records a submission attempt.
func (m Coordinator) ObserveSubmit(kind model.ActionKind, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	coordinatorSubmitsTotal.WithLabelValues(string(kind), status).Inc()
	coordinatorSubmitDuration.WithLabelValues(string(kind), status).Observe(time.Since(started).Seconds())
}

// ObserveOutcome records a pending-action status transition.
func (m Coordinator) ObserveOutcome(kind model.ActionKind, status model.ActionStatus, reason string) {
	if reason == "" {
		reason = "none"
	}
	coordinatorOutcomesTotal.WithLabelValues(string(kind), string(status), reason).Inc()
}

// ObservePoll records a status poll.
func (m Coordinator) ObservePoll(err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	coordinatorPollsTotal.WithLabelValues(status).Inc()
	coordinatorPollDuration.WithLabelValues(status).Observe(time.Since(started).Seconds())
}
