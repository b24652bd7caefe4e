package ledger

import (
	"context"
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/model"
)

type (
	// GatewayMetrics records metrics for gateway calls.
	GatewayMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// ObservedGateway wraps a Gateway with metrics instrumentation.
type ObservedGateway struct {
	gateway Gateway
	metrics GatewayMetrics
}

// NewObservedGateway constructs an instrumented gateway.
func NewObservedGateway(gateway Gateway, metrics GatewayMetrics) *ObservedGateway {
	return &ObservedGateway{
		gateway: gateway,
		metrics: metrics,
	}
}

// LatestGroupID returns the highest assigned group id.
func (o *ObservedGateway) LatestGroupID(ctx context.Context) (id uint64, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("latest_group_id", err, started)
	}()
	return o.gateway.LatestGroupID(ctx)
}

// ReadBatch fetches the queried groups.
func (o *ObservedGateway) ReadBatch(ctx context.Context, queries []GroupQuery) (results []GroupResult, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("read_batch", err, started)
	}()
	return o.gateway.ReadBatch(ctx, queries)
}

// Submit forwards a transaction.
func (o *ObservedGateway) Submit(ctx context.Context, tx Tx) (handle string, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("submit", err, started)
	}()
	return o.gateway.Submit(ctx, tx)
}

// PollStatus reports the state of a submitted transaction.
func (o *ObservedGateway) PollStatus(ctx context.Context, txHandle string) (status TxStatus, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("poll_status", err, started)
	}()
	return o.gateway.PollStatus(ctx, txHandle)
}

// Subscribe streams confirmed events.
func (o *ObservedGateway) Subscribe(ctx context.Context) (events <-chan model.Event, err error) {
	started := time.Now()
	defer func() {
		o.metrics.Observe("subscribe", err, started)
	}()
	return o.gateway.Subscribe(ctx)
}
