// Package coordinator owns the lifecycle of in-flight write operations: it
// serializes conflicting actions, retries transient failures with backoff,
// applies confirmed outcomes to the registry cache, and reconciles pending
// actions against fresh snapshots (supersession).
package coordinator

import (
	"context"
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/ledger"
	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"github.com/chamadapp/chama-coordinator-backend/internal/registry"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// WriteGateway is the write-and-watch slice of the ledger gateway the
	// coordinator needs.
	WriteGateway interface {
		Submit(ctx context.Context, tx ledger.Tx) (string, error)
		PollStatus(ctx context.Context, txHandle string) (ledger.TxStatus, error)
		Subscribe(ctx context.Context) (<-chan model.Event, error)
	}

	// Registry is the cache surface only the coordinator may mutate.
	Registry interface {
		Snapshot() *registry.Snapshot
		ApplyConfirmed(ev model.Event) error
		Invalidate(groupID uint64)
	}

	// EventJournal persists confirmed events for replay after restart.
	EventJournal interface {
		Append(ev model.Event) error
	}

	// Metrics records coordinator activity.
	Metrics interface {
		ObserveSubmit(kind model.ActionKind, err error, started time.Time)
		ObserveOutcome(kind model.ActionKind, status model.ActionStatus, reason string)
		ObservePoll(err error, started time.Time)
	}
)
