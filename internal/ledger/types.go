// Package ledger defines the gateway contract to the external append-only
// ledger and a JSON/HTTP client for it. The core never writes ledger state
// synchronously: submissions return a transaction handle whose outcome is
// observed later through polling or the event subscription.
package ledger

import (
	"context"

	"github.com/chamadapp/chama-coordinator-backend/internal/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// TxState is the ledger-reported state of a submitted transaction.
type TxState string

var (
	TxPending   TxState = "pending"
	TxConfirmed TxState = "confirmed"
	TxFailed    TxState = "failed"
)

// TxStatus is the result of polling a transaction handle. Event is set on
// confirmation; Reason and Transient describe a failure.
type TxStatus struct {
	State     TxState
	Event     *model.Event
	Reason    string
	Transient bool
}

// Tx is a write submission. Kind selects which fields are meaningful:
// create carries Params, join carries GroupID and Deposit.
type Tx struct {
	Kind    model.ActionKind
	Account string
	GroupID uint64
	Deposit uint64
	Params  *model.GroupCreateParams
}

// GroupQuery requests one group's state in a batch read.
type GroupQuery struct {
	GroupID uint64
}

// GroupResult is one element of a batch read. Err is set per element so a
// single bad group does not fail the whole batch. Sequence is the latest
// event sequence the ledger has applied to the group.
type GroupResult struct {
	Group    model.Group
	Members  []model.Member
	Sequence uint64
	Err      error
}

// Gateway is the external ledger collaborator consumed by the core.
type Gateway interface {
	// LatestGroupID returns the highest assigned group id; groups are
	// numbered contiguously from 1.
	LatestGroupID(ctx context.Context) (uint64, error)
	// ReadBatch fetches the current state of the queried groups.
	ReadBatch(ctx context.Context, queries []GroupQuery) ([]GroupResult, error)
	// Submit forwards a transaction and returns its handle.
	Submit(ctx context.Context, tx Tx) (string, error)
	// PollStatus reports the current state of a submitted transaction.
	PollStatus(ctx context.Context, txHandle string) (TxStatus, error)
	// Subscribe streams confirmed events until the context is canceled.
	Subscribe(ctx context.Context) (<-chan model.Event, error)
}
