package model

import "time"

// ActionKind identifies a write operation submitted to the ledger.
type ActionKind string

var (
	ActionCreateGroup ActionKind = "create_group"
	ActionJoinGroup   ActionKind = "join_group"
)

// ActionStatus is the lifecycle state of a pending action.
type ActionStatus string

var (
	ActionSubmitted  ActionStatus = "submitted"
	ActionConfirming ActionStatus = "confirming"
	ActionConfirmed  ActionStatus = "confirmed"
	ActionFailed     ActionStatus = "failed"
	ActionSuperseded ActionStatus = "superseded"
)

// Terminal reports whether the status is final.
func (s ActionStatus) Terminal() bool {
	return s == ActionConfirmed || s == ActionFailed || s == ActionSuperseded
}

// Reason codes carried on terminal actions.
const (
	ReasonConfirmationTimeout = "confirmation_timeout"
	ReasonRetriesExhausted    = "retries_exhausted"
	ReasonLedgerRejected      = "ledger_rejected"
	ReasonContextCanceled     = "context_canceled"
	ReasonSupersededConfirmed = "superseded_confirmed"
	ReasonSupersededConflict  = "superseded_conflict"
)

// PendingAction is a locally tracked write-in-flight. GroupID is zero for a
// create action until its confirmation assigns one. BaselineGroupID is the
// highest group id known when the action was submitted; reconciliation only
// matches a create against groups above it. FinishedAt is set when the action
// reaches a terminal status.
type PendingAction struct {
	Handle          string
	Kind            ActionKind
	GroupID         uint64
	Account         string
	Params          *GroupCreateParams
	BaselineGroupID uint64
	SubmittedAt     time.Time
	Deadline        time.Time
	FinishedAt      time.Time
	TxHandle        string
	Status          ActionStatus
	Reason          string
	CancelRequested bool
}
