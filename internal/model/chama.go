// Package model defines domain models for chama coordination.
package model

import "time"

// Cadence presets offered when creating a group. The ledger stores the raw
// duration in seconds, so any positive duration is accepted on read.
const (
	CadenceDaily   = 24 * time.Hour
	CadenceWeekly  = 7 * 24 * time.Hour
	CadenceMonthly = 30 * 24 * time.Hour
)

// Group represents a chama: a rotating group-savings circle recorded on the
// ledger. Amounts are integral base units.
type Group struct {
	ID                 uint64
	Name               string
	Description        string
	DepositAmount      uint64
	ContributionAmount uint64
	PenaltyRate        uint8
	MaxMembers         uint32
	CycleDuration      time.Duration
	StartAt            time.Time
	Active             bool
}

// Member records one account's participation in a group. Members are never
// deleted; an on-ledger exit only clears Active.
type Member struct {
	GroupID      uint64
	Account      string
	JoinedAt     time.Time
	Contributed  uint64
	MissedCycles uint32
	Active       bool
}

// Cycle is a derived contribution period. Index -1 means the group has not
// started yet and there is no due cycle.
type Cycle struct {
	Index     int64
	Start     time.Time
	End       time.Time
	DueAmount uint64
}

// NotStarted reports whether the cycle describes a group before its start time.
func (c Cycle) NotStarted() bool {
	return c.Index < 0
}

// GroupCreateParams carries caller input for a create-group request.
type GroupCreateParams struct {
	Name               string
	Description        string
	DepositAmount      uint64
	ContributionAmount uint64
	PenaltyRate        uint8
	MaxMembers         uint32
	CycleDuration      time.Duration
	StartAt            time.Time
}
