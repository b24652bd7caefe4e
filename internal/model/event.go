package model

import "time"

// EventKind describes a confirmed state change read from the ledger.
type EventKind string

var (
	EventGroupCreated         EventKind = "group_created"
	EventMemberJoined         EventKind = "member_joined"
	EventGroupDeactivated     EventKind = "group_deactivated"
	EventContributionRecorded EventKind = "contribution_recorded"
)

// Event is a confirmed ledger event. Sequence numbers are per group,
// contiguous, and assigned by the ledger starting at 1.
type Event struct {
	Kind     EventKind
	GroupID  uint64
	Sequence uint64
	Group    *Group
	Member   *Member
	At       time.Time
}
