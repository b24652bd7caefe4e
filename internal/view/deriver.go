// Package view derives decision-ready facts from cached group snapshots.
// Everything here is a pure function over its inputs.
package view

import (
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"github.com/chamadapp/chama-coordinator-backend/internal/schedule"
)

// GroupView is the UI-agnostic view model for one group.
type GroupView struct {
	Group             model.Group
	Members           []model.Member
	ConfirmedMembers  int
	PendingJoins      int
	CapacityRemaining uint32
	Cycle             model.Cycle
	Stale             bool
	AsOfVersion       uint64
}

// IsActive reports whether the group accepts activity.
func IsActive(g model.Group) bool {
	return g.Active
}

// CapacityRemaining counts seats left, treating non-terminal pending joins as
// occupied so a group cannot be oversubscribed during the confirmation window.
// Never negative.
func CapacityRemaining(g model.Group, members []model.Member, pendingJoins int) uint32 {
	taken := activeCount(members) + pendingJoins
	if taken < 0 {
		taken = 0
	}
	if uint64(taken) >= uint64(g.MaxMembers) {
		return 0
	}
	return g.MaxMembers - uint32(taken)
}

// CurrentCycle returns the cycle active at now, with the group's contribution
// amount as the due amount once the group has started.
func CurrentCycle(g model.Group, now time.Time) model.Cycle {
	return schedule.CycleForGroup(g, now)
}

// PenaltyExposure returns what the member owes for the given cycle: the
// contribution amount scaled by the group's penalty rate, once the cycle has
// ended without the contribution having been recorded. Zero while the cycle is
// still open, before the group starts, or when the member has kept up.
func PenaltyExposure(g model.Group, m model.Member, cycle model.Cycle, now time.Time) uint64 {
	if cycle.NotStarted() || now.Before(cycle.End) {
		return 0
	}
	if contributedThrough(m, g) > uint64(cycle.Index) {
		return 0
	}
	return g.ContributionAmount * uint64(g.PenaltyRate) / 100
}

// Derive builds the view model for one group from a snapshot slice and the
// currently pending actions.
func Derive(g model.Group, members []model.Member, pending []model.PendingAction, now time.Time) GroupView {
	joins := PendingJoinCount(pending, g.ID)
	return GroupView{
		Group:             g,
		Members:           members,
		ConfirmedMembers:  activeCount(members),
		PendingJoins:      joins,
		CapacityRemaining: CapacityRemaining(g, members, joins),
		Cycle:             CurrentCycle(g, now),
	}
}

// PendingJoinCount counts non-terminal join actions targeting the group.
func PendingJoinCount(pending []model.PendingAction, groupID uint64) int {
	n := 0
	for _, a := range pending {
		if a.Kind == model.ActionJoinGroup && a.GroupID == groupID && !a.Status.Terminal() {
			n++
		}
	}
	return n
}

func activeCount(members []model.Member) int {
	n := 0
	for _, m := range members {
		if m.Active {
			n++
		}
	}
	return n
}

// contributedThrough reports how many full cycles the member has covered,
// assuming contributions are applied to cycles oldest-first.
func contributedThrough(m model.Member, g model.Group) uint64 {
	if g.ContributionAmount == 0 {
		return ^uint64(0)
	}
	return m.Contributed / g.ContributionAmount
}
