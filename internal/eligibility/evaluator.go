// Package eligibility decides whether a requested create or join action is
// currently valid against a cached snapshot. Pure predicates, no I/O.
package eligibility

import (
	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"github.com/chamadapp/chama-coordinator-backend/internal/view"
)

// Denial reason codes.
const (
	ReasonGroupInactive    = "group_inactive"
	ReasonGroupUnknown     = "group_unknown"
	ReasonCapacityFull     = "capacity_full"
	ReasonAlreadyMember    = "already_member"
	ReasonDuplicatePending = "duplicate_pending_action"

	ReasonNameRequired      = "name_required"
	ReasonStartTimeRequired = "start_time_required"
	ReasonNoMembers         = "max_members_below_one"
	ReasonPenaltyRange      = "penalty_rate_out_of_range"
	ReasonCycleDuration     = "cycle_duration_not_positive"
)

// Decision is the outcome of an eligibility check.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allowed is the affirmative decision.
func Allowed() Decision { return Decision{Allowed: true} }

// Denied builds a refusal with a reason code.
func Denied(reason string) Decision { return Decision{Reason: reason} }

// CanJoin decides whether account may join the group, counting both confirmed
// members and non-terminal pending joins against capacity.
func CanJoin(g model.Group, members []model.Member, pending []model.PendingAction, account string) Decision {
	if !view.IsActive(g) {
		return Denied(ReasonGroupInactive)
	}
	for _, m := range members {
		if m.Account == account && m.Active {
			return Denied(ReasonAlreadyMember)
		}
	}
	for _, a := range pending {
		if a.GroupID == g.ID && a.Account == account && !a.Status.Terminal() {
			return Denied(ReasonDuplicatePending)
		}
	}
	if view.CapacityRemaining(g, members, view.PendingJoinCount(pending, g.ID)) == 0 {
		return Denied(ReasonCapacityFull)
	}
	return Allowed()
}

// CanCreate validates structural invariants of the parameters so malformed
// requests never reach the ledger. Amounts are unsigned by type and need no
// range check.
func CanCreate(p model.GroupCreateParams) Decision {
	if p.Name == "" {
		return Denied(ReasonNameRequired)
	}
	if p.StartAt.IsZero() {
		return Denied(ReasonStartTimeRequired)
	}
	if p.MaxMembers < 1 {
		return Denied(ReasonNoMembers)
	}
	if p.PenaltyRate > 100 {
		return Denied(ReasonPenaltyRange)
	}
	if p.CycleDuration <= 0 {
		return Denied(ReasonCycleDuration)
	}
	return Allowed()
}
