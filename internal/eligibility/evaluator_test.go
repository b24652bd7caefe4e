package eligibility

import (
	"testing"
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/model"
)

func activeGroup(max uint32) model.Group {
	return model.Group{ID: 1, Name: "sacco", MaxMembers: max, Active: true}
}

func TestCanJoin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		group      model.Group
		members    []model.Member
		pending    []model.PendingAction
		account    string
		wantAllow  bool
		wantReason string
	}{
		{
			name:      "open seat allows",
			group:     activeGroup(2),
			account:   "alice",
			wantAllow: true,
		},
		{
			name:       "inactive group denies",
			group:      model.Group{ID: 1, MaxMembers: 2},
			account:    "alice",
			wantReason: ReasonGroupInactive,
		},
		{
			name:       "existing member denies",
			group:      activeGroup(3),
			members:    []model.Member{{GroupID: 1, Account: "alice", Active: true}},
			account:    "alice",
			wantReason: ReasonAlreadyMember,
		},
		{
			name:  "duplicate pending action denies",
			group: activeGroup(3),
			pending: []model.PendingAction{
				{Kind: model.ActionJoinGroup, GroupID: 1, Account: "alice", Status: model.ActionConfirming},
			},
			account:    "alice",
			wantReason: ReasonDuplicatePending,
		},
		{
			name:    "terminal pending action does not block resubmission",
			group:   activeGroup(3),
			account: "alice",
			pending: []model.PendingAction{
				{Kind: model.ActionJoinGroup, GroupID: 1, Account: "alice", Status: model.ActionFailed},
			},
			wantAllow: true,
		},
		{
			name:    "one confirmed plus one pending fills a two seat group",
			group:   activeGroup(2),
			members: []model.Member{{GroupID: 1, Account: "bob", Active: true}},
			pending: []model.PendingAction{
				{Kind: model.ActionJoinGroup, GroupID: 1, Account: "carol", Status: model.ActionConfirming},
			},
			account:    "alice",
			wantReason: ReasonCapacityFull,
		},
		{
			name:    "pending join for another group does not block",
			group:   activeGroup(1),
			account: "alice",
			pending: []model.PendingAction{
				{Kind: model.ActionJoinGroup, GroupID: 9, Account: "alice", Status: model.ActionConfirming},
			},
			wantAllow: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CanJoin(tt.group, tt.members, tt.pending, tt.account)
			if got.Allowed != tt.wantAllow {
				t.Fatalf("CanJoin() allowed = %v, want %v (reason %q)", got.Allowed, tt.wantAllow, got.Reason)
			}
			if !tt.wantAllow && got.Reason != tt.wantReason {
				t.Fatalf("CanJoin() reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanCreate(t *testing.T) {
	t.Parallel()

	valid := model.GroupCreateParams{
		Name:               "harambee",
		DepositAmount:      100,
		ContributionAmount: 50,
		PenaltyRate:        10,
		MaxMembers:         5,
		CycleDuration:      model.CadenceDaily,
		StartAt:            time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name       string
		mutate     func(p *model.GroupCreateParams)
		wantAllow  bool
		wantReason string
	}{
		{name: "valid params allow", mutate: func(*model.GroupCreateParams) {}, wantAllow: true},
		{name: "missing name", mutate: func(p *model.GroupCreateParams) { p.Name = "" }, wantReason: ReasonNameRequired},
		{name: "missing start time", mutate: func(p *model.GroupCreateParams) { p.StartAt = time.Time{} }, wantReason: ReasonStartTimeRequired},
		{name: "zero max members", mutate: func(p *model.GroupCreateParams) { p.MaxMembers = 0 }, wantReason: ReasonNoMembers},
		{name: "penalty above 100", mutate: func(p *model.GroupCreateParams) { p.PenaltyRate = 101 }, wantReason: ReasonPenaltyRange},
		{name: "zero cycle duration", mutate: func(p *model.GroupCreateParams) { p.CycleDuration = 0 }, wantReason: ReasonCycleDuration},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := valid
			tt.mutate(&p)
			got := CanCreate(p)
			if got.Allowed != tt.wantAllow {
				t.Fatalf("CanCreate() allowed = %v, want %v (reason %q)", got.Allowed, tt.wantAllow, got.Reason)
			}
			if !tt.wantAllow && got.Reason != tt.wantReason {
				t.Fatalf("CanCreate() reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}
