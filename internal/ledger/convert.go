package ledger

import (
	"fmt"
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"github.com/chamadapp/chama-coordinator-backend/pkg/safe"
)

type wireGroup struct {
	ID                 uint64 `json:"id"`
	Name               string `json:"name"`
	Description        string `json:"description"`
	DepositAmount      uint64 `json:"depositAmount"`
	ContributionAmount uint64 `json:"contributionAmount"`
	PenaltyRate        uint8  `json:"penaltyRate"`
	MaxMembers         uint32 `json:"maxMembers"`
	CycleSeconds       int64  `json:"cycleSeconds"`
	StartAt            int64  `json:"startAt"`
	Active             bool   `json:"active"`
}

type wireMember struct {
	GroupID      uint64 `json:"groupId"`
	Account      string `json:"account"`
	JoinedAt     int64  `json:"joinedAt"`
	Contributed  uint64 `json:"contributed"`
	MissedCycles uint32 `json:"missedCycles"`
	Active       bool   `json:"active"`
}

type wireGroupResult struct {
	Group    *wireGroup   `json:"group"`
	Members  []wireMember `json:"members"`
	Sequence uint64       `json:"sequence"`
	NotFound bool         `json:"notFound"`
	Error    string       `json:"error"`
}

type wireEvent struct {
	Kind     string      `json:"kind"`
	GroupID  uint64      `json:"groupId"`
	Sequence uint64      `json:"sequence"`
	At       int64       `json:"at"`
	Group    *wireGroup  `json:"group,omitempty"`
	Member   *wireMember `json:"member,omitempty"`
}

type wireTxStatus struct {
	State     string     `json:"state"`
	Event     *wireEvent `json:"event,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	Transient bool       `json:"transient,omitempty"`
}

type wireTx struct {
	Kind    string     `json:"kind"`
	Account string     `json:"account"`
	GroupID uint64     `json:"groupId,omitempty"`
	Deposit uint64     `json:"deposit,omitempty"`
	Group   *wireGroup `json:"group,omitempty"`
}

func convertGroup(w wireGroup) (model.Group, error) {
	cycleSeconds, err := safe.Uint64(w.CycleSeconds)
	if err != nil || cycleSeconds == 0 {
		return model.Group{}, fmt.Errorf("group %d has invalid cycle duration %d", w.ID, w.CycleSeconds)
	}
	return model.Group{
		ID:                 w.ID,
		Name:               w.Name,
		Description:        w.Description,
		DepositAmount:      w.DepositAmount,
		ContributionAmount: w.ContributionAmount,
		PenaltyRate:        w.PenaltyRate,
		MaxMembers:         w.MaxMembers,
		CycleDuration:      time.Duration(cycleSeconds) * time.Second,
		StartAt:            time.Unix(w.StartAt, 0).UTC(),
		Active:             w.Active,
	}, nil
}

func convertMember(w wireMember) model.Member {
	return model.Member{
		GroupID:      w.GroupID,
		Account:      w.Account,
		JoinedAt:     time.Unix(w.JoinedAt, 0).UTC(),
		Contributed:  w.Contributed,
		MissedCycles: w.MissedCycles,
		Active:       w.Active,
	}
}

func convertGroupResult(w wireGroupResult) GroupResult {
	if w.NotFound {
		return GroupResult{Err: ErrGroupNotFound}
	}
	if w.Error != "" {
		return GroupResult{Err: fmt.Errorf("ledger read: %s", w.Error)}
	}
	if w.Group == nil {
		return GroupResult{Err: fmt.Errorf("ledger read: result without group payload")}
	}

	group, err := convertGroup(*w.Group)
	if err != nil {
		return GroupResult{Err: err}
	}
	members := make([]model.Member, 0, len(w.Members))
	for _, m := range w.Members {
		members = append(members, convertMember(m))
	}
	return GroupResult{Group: group, Members: members, Sequence: w.Sequence}
}

func convertEvent(w wireEvent) (model.Event, error) {
	kind := model.EventKind(w.Kind)
	switch kind {
	case model.EventGroupCreated, model.EventMemberJoined, model.EventGroupDeactivated, model.EventContributionRecorded:
	default:
		return model.Event{}, fmt.Errorf("unknown event kind %q", w.Kind)
	}

	ev := model.Event{
		Kind:     kind,
		GroupID:  w.GroupID,
		Sequence: w.Sequence,
		At:       time.Unix(w.At, 0).UTC(),
	}
	if w.Group != nil {
		group, err := convertGroup(*w.Group)
		if err != nil {
			return model.Event{}, err
		}
		ev.Group = &group
	}
	if w.Member != nil {
		member := convertMember(*w.Member)
		ev.Member = &member
	}
	if kind == model.EventGroupCreated && ev.Group == nil {
		return model.Event{}, fmt.Errorf("group_created event %d/%d without group payload", w.GroupID, w.Sequence)
	}
	if (kind == model.EventMemberJoined || kind == model.EventContributionRecorded) && ev.Member == nil {
		return model.Event{}, fmt.Errorf("%s event %d/%d without member payload", kind, w.GroupID, w.Sequence)
	}
	return ev, nil
}

func convertTxStatus(w wireTxStatus) (TxStatus, error) {
	switch TxState(w.State) {
	case TxPending:
		return TxStatus{State: TxPending}, nil
	case TxConfirmed:
		if w.Event == nil {
			return TxStatus{}, fmt.Errorf("confirmed status without event")
		}
		ev, err := convertEvent(*w.Event)
		if err != nil {
			return TxStatus{}, err
		}
		return TxStatus{State: TxConfirmed, Event: &ev}, nil
	case TxFailed:
		return TxStatus{State: TxFailed, Reason: w.Reason, Transient: w.Transient}, nil
	default:
		return TxStatus{}, fmt.Errorf("unknown tx state %q", w.State)
	}
}

func encodeTx(tx Tx) wireTx {
	w := wireTx{
		Kind:    string(tx.Kind),
		Account: tx.Account,
		GroupID: tx.GroupID,
		Deposit: tx.Deposit,
	}
	if tx.Params != nil {
		w.Group = &wireGroup{
			Name:               tx.Params.Name,
			Description:        tx.Params.Description,
			DepositAmount:      tx.Params.DepositAmount,
			ContributionAmount: tx.Params.ContributionAmount,
			PenaltyRate:        tx.Params.PenaltyRate,
			MaxMembers:         tx.Params.MaxMembers,
			CycleSeconds:       int64(tx.Params.CycleDuration / time.Second),
			StartAt:            tx.Params.StartAt.Unix(),
		}
	}
	return w
}
