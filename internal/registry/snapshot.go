// Package registry caches the latest known ledger-derived state of all groups.
// Readers get an immutable snapshot reference; every mutation builds a new
// snapshot and swaps it in, so no reader ever observes a partial update.
package registry

import "github.com/chamadapp/chama-coordinator-backend/internal/model"

// Snapshot is an immutable view of all cached groups. Version increases
// monotonically with every applied change.
type Snapshot struct {
	Groups         map[uint64]model.Group
	MembersByGroup map[uint64][]model.Member
	Version        uint64
}

func emptySnapshot() *Snapshot {
	return &Snapshot{
		Groups:         map[uint64]model.Group{},
		MembersByGroup: map[uint64][]model.Member{},
	}
}

// clone copies the snapshot maps shallowly; the group being mutated must have
// its member slice copied by the caller before modification.
func (s *Snapshot) clone() *Snapshot {
	next := &Snapshot{
		Groups:         make(map[uint64]model.Group, len(s.Groups)+1),
		MembersByGroup: make(map[uint64][]model.Member, len(s.MembersByGroup)+1),
		Version:        s.Version + 1,
	}
	for id, g := range s.Groups {
		next.Groups[id] = g
	}
	for id, members := range s.MembersByGroup {
		next.MembersByGroup[id] = members
	}
	return next
}

// Group returns one group's state from the snapshot.
func (s *Snapshot) Group(id uint64) (model.Group, []model.Member, bool) {
	g, ok := s.Groups[id]
	if !ok {
		return model.Group{}, nil, false
	}
	return g, s.MembersByGroup[id], true
}
