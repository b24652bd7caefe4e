package registry

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"go.uber.org/zap"
)

// reorderWindow bounds how far ahead of the expected sequence an event may be
// buffered. Gaps beyond it force a full group refetch instead of guessing.
const reorderWindow = 16

// ErrOutOfOrder reports an event the cache could not place within the reorder
// window. The group has been marked stale and queued for refetch.
var ErrOutOfOrder = errors.New("event out of order beyond reorder window")

type (
	// CacheMetrics records cache apply outcomes.
	CacheMetrics interface {
		ObserveApply(kind model.EventKind, outcome string)
	}
)

// groupSequence tracks per-group event ordering state. expected is the next
// sequence the cache can apply; pending holds buffered out-of-order events.
type groupSequence struct {
	expected uint64
	pending  map[uint64]model.Event
}

// Cache is the single source of truth for reads inside the core.
type Cache struct {
	logger  *zap.Logger
	metrics CacheMetrics

	mu        sync.Mutex
	snapshot  atomic.Pointer[Snapshot]
	sequences map[uint64]*groupSequence
	stale     map[uint64]struct{}
	refill    func(groupID uint64)
}

// NewCache constructs an empty cache.
func NewCache(logger *zap.Logger, metrics CacheMetrics) *Cache {
	c := &Cache{
		logger:    logger.Named("registry"),
		metrics:   metrics,
		sequences: map[uint64]*groupSequence{},
		stale:     map[uint64]struct{}{},
	}
	c.snapshot.Store(emptySnapshot())
	return c
}

// SetRefillRequester wires the async refill path used on miss or invalidate.
// Called once during startup, before any reads.
func (c *Cache) SetRefillRequester(refill func(groupID uint64)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refill = refill
}

// Snapshot returns the current immutable snapshot. Never blocks on network.
func (c *Cache) Snapshot() *Snapshot {
	return c.snapshot.Load()
}

// Group returns the last-known state of one group plus a staleness flag. A
// miss or stale hit queues an async refill and returns immediately.
func (c *Cache) Group(id uint64) (model.Group, []model.Member, bool, bool) {
	snap := c.snapshot.Load()
	g, members, ok := snap.Group(id)

	c.mu.Lock()
	_, stale := c.stale[id]
	refill := c.refill
	c.mu.Unlock()

	if (!ok || stale) && refill != nil {
		refill(id)
	}
	return g, members, ok, stale || !ok
}

// Invalidate forces the next read of the group to distrust the cache and
// queues a refetch.
func (c *Cache) Invalidate(groupID uint64) {
	c.mu.Lock()
	c.stale[groupID] = struct{}{}
	refill := c.refill
	c.mu.Unlock()

	c.logger.Debug("group invalidated", zap.Uint64("group", groupID))
	if refill != nil {
		refill(groupID)
	}
}

// ApplyConfirmed merges a confirmed ledger event into the snapshot. Events for
// one group must be applied in ledger sequence order; out-of-order arrivals
// are buffered within the reorder window and drained once the gap closes.
// Returns ErrOutOfOrder when the gap exceeds the window, in which case the
// group has already been marked stale and queued for refetch.
func (c *Cache) ApplyConfirmed(ev model.Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	seq := c.sequences[ev.GroupID]
	if seq == nil {
		seq = &groupSequence{expected: 1, pending: map[uint64]model.Event{}}
		c.sequences[ev.GroupID] = seq
	}

	switch {
	case ev.Sequence < seq.expected:
		// Already applied, e.g. a replay or a poll result racing the
		// subscription. Safe to drop.
		c.observe(ev.Kind, "duplicate")
		return nil

	case ev.Sequence > seq.expected:
		if ev.Sequence-seq.expected > reorderWindow {
			c.observe(ev.Kind, "out_of_order")
			c.logger.Warn("event gap exceeds reorder window, forcing refetch",
				zap.Uint64("group", ev.GroupID),
				zap.Uint64("expected", seq.expected),
				zap.Uint64("got", ev.Sequence))
			c.markStaleLocked(ev.GroupID)
			return fmt.Errorf("group %d expected sequence %d, got %d: %w", ev.GroupID, seq.expected, ev.Sequence, ErrOutOfOrder)
		}
		seq.pending[ev.Sequence] = ev
		c.observe(ev.Kind, "buffered")
		return nil
	}

	c.applyLocked(ev)
	seq.expected++
	c.observe(ev.Kind, "applied")

	// Drain any buffered successors the gap was hiding.
	for {
		next, ok := seq.pending[seq.expected]
		if !ok {
			return nil
		}
		delete(seq.pending, seq.expected)
		c.applyLocked(next)
		seq.expected++
		c.observe(next.Kind, "applied")
	}
}

// ApplyRead replaces a group's cached state with a fresh ledger read and
// resets its sequence bookkeeping. Reads carry the latest applied sequence,
// so buffered events at or below it are discarded.
func (c *Cache) ApplyRead(group model.Group, members []model.Member, sequence uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.snapshot.Load().clone()
	snap.Groups[group.ID] = group
	owned := make([]model.Member, len(members))
	copy(owned, members)
	snap.MembersByGroup[group.ID] = owned
	c.snapshot.Store(snap)

	seq := &groupSequence{expected: sequence + 1, pending: map[uint64]model.Event{}}
	if prev := c.sequences[group.ID]; prev != nil {
		for s, ev := range prev.pending {
			if s > sequence {
				seq.pending[s] = ev
			}
		}
	}
	c.sequences[group.ID] = seq
	delete(c.stale, group.ID)

	// The read may have made buffered successors applicable.
	for {
		next, ok := seq.pending[seq.expected]
		if !ok {
			return
		}
		delete(seq.pending, seq.expected)
		c.applyLocked(next)
		seq.expected++
		c.observe(next.Kind, "applied")
	}
}

// Stale reports whether the group is currently marked stale.
func (c *Cache) Stale(groupID uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.stale[groupID]
	return ok
}

func (c *Cache) markStaleLocked(groupID uint64) {
	c.stale[groupID] = struct{}{}
	delete(c.sequences, groupID)
	if c.refill != nil {
		go c.refill(groupID)
	}
}

func (c *Cache) applyLocked(ev model.Event) {
	snap := c.snapshot.Load().clone()

	switch ev.Kind {
	case model.EventGroupCreated:
		snap.Groups[ev.GroupID] = *ev.Group
		if _, ok := snap.MembersByGroup[ev.GroupID]; !ok {
			snap.MembersByGroup[ev.GroupID] = nil
		}

	case model.EventMemberJoined:
		members := snap.MembersByGroup[ev.GroupID]
		next := make([]model.Member, 0, len(members)+1)
		replaced := false
		for _, m := range members {
			if m.Account == ev.Member.Account {
				next = append(next, *ev.Member)
				replaced = true
				continue
			}
			next = append(next, m)
		}
		if !replaced {
			next = append(next, *ev.Member)
		}
		snap.MembersByGroup[ev.GroupID] = next

	case model.EventGroupDeactivated:
		g, ok := snap.Groups[ev.GroupID]
		if !ok {
			c.logger.Warn("deactivation for unknown group", zap.Uint64("group", ev.GroupID))
			break
		}
		g.Active = false
		snap.Groups[ev.GroupID] = g

	case model.EventContributionRecorded:
		members := snap.MembersByGroup[ev.GroupID]
		next := make([]model.Member, len(members))
		copy(next, members)
		for i, m := range next {
			if m.Account == ev.Member.Account {
				next[i] = *ev.Member
			}
		}
		snap.MembersByGroup[ev.GroupID] = next

	default:
		c.logger.Error("unknown event kind", zap.String("kind", string(ev.Kind)))
		return
	}

	c.snapshot.Store(snap)
}

func (c *Cache) observe(kind model.EventKind, outcome string) {
	if c.metrics != nil {
		c.metrics.ObserveApply(kind, outcome)
	}
}
