// Package service exposes the caller-facing operations of the coordination
// core: requesting writes, reading view models, and watching action status.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/coordinator"
	"github.com/chamadapp/chama-coordinator-backend/internal/eligibility"
	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"github.com/chamadapp/chama-coordinator-backend/internal/registry"
	"github.com/chamadapp/chama-coordinator-backend/internal/schedule"
	"github.com/chamadapp/chama-coordinator-backend/internal/view"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

const viewCacheSize = 4096

// ErrGroupUnknown reports a request against a group id the cache has never
// seen.
var ErrGroupUnknown = errors.New("unknown group")

// viewKey identifies a derivable view: same snapshot version, same cycle,
// same pending-join pressure means the same view model.
type viewKey struct {
	groupID      uint64
	version      uint64
	cycleIndex   int64
	pendingJoins int
}

// Core ties the cache, the pure derivation layers, and the coordinator into
// the operations callers see.
type Core struct {
	logger      *zap.Logger
	cache       *registry.Cache
	coordinator *coordinator.Coordinator
	views       *lru.Cache[viewKey, view.GroupView]
	now         func() time.Time
}

// NewCore builds the caller-facing facade.
func NewCore(cache *registry.Cache, coord *coordinator.Coordinator, logger *zap.Logger) (*Core, error) {
	views, err := lru.New[viewKey, view.GroupView](viewCacheSize)
	if err != nil {
		return nil, fmt.Errorf("build view cache: %w", err)
	}
	return &Core{
		logger:      logger.Named("core"),
		cache:       cache,
		coordinator: coord,
		views:       views,
		now:         time.Now,
	}, nil
}

// RequestCreateGroup validates and submits a create-group action, returning
// its handle immediately.
func (c *Core) RequestCreateGroup(ctx context.Context, params model.GroupCreateParams, account string) (model.PendingAction, error) {
	return c.coordinator.SubmitCreate(ctx, params, account)
}

// RequestJoinGroup validates and submits a join action against the cached
// group state, returning its handle immediately.
func (c *Core) RequestJoinGroup(ctx context.Context, groupID uint64, account string) (model.PendingAction, error) {
	group, members, ok, stale := c.cache.Group(groupID)
	if !ok {
		return model.PendingAction{}, fmt.Errorf("%w: %d", ErrGroupUnknown, groupID)
	}
	if stale {
		c.logger.Debug("joining against stale group state", zap.Uint64("group", groupID))
	}
	return c.coordinator.SubmitJoin(ctx, group, members, account)
}

// CheckJoin reports whether a join would currently be allowed, without
// submitting anything.
func (c *Core) CheckJoin(groupID uint64, account string) (eligibility.Decision, error) {
	group, members, ok, _ := c.cache.Group(groupID)
	if !ok {
		return eligibility.Decision{}, fmt.Errorf("%w: %d", ErrGroupUnknown, groupID)
	}
	return eligibility.CanJoin(group, members, c.coordinator.PendingActions(), account), nil
}

// GroupView returns the view model for one group.
func (c *Core) GroupView(groupID uint64) (view.GroupView, error) {
	snap := c.cache.Snapshot()
	group, members, ok := snap.Group(groupID)
	if !ok {
		// Warm the cache for the next caller.
		c.cache.Group(groupID)
		return view.GroupView{}, fmt.Errorf("%w: %d", ErrGroupUnknown, groupID)
	}
	return c.derive(snap, group, members), nil
}

// GroupViews returns view models for every cached group.
func (c *Core) GroupViews() []view.GroupView {
	snap := c.cache.Snapshot()
	out := make([]view.GroupView, 0, len(snap.Groups))
	for id, group := range snap.Groups {
		out = append(out, c.derive(snap, group, snap.MembersByGroup[id]))
	}
	return out
}

// Action returns the current state of a tracked action.
func (c *Core) Action(handle string) (model.PendingAction, error) {
	return c.coordinator.Action(handle)
}

// OnActionStatus registers a status-change callback for the handle.
func (c *Core) OnActionStatus(handle string, fn coordinator.StatusCallback) error {
	return c.coordinator.OnActionStatus(handle, fn)
}

// RequestCancel asks for best-effort cancellation of a pending action.
func (c *Core) RequestCancel(handle string) error {
	return c.coordinator.RequestCancel(handle)
}

// derive builds (or reuses) the view model for a group. Derivation is pure,
// so a view is reusable as long as the snapshot version, the cycle, and the
// pending-join pressure are unchanged.
func (c *Core) derive(snap *registry.Snapshot, group model.Group, members []model.Member) view.GroupView {
	now := c.now()
	pending := c.coordinator.PendingActions()
	key := viewKey{
		groupID:      group.ID,
		version:      snap.Version,
		cycleIndex:   schedule.CycleAt(group.StartAt, group.CycleDuration, now).Index,
		pendingJoins: view.PendingJoinCount(pending, group.ID),
	}

	v, ok := c.views.Get(key)
	if !ok {
		v = view.Derive(group, members, pending, now)
		c.views.Add(key, v)
	}
	v.Stale = c.cache.Stale(group.ID)
	v.AsOfVersion = snap.Version
	return v
}
