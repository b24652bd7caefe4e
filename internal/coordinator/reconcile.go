package coordinator

import (
	"context"

	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"github.com/chamadapp/chama-coordinator-backend/internal/registry"
	"github.com/chamadapp/chama-coordinator-backend/internal/view"
	"go.uber.org/zap"
)

// Run consumes the ledger's event subscription until the context is
// canceled, journaling and applying each confirmed event and reconciling
// pending actions afterward. Reconnects after stream breaks.
func (c *Coordinator) Run(ctx context.Context) error {
	c.mu.Lock()
	c.runCtx = ctx
	c.mu.Unlock()

	for {
		if ctx.Err() != nil {
			c.runWG.Wait()
			return ctx.Err()
		}

		events, err := c.gateway.Subscribe(ctx)
		if err != nil {
			c.logger.Warn("subscribe failed, backing off", zap.Error(err))
			if sleepErr := c.sleep(ctx, c.cfg.PollInterval); sleepErr != nil {
				c.runWG.Wait()
				return sleepErr
			}
			continue
		}

		for ev := range events {
			if err := c.journal.Append(ev); err != nil {
				c.logger.Error("journal append failed", zap.Uint64("group", ev.GroupID), zap.Error(err))
			}
			if err := c.cache.ApplyConfirmed(ev); err != nil {
				c.logger.Warn("event not applied", zap.Uint64("group", ev.GroupID), zap.Uint64("sequence", ev.Sequence), zap.Error(err))
			}
		}
		c.Reconcile(c.cache.Snapshot())
		c.logger.Info("event stream closed, resubscribing")
		if sleepErr := c.sleep(ctx, c.cfg.PollInterval); sleepErr != nil {
			c.runWG.Wait()
			return sleepErr
		}
	}
}

// Reconcile resolves pending actions against a fresh snapshot: an action
// whose intended effect is already on-ledger is superseded as an idempotent
// success, and one whose effect has become impossible is superseded as a
// conflict. A join that timed out locally but later shows up in a snapshot is
// flipped to superseded so membership is never double-counted.
func (c *Coordinator) Reconcile(snap *registry.Snapshot) {
	c.mu.Lock()
	candidates := make([]model.PendingAction, 0, len(c.actions))
	for _, a := range c.actions {
		switch {
		case !a.Status.Terminal():
			candidates = append(candidates, *a)
		case a.Status == model.ActionFailed &&
			(a.Reason == model.ReasonConfirmationTimeout || a.Reason == model.ReasonContextCanceled):
			candidates = append(candidates, *a)
		}
	}
	c.mu.Unlock()

	for _, a := range candidates {
		switch a.Kind {
		case model.ActionJoinGroup:
			c.reconcileJoin(a, snap)
		case model.ActionCreateGroup:
			c.reconcileCreate(a, snap)
		}
	}
}

func (c *Coordinator) reconcileJoin(a model.PendingAction, snap *registry.Snapshot) {
	group, members, ok := snap.Group(a.GroupID)
	if !ok {
		return
	}

	for _, m := range members {
		if m.Account == a.Account && m.Active {
			c.transition(a.Handle, model.ActionSuperseded, model.ReasonSupersededConfirmed)
			return
		}
	}

	if a.Status.Terminal() {
		// Failed action without its effect present: leave it failed.
		return
	}
	if !group.Active {
		c.transition(a.Handle, model.ActionSuperseded, model.ReasonSupersededConflict)
		return
	}
	if view.CapacityRemaining(group, members, 0) == 0 {
		c.transition(a.Handle, model.ActionSuperseded, model.ReasonSupersededConflict)
	}
}

func (c *Coordinator) reconcileCreate(a model.PendingAction, snap *registry.Snapshot) {
	if a.Params == nil {
		return
	}
	for id, g := range snap.Groups {
		if id <= a.BaselineGroupID {
			// Groups that existed when the action was submitted cannot be
			// its effect, whatever their parameters.
			continue
		}
		if g.Name == a.Params.Name && g.StartAt.Equal(a.Params.StartAt) && g.MaxMembers == a.Params.MaxMembers {
			c.mu.Lock()
			if tracked, ok := c.actions[a.Handle]; ok && tracked.GroupID == 0 {
				tracked.GroupID = id
			}
			c.mu.Unlock()
			c.transition(a.Handle, model.ActionSuperseded, model.ReasonSupersededConfirmed)
			return
		}
	}
}
