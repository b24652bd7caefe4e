package coordinator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/clock"
	"github.com/chamadapp/chama-coordinator-backend/internal/eligibility"
	"github.com/chamadapp/chama-coordinator-backend/internal/ledger"
	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StatusCallback is invoked after an action changes status. Callbacks run on
// the coordinator's goroutines and must not block.
type StatusCallback func(action model.PendingAction)

// Coordinator tracks every pending action and is the only component that
// submits to the ledger or mutates the registry cache.
type Coordinator struct {
	logger  *zap.Logger
	gateway WriteGateway
	cache   Registry
	journal EventJournal
	metrics Metrics
	cfg     Config

	now   func() time.Time
	sleep func(context.Context, time.Duration) error

	mu        sync.Mutex
	actions   map[string]*model.PendingAction
	inflight  map[string]string // (group, account) key -> handle
	keys      map[string]string // handle -> (group, account) key
	callbacks map[string][]StatusCallback
	runCtx    context.Context
	runWG     sync.WaitGroup
}

// New builds a Coordinator.
func New(
	gateway WriteGateway,
	cache Registry,
	journal EventJournal,
	metrics Metrics,
	cfg Config,
	logger *zap.Logger,
) (*Coordinator, error) {
	if metrics == nil {
		return nil, errors.New("coordinator metrics is required")
	}
	if journal == nil {
		return nil, errors.New("coordinator journal is required")
	}

	return &Coordinator{
		logger:    logger.Named("coordinator"),
		gateway:   gateway,
		cache:     cache,
		journal:   journal,
		metrics:   metrics,
		cfg:       cfg.withDefaults(),
		now:       time.Now,
		sleep:     clock.SleepWithContext,
		actions:   map[string]*model.PendingAction{},
		inflight:  map[string]string{},
		keys:      map[string]string{},
		callbacks: map[string][]StatusCallback{},
	}, nil
}

// SubmitJoin registers a join action for the account and forwards it to the
// ledger asynchronously. Eligibility is re-checked here, not only at the
// caller's decision time, to close the race between decision and submission.
// A second join for a pair that already has one in flight is a duplicate, not
// an eligibility refusal, so that check runs first.
func (c *Coordinator) SubmitJoin(ctx context.Context, snapGroup model.Group, members []model.Member, account string) (model.PendingAction, error) {
	key := inflightKey(snapGroup.ID, account)
	c.mu.Lock()
	existing, busy := c.inflight[key]
	c.mu.Unlock()
	if busy {
		return model.PendingAction{}, &DuplicateActionError{GroupID: snapGroup.ID, Account: account, Handle: existing}
	}

	if decision := eligibility.CanJoin(snapGroup, members, c.PendingActions(), account); !decision.Allowed {
		return model.PendingAction{}, &EligibilityError{Reason: decision.Reason}
	}

	action := model.PendingAction{
		Handle:      uuid.NewString(),
		Kind:        model.ActionJoinGroup,
		GroupID:     snapGroup.ID,
		Account:     account,
		SubmittedAt: c.now(),
		Status:      model.ActionSubmitted,
	}
	action.Deadline = action.SubmittedAt.Add(c.cfg.ConfirmTimeout)

	tx := ledger.Tx{
		Kind:    model.ActionJoinGroup,
		Account: account,
		GroupID: snapGroup.ID,
		Deposit: snapGroup.DepositAmount,
	}
	return c.register(ctx, action, tx)
}

// SubmitCreate validates the parameters, registers a create action, and
// forwards it to the ledger asynchronously.
func (c *Coordinator) SubmitCreate(ctx context.Context, params model.GroupCreateParams, account string) (model.PendingAction, error) {
	if decision := eligibility.CanCreate(params); !decision.Allowed {
		return model.PendingAction{}, &EligibilityError{Reason: decision.Reason}
	}

	p := params
	action := model.PendingAction{
		Handle:          uuid.NewString(),
		Kind:            model.ActionCreateGroup,
		Account:         account,
		Params:          &p,
		BaselineGroupID: c.latestKnownGroupID(),
		SubmittedAt:     c.now(),
		Status:          model.ActionSubmitted,
	}
	action.Deadline = action.SubmittedAt.Add(c.cfg.ConfirmTimeout)

	tx := ledger.Tx{
		Kind:    model.ActionCreateGroup,
		Account: account,
		Params:  &p,
	}
	return c.register(ctx, action, tx)
}

// latestKnownGroupID reads the highest group id in the current snapshot. A
// create action only reconciles against groups above this watermark, so a
// look-alike group that predates the request never supersedes it.
func (c *Coordinator) latestKnownGroupID() uint64 {
	var latest uint64
	if snap := c.cache.Snapshot(); snap != nil {
		for id := range snap.Groups {
			if id > latest {
				latest = id
			}
		}
	}
	return latest
}

func (c *Coordinator) register(ctx context.Context, action model.PendingAction, tx ledger.Tx) (model.PendingAction, error) {
	key := inflightKey(action.GroupID, action.Account)

	c.mu.Lock()
	c.sweepLocked()
	if existing, busy := c.inflight[key]; busy {
		c.mu.Unlock()
		return model.PendingAction{}, &DuplicateActionError{GroupID: action.GroupID, Account: action.Account, Handle: existing}
	}
	c.inflight[key] = action.Handle
	c.keys[action.Handle] = key
	stored := action
	c.actions[action.Handle] = &stored
	loopCtx := c.runCtx
	c.mu.Unlock()

	if loopCtx == nil {
		loopCtx = ctx
	}

	c.logger.Info("action registered",
		zap.String("handle", action.Handle),
		zap.String("kind", string(action.Kind)),
		zap.Uint64("group", action.GroupID),
		zap.String("account", action.Account))

	c.runWG.Add(1)
	go func() {
		defer c.runWG.Done()
		c.drive(loopCtx, action.Handle, tx)
	}()

	return action, nil
}

// Action returns a copy of the tracked action.
func (c *Coordinator) Action(handle string) (model.PendingAction, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.actions[handle]
	if !ok {
		return model.PendingAction{}, &ErrUnknownHandle{Handle: handle}
	}
	return *a, nil
}

// PendingActions returns copies of all tracked actions, terminal ones
// included; callers filter by status. Terminal actions past the retention
// window are evicted first.
func (c *Coordinator) PendingActions() []model.PendingAction {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sweepLocked()
	out := make([]model.PendingAction, 0, len(c.actions))
	for _, a := range c.actions {
		out = append(out, *a)
	}
	return out
}

// OnActionStatus registers a callback for the handle's future transitions.
func (c *Coordinator) OnActionStatus(handle string, fn StatusCallback) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.actions[handle]; !ok {
		return &ErrUnknownHandle{Handle: handle}
	}
	c.callbacks[handle] = append(c.callbacks[handle], fn)
	return nil
}

// RequestCancel marks the action cancel-requested. Best effort: a confirming
// ledger transaction cannot be recalled, so this only suppresses follow-up
// status callbacks while the real outcome is still recorded and reconciled.
func (c *Coordinator) RequestCancel(handle string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.actions[handle]
	if !ok {
		return &ErrUnknownHandle{Handle: handle}
	}
	if a.Status.Terminal() {
		return fmt.Errorf("action %s already %s", handle, a.Status)
	}
	a.CancelRequested = true
	return nil
}

// transition updates an action's status and notifies callbacks unless the
// caller asked to cancel. Terminal transitions release the (group, account)
// serialization slot.
func (c *Coordinator) transition(handle string, status model.ActionStatus, reason string) {
	c.mu.Lock()
	a, ok := c.actions[handle]
	if !ok {
		c.mu.Unlock()
		return
	}
	if a.Status.Terminal() {
		// An action that failed locally without a known ledger outcome,
		// through a timeout or a canceled driver context, may still be
		// resolved by a later snapshot showing its real effect.
		unresolved := a.Status == model.ActionFailed &&
			(a.Reason == model.ReasonConfirmationTimeout || a.Reason == model.ReasonContextCanceled)
		if !unresolved || status != model.ActionSuperseded {
			c.mu.Unlock()
			return
		}
	}
	a.Status = status
	a.Reason = reason
	if status.Terminal() {
		a.FinishedAt = c.now()
	}
	snapshot := *a
	var fns []StatusCallback
	if !a.CancelRequested {
		fns = append(fns, c.callbacks[handle]...)
	}
	if status.Terminal() {
		if key, ok := c.keys[handle]; ok && c.inflight[key] == handle {
			delete(c.inflight, key)
		}
		delete(c.keys, handle)
		delete(c.callbacks, handle)
	}
	c.mu.Unlock()

	c.metrics.ObserveOutcome(snapshot.Kind, status, reason)
	c.logger.Info("action transition",
		zap.String("handle", handle),
		zap.String("status", string(status)),
		zap.String("reason", reason))
	for _, fn := range fns {
		fn(snapshot)
	}
}

// sweepLocked evicts terminal actions older than the retention window so the
// action table stays bounded. Callers hold c.mu.
func (c *Coordinator) sweepLocked() {
	cutoff := c.now().Add(-c.cfg.ActionRetention)
	for handle, a := range c.actions {
		if a.Status.Terminal() && !a.FinishedAt.IsZero() && a.FinishedAt.Before(cutoff) {
			delete(c.actions, handle)
			delete(c.callbacks, handle)
		}
	}
}

func (c *Coordinator) setTxHandle(handle, txHandle string) {
	c.mu.Lock()
	if a, ok := c.actions[handle]; ok {
		a.TxHandle = txHandle
	}
	c.mu.Unlock()
}

func inflightKey(groupID uint64, account string) string {
	return fmt.Sprintf("%d/%s", groupID, account)
}
