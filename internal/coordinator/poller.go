package coordinator

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/chamadapp/chama-coordinator-backend/internal/ledger"
	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"github.com/chamadapp/chama-coordinator-backend/internal/registry"
	"go.uber.org/zap"
)

// drive walks one action through submitted → confirming → terminal. Transient
// submit errors and transient ledger failures are retried with exponential
// backoff up to the attempt ceiling; the confirmation deadline fails the
// action locally and leaves the real outcome to snapshot reconciliation.
func (c *Coordinator) drive(ctx context.Context, handle string, tx ledger.Tx) {
	logger := c.logger.With(zap.String("handle", handle))

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.cfg.BaseDelay
	policy.MaxInterval = c.cfg.MaxDelay
	policy.RandomizationFactor = 0.2
	policy.MaxElapsedTime = 0
	policy.Reset()

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		if c.deadlineExceeded(handle) {
			c.transition(handle, model.ActionFailed, model.ReasonConfirmationTimeout)
			return
		}

		started := time.Now()
		txHandle, err := c.gateway.Submit(ctx, tx)
		c.metrics.ObserveSubmit(tx.Kind, err, started)
		if err != nil {
			if ctx.Err() != nil {
				c.transition(handle, model.ActionFailed, model.ReasonContextCanceled)
				return
			}
			if !ledger.IsTransient(err) {
				logger.Warn("ledger rejected submission", zap.Error(err))
				c.transition(handle, model.ActionFailed, model.ReasonLedgerRejected)
				return
			}
			logger.Warn("transient submit failure, backing off", zap.Int("attempt", attempt), zap.Error(err))
			if !c.backoffWait(ctx, policy) {
				c.transition(handle, model.ActionFailed, model.ReasonContextCanceled)
				return
			}
			continue
		}

		c.setTxHandle(handle, txHandle)
		c.transition(handle, model.ActionConfirming, "")

		outcome := c.awaitConfirmation(ctx, handle, txHandle, logger)
		switch outcome {
		case outcomeConfirmed, outcomeTerminal:
			return
		case outcomeTimeout:
			c.transition(handle, model.ActionFailed, model.ReasonConfirmationTimeout)
			return
		case outcomeRetry:
			logger.Warn("transient ledger failure, resubmitting", zap.Int("attempt", attempt))
			if !c.backoffWait(ctx, policy) {
				c.transition(handle, model.ActionFailed, model.ReasonContextCanceled)
				return
			}
		case outcomeCanceledCtx:
			// A canceled driver leaves no way to learn the real outcome;
			// fail the action so its serialization slot is released.
			// Reconciliation may still flip it to superseded later.
			c.transition(handle, model.ActionFailed, model.ReasonContextCanceled)
			return
		}
	}

	c.transition(handle, model.ActionFailed, model.ReasonRetriesExhausted)
}

type pollOutcome int

const (
	outcomeConfirmed pollOutcome = iota
	outcomeTerminal
	outcomeRetry
	outcomeTimeout
	outcomeCanceledCtx
)

// awaitConfirmation polls the transaction until it reaches a terminal state,
// the deadline passes, or a transient failure asks for resubmission.
func (c *Coordinator) awaitConfirmation(ctx context.Context, handle, txHandle string, logger *zap.Logger) pollOutcome {
	pollPolicy := backoff.NewExponentialBackOff()
	pollPolicy.InitialInterval = c.cfg.BaseDelay
	pollPolicy.MaxInterval = c.cfg.MaxDelay
	pollPolicy.RandomizationFactor = 0.2
	pollPolicy.MaxElapsedTime = 0
	pollPolicy.Reset()

	for {
		if c.deadlineExceeded(handle) {
			return outcomeTimeout
		}

		started := time.Now()
		status, err := c.gateway.PollStatus(ctx, txHandle)
		c.metrics.ObservePoll(err, started)
		if err != nil {
			if ctx.Err() != nil {
				return outcomeCanceledCtx
			}
			if !ledger.IsTransient(err) {
				logger.Error("poll failed terminally", zap.Error(err))
				c.transition(handle, model.ActionFailed, model.ReasonLedgerRejected)
				return outcomeTerminal
			}
			logger.Debug("transient poll failure", zap.Error(err))
			if err := c.sleep(ctx, pollPolicy.NextBackOff()); err != nil {
				return outcomeCanceledCtx
			}
			continue
		}

		switch status.State {
		case ledger.TxConfirmed:
			c.applyConfirmed(handle, *status.Event)
			return outcomeConfirmed

		case ledger.TxFailed:
			if status.Transient {
				return outcomeRetry
			}
			reason := model.ReasonLedgerRejected
			if status.Reason != "" {
				reason = status.Reason
			}
			c.transition(handle, model.ActionFailed, reason)
			return outcomeTerminal

		case ledger.TxPending:
		}

		if err := c.sleep(ctx, c.cfg.PollInterval); err != nil {
			return outcomeCanceledCtx
		}
	}
}

// applyConfirmed journals the event, merges it into the cache, stamps a
// created group's id onto its action, and marks the action confirmed.
func (c *Coordinator) applyConfirmed(handle string, ev model.Event) {
	if err := c.journal.Append(ev); err != nil {
		c.logger.Error("journal append failed", zap.Uint64("group", ev.GroupID), zap.Uint64("sequence", ev.Sequence), zap.Error(err))
	}
	if err := c.cache.ApplyConfirmed(ev); err != nil {
		if !errors.Is(err, registry.ErrOutOfOrder) {
			c.logger.Error("apply confirmed event failed", zap.Error(err))
		}
		// The cache has marked the group stale; a refetch is already queued.
	}

	c.mu.Lock()
	if a, ok := c.actions[handle]; ok && a.Kind == model.ActionCreateGroup {
		a.GroupID = ev.GroupID
	}
	c.mu.Unlock()

	c.transition(handle, model.ActionConfirmed, "")
}

func (c *Coordinator) deadlineExceeded(handle string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	a, ok := c.actions[handle]
	return ok && c.now().After(a.Deadline)
}

func (c *Coordinator) backoffWait(ctx context.Context, policy *backoff.ExponentialBackOff) bool {
	return c.sleep(ctx, policy.NextBackOff()) == nil
}
