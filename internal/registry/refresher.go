package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/clock"
	"github.com/chamadapp/chama-coordinator-backend/internal/ledger"
	"github.com/chamadapp/chama-coordinator-backend/pkg/batcher"
	"github.com/chamadapp/chama-coordinator-backend/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	defaultRefreshInterval = 30 * time.Second
	errorSleepDuration     = 5 * time.Second

	readChunkSize    = 25
	readWorkerCount  = 4
	refillFlushSize  = 20
	refillFlushDelay = 250 * time.Millisecond
	refillFlushRPS   = 10
)

// Refresher periodically re-reads every group from the ledger and feeds the
// cache, and services targeted refill requests raised by cache misses and
// invalidations. After each pass it notifies the registered listener so
// pending actions can be reconciled against the fresh snapshot.
type Refresher struct {
	logger          *zap.Logger
	gateway         ReadGateway
	cache           *Cache
	metrics         RefresherMetrics
	refill          *batcher.Keyed[uint64]
	sleep           func(context.Context, time.Duration) error
	refreshInterval time.Duration
	errorSleep      time.Duration
	onRefresh       func(*Snapshot)
}

// NewRefresher builds a Refresher and wires the cache's refill path to it.
func NewRefresher(
	gateway ReadGateway,
	cache *Cache,
	metrics RefresherMetrics,
	refreshInterval time.Duration,
	logger *zap.Logger,
) (*Refresher, error) {
	if metrics == nil {
		return nil, errors.New("refresher metrics is required")
	}
	if refreshInterval <= 0 {
		refreshInterval = defaultRefreshInterval
	}

	r := &Refresher{
		logger:          logger.Named("refresher"),
		gateway:         gateway,
		cache:           cache,
		metrics:         metrics,
		sleep:           clock.SleepWithContext,
		refreshInterval: refreshInterval,
		errorSleep:      errorSleepDuration,
	}
	r.refill = batcher.New(r.logger.Named("refill"), r.flushRefill, refillFlushSize, refillFlushDelay, refillFlushRPS)
	cache.SetRefillRequester(r.RequestRefill)
	return r, nil
}

// SetOnRefresh registers the post-refresh listener. Called once at startup.
func (r *Refresher) SetOnRefresh(fn func(*Snapshot)) {
	r.onRefresh = fn
}

// RequestRefill queues a single group for an async targeted re-read. Safe for
// concurrent use; duplicate requests coalesce.
func (r *Refresher) RequestRefill(groupID uint64) {
	if err := r.refill.Add(context.Background(), groupID); err != nil {
		r.logger.Warn("refill request dropped", zap.Uint64("group", groupID), zap.Error(err))
	}
}

// Run starts the refill batcher and the refresh loop until the context is
// canceled.
func (r *Refresher) Run(ctx context.Context) error {
	r.refill.Start(ctx)
	defer r.refill.Stop()

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		started := time.Now()
		groups, err := r.refreshAll(ctx)
		r.metrics.ObserveRefresh(err, groups, started)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.logger.Warn("refresh failed, backing off", zap.Error(err), zap.Duration("sleep", r.errorSleep))
			if sleepErr := r.sleep(ctx, r.errorSleep); sleepErr != nil {
				return sleepErr
			}
			continue
		}

		if sleepErr := r.sleep(ctx, r.refreshInterval); sleepErr != nil {
			return sleepErr
		}
	}
}

// refreshAll re-reads groups 1..latest in rate-limited chunks and applies
// every successful result to the cache.
func (r *Refresher) refreshAll(ctx context.Context) (int, error) {
	latest, err := r.gateway.LatestGroupID(ctx)
	if err != nil {
		return 0, fmt.Errorf("latest group id: %w", err)
	}
	if latest == 0 {
		r.logger.Debug("no groups on ledger yet")
		r.notify()
		return 0, nil
	}

	chunks := make([][]ledger.GroupQuery, 0, int(latest)/readChunkSize+1)
	for id := uint64(1); id <= latest; id += readChunkSize {
		chunk := make([]ledger.GroupQuery, 0, readChunkSize)
		for g := id; g <= latest && g < id+readChunkSize; g++ {
			chunk = append(chunk, ledger.GroupQuery{GroupID: g})
		}
		chunks = append(chunks, chunk)
	}

	applied := 0
	results, err := workerpool.Map(ctx, readWorkerCount, chunks,
		func(ctx context.Context, chunk []ledger.GroupQuery) (int, error) {
			res, err := r.gateway.ReadBatch(ctx, chunk)
			if err != nil {
				return 0, err
			}
			return r.apply(res), nil
		})
	if err != nil {
		return applied, err
	}
	for _, n := range results {
		applied += n
	}

	r.logger.Debug("refresh pass complete", zap.Uint64("latest", latest), zap.Int("applied", applied))
	r.notify()
	return applied, nil
}

func (r *Refresher) flushRefill(ctx context.Context, groupIDs []uint64) error {
	started := time.Now()
	queries := make([]ledger.GroupQuery, 0, len(groupIDs))
	for _, id := range groupIDs {
		queries = append(queries, ledger.GroupQuery{GroupID: id})
	}

	results, err := r.gateway.ReadBatch(ctx, queries)
	r.metrics.ObserveRefill(err, len(groupIDs), started)
	if err != nil {
		return fmt.Errorf("refill read: %w", err)
	}

	r.apply(results)
	r.notify()
	return nil
}

func (r *Refresher) apply(results []ledger.GroupResult) int {
	applied := 0
	for _, res := range results {
		if res.Err != nil {
			if !errors.Is(res.Err, ledger.ErrGroupNotFound) {
				r.logger.Warn("group read failed", zap.Error(res.Err))
			}
			continue
		}
		r.cache.ApplyRead(res.Group, res.Members, res.Sequence)
		applied++
	}
	return applied
}

func (r *Refresher) notify() {
	if r.onRefresh != nil {
		r.onRefresh(r.cache.Snapshot())
	}
}
