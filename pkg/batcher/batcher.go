// Package batcher provides a keyed batch processor with rate limiting.
// Duplicate keys queued between flushes are coalesced into one occurrence, so
// repeated requests for the same key cost a single callback slot.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Keyed buffers keys and flushes the deduplicated set either by size or
// interval.
type Keyed[K comparable] struct {
	flushCallback func(context.Context, []K) error
	keysCh        chan K
	flushSize     int
	flushInterval time.Duration
	rl            ratelimit.Limiter
	logger        *zap.Logger

	wg   sync.WaitGroup
	stop chan struct{}
}

// New constructs a Keyed batcher. flushSize counts distinct keys.
func New[K comparable](logger *zap.Logger, flushCallback func(context.Context, []K) error, flushSize int, flushInterval time.Duration, rps int) *Keyed[K] {
	return &Keyed[K]{
		logger:        logger,
		flushCallback: flushCallback,
		keysCh:        make(chan K, flushSize*2),
		flushSize:     flushSize,
		flushInterval: flushInterval,
		rl:            ratelimit.New(rps),
		stop:          make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Keyed[K]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.run(ctx)
}

// Stop stops the background flushing loop after a final flush.
func (b *Keyed[K]) Stop() {
	close(b.stop)
	b.wg.Wait()
}

// Add queues a key for batching, respecting context cancellation.
func (b *Keyed[K]) Add(ctx context.Context, key K) error {
	select {
	case <-b.stop:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case b.keysCh <- key:
		return nil
	}
}

func (b *Keyed[K]) run(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.flushInterval)
	defer ticker.Stop()

	pending := make(map[K]struct{}, b.flushSize)
	order := make([]K, 0, b.flushSize)

	add := func(key K) {
		if _, dup := pending[key]; dup {
			return
		}
		pending[key] = struct{}{}
		order = append(order, key)
	}

	flush := func() {
		if len(order) == 0 {
			return
		}

		b.rl.Take()
		batch := make([]K, len(order))
		copy(batch, order)
		if err := b.flushCallback(ctx, batch); err != nil {
			b.logger.Error("batch not flushed", zap.Int("keys", len(batch)), zap.Error(err))
		} else {
			b.logger.Debug("batch flushed", zap.Int("keys", len(batch)))
		}
		clear(pending)
		order = order[:0]
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return

		case <-b.stop:
			flush()
			return

		case key := <-b.keysCh:
			add(key)
			if len(order) >= b.flushSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}
