// Package journal persists confirmed ledger events as a flat replayable log.
// Keys are (groupID, sequence) big-endian, so iteration yields each group's
// events in ledger order and the registry cache can be rebuilt by replay.
package journal

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"github.com/syndtr/goleveldb/leveldb"
	"go.uber.org/zap"
)

// Journal is a leveldb-backed confirmed-event log.
type Journal struct {
	db     *leveldb.DB
	logger *zap.Logger
}

// Open opens (or creates) the journal at path.
func Open(path string, logger *zap.Logger) (*Journal, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open journal at %s: %w", path, err)
	}
	return &Journal{db: db, logger: logger.Named("journal")}, nil
}

// Close releases the underlying store.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Append records a confirmed event. Appending the same (group, sequence)
// twice overwrites with identical content, so replays stay idempotent.
func (j *Journal) Append(ev model.Event) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event %d/%d: %w", ev.GroupID, ev.Sequence, err)
	}
	if err := j.db.Put(key(ev.GroupID, ev.Sequence), value, nil); err != nil {
		return fmt.Errorf("append event %d/%d: %w", ev.GroupID, ev.Sequence, err)
	}
	return nil
}

// Replay invokes fn for every recorded event, per group in sequence order.
// Stops at the first error from fn.
func (j *Journal) Replay(fn func(model.Event) error) error {
	iter := j.db.NewIterator(nil, nil)
	defer iter.Release()

	count := 0
	for iter.Next() {
		var ev model.Event
		if err := json.Unmarshal(iter.Value(), &ev); err != nil {
			return fmt.Errorf("decode journal entry %x: %w", iter.Key(), err)
		}
		if err := fn(ev); err != nil {
			return err
		}
		count++
	}
	if err := iter.Error(); err != nil {
		return fmt.Errorf("iterate journal: %w", err)
	}

	j.logger.Info("journal replayed", zap.Int("events", count))
	return nil
}

func key(groupID, sequence uint64) []byte {
	k := make([]byte, 16)
	binary.BigEndian.PutUint64(k[:8], groupID)
	binary.BigEndian.PutUint64(k[8:], sequence)
	return k
}
