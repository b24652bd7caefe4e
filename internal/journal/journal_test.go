package journal

import (
	"errors"
	"testing"
	"time"

	"github.com/chamadapp/chama-coordinator-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, j.Close()) })
	return j
}

func joinedEvent(groupID, seq uint64, account string) model.Event {
	return model.Event{
		Kind:     model.EventMemberJoined,
		GroupID:  groupID,
		Sequence: seq,
		Member:   &model.Member{GroupID: groupID, Account: account, Active: true},
		At:       time.Unix(1_700_000_000, 0).UTC(),
	}
}

func TestJournalReplayOrder(t *testing.T) {
	j := openTestJournal(t)

	// Appended deliberately out of order across groups.
	events := []model.Event{
		joinedEvent(2, 1, "0xB0B"),
		joinedEvent(1, 2, "0xCAFE"),
		joinedEvent(1, 1, "0xA11CE"),
		joinedEvent(2, 2, "0xD00D"),
	}
	for _, ev := range events {
		require.NoError(t, j.Append(ev))
	}

	var replayed []model.Event
	require.NoError(t, j.Replay(func(ev model.Event) error {
		replayed = append(replayed, ev)
		return nil
	}))

	require.Len(t, replayed, 4)
	assert.Equal(t, joinedEvent(1, 1, "0xA11CE"), replayed[0])
	assert.Equal(t, joinedEvent(1, 2, "0xCAFE"), replayed[1])
	assert.Equal(t, joinedEvent(2, 1, "0xB0B"), replayed[2])
	assert.Equal(t, joinedEvent(2, 2, "0xD00D"), replayed[3])
}

func TestJournalAppendIdempotent(t *testing.T) {
	j := openTestJournal(t)

	ev := joinedEvent(3, 1, "0xA11CE")
	require.NoError(t, j.Append(ev))
	require.NoError(t, j.Append(ev))

	count := 0
	require.NoError(t, j.Replay(func(model.Event) error {
		count++
		return nil
	}))
	assert.Equal(t, 1, count)
}

func TestJournalReplayStopsOnError(t *testing.T) {
	j := openTestJournal(t)

	require.NoError(t, j.Append(joinedEvent(1, 1, "0xA11CE")))
	require.NoError(t, j.Append(joinedEvent(1, 2, "0xB0B")))

	boom := errors.New("boom")
	seen := 0
	err := j.Replay(func(model.Event) error {
		seen++
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, seen)
}

func TestJournalSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	j, err := Open(dir, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, j.Append(joinedEvent(5, 1, "0xA11CE")))
	require.NoError(t, j.Close())

	j, err = Open(dir, zap.NewNop())
	require.NoError(t, err)
	defer func() { require.NoError(t, j.Close()) }()

	var replayed []model.Event
	require.NoError(t, j.Replay(func(ev model.Event) error {
		replayed = append(replayed, ev)
		return nil
	}))
	require.Len(t, replayed, 1)
	assert.Equal(t, uint64(5), replayed[0].GroupID)
}
