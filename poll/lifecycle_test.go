package poll

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenPollValidation(t *testing.T) {
	engine := newTestEngine(5, time.Second)
	ctx := context.Background()

	t.Run("rejects missing question", func(t *testing.T) {
		_, err := engine.lifecycle.Open(ctx, "", twoOptions(), 30)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects fewer than two options", func(t *testing.T) {
		_, err := engine.lifecycle.Open(ctx, "Best planet?", []OptionSpec{{Text: "Mars"}}, 30)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		_, err := engine.lifecycle.Open(ctx, "Best planet?", twoOptions(), 0)
		assert.ErrorIs(t, err, ErrValidation)

		_, err = engine.lifecycle.Open(ctx, "Best planet?", twoOptions(), -5)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("rejects empty option text", func(t *testing.T) {
		_, err := engine.lifecycle.Open(ctx, "Best planet?", []OptionSpec{{Text: "Mars"}, {Text: ""}}, 30)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestOpenPollConflict(t *testing.T) {
	engine := newTestEngine(5, time.Second)
	ctx := context.Background()

	first, err := engine.lifecycle.Open(ctx, "Best planet?", twoOptions(), 60)
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	_, err = engine.lifecycle.Open(ctx, "Second question?", twoOptions(), 60)
	assert.ErrorIs(t, err, ErrConflict)

	// Closing the first poll makes room for a new one.
	require.NoError(t, engine.lifecycle.Close(ctx, first.ID))
	second, err := engine.lifecycle.Open(ctx, "Second question?", twoOptions(), 60)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestOpenPollBroadcastsSnapshot(t *testing.T) {
	engine := newTestEngine(5, time.Second)

	created, err := engine.lifecycle.Open(context.Background(), "Best planet?", fourOptions(), 30)
	require.NoError(t, err)

	require.Len(t, engine.broadcaster.opened, 1)
	snap := engine.broadcaster.opened[0]
	assert.Equal(t, StatusActive, snap.Status)
	assert.Equal(t, created.ID, snap.PollID)
	assert.Equal(t, 30, snap.Duration)
	assert.Len(t, snap.Options, 4)
	assert.NotNil(t, snap.StartedAt)
	assert.False(t, snap.ServerTime.IsZero())
}

func TestClosePollIsIdempotent(t *testing.T) {
	engine := newTestEngine(5, time.Second)
	ctx := context.Background()

	created, err := engine.lifecycle.Open(ctx, "Best planet?", twoOptions(), 60)
	require.NoError(t, err)

	require.NoError(t, engine.lifecycle.Close(ctx, created.ID))
	p, err := engine.lifecycle.Poll(ctx, created.ID)
	require.NoError(t, err)
	firstEndedAt := p.EndedAt
	require.NotNil(t, firstEndedAt)

	// Second close is a no-op and keeps the original end timestamp.
	require.NoError(t, engine.lifecycle.Close(ctx, created.ID))
	p, err = engine.lifecycle.Poll(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *firstEndedAt, *p.EndedAt)

	assert.ErrorIs(t, engine.lifecycle.Close(ctx, "missing"), ErrNotFound)
}

func TestCurrentStatePriority(t *testing.T) {
	engine := newTestEngine(5, time.Second)
	ctx := context.Background()

	snap, err := engine.lifecycle.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, snap.Status)

	created, err := engine.lifecycle.Open(ctx, "Best planet?", twoOptions(), 60)
	require.NoError(t, err)

	snap, err = engine.lifecycle.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, snap.Status)
	assert.Equal(t, created.ID, snap.PollID)

	require.NoError(t, engine.lifecycle.Close(ctx, created.ID))

	// Within the results window the ended poll is still current.
	snap, err = engine.lifecycle.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusEnded, snap.Status)
	assert.Equal(t, created.ID, snap.PollID)
	assert.Positive(t, snap.ResultsRemaining)

	// After the window elapses the state is IDLE again.
	engine.lifecycle.nowFn = func() time.Time { return time.Now().Add(10 * time.Second) }
	snap, err = engine.lifecycle.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusIdle, snap.Status)
	assert.Empty(t, snap.PollID)
}

func TestRecordVoteFailures(t *testing.T) {
	engine := newTestEngine(5, time.Second)
	ctx := context.Background()

	created, err := engine.lifecycle.Open(ctx, "Best planet?", twoOptions(), 30)
	require.NoError(t, err)
	optionID := created.Options[0].ID

	t.Run("unknown poll", func(t *testing.T) {
		assert.ErrorIs(t, engine.lifecycle.RecordVote(ctx, "missing", optionID), ErrNotFound)
	})

	t.Run("unknown option", func(t *testing.T) {
		assert.ErrorIs(t, engine.lifecycle.RecordVote(ctx, created.ID, "missing"), ErrNotFound)
	})

	t.Run("expired poll", func(t *testing.T) {
		engine.lifecycle.nowFn = func() time.Time { return created.StartedAt.Add(31 * time.Second) }
		defer func() { engine.lifecycle.nowFn = time.Now }()
		assert.ErrorIs(t, engine.lifecycle.RecordVote(ctx, created.ID, optionID), ErrExpired)
	})

	t.Run("ended poll", func(t *testing.T) {
		require.NoError(t, engine.lifecycle.Close(ctx, created.ID))
		assert.ErrorIs(t, engine.lifecycle.RecordVote(ctx, created.ID, optionID), ErrInvalidState)
	})
}

func TestRecordVoteIncrementsExactlyOneOption(t *testing.T) {
	engine := newTestEngine(5, time.Second)
	ctx := context.Background()

	created, err := engine.lifecycle.Open(ctx, "Best planet?", fourOptions(), 60)
	require.NoError(t, err)

	require.NoError(t, engine.lifecycle.RecordVote(ctx, created.ID, created.Options[2].ID))
	require.NoError(t, engine.lifecycle.RecordVote(ctx, created.ID, created.Options[2].ID))
	require.NoError(t, engine.lifecycle.RecordVote(ctx, created.ID, created.Options[0].ID))

	p, err := engine.lifecycle.Poll(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Options[0].VoteCount)
	assert.Equal(t, 0, p.Options[1].VoteCount)
	assert.Equal(t, 2, p.Options[2].VoteCount)
	assert.Equal(t, 0, p.Options[3].VoteCount)
}

func TestPollHistoryOrder(t *testing.T) {
	engine := newTestEngine(5, time.Second)
	ctx := context.Background()

	var ids []string
	base := time.Now()
	for i := 0; i < 3; i++ {
		// Space the end timestamps out so the ordering is deterministic.
		offset := time.Duration(i) * time.Minute
		engine.lifecycle.nowFn = func() time.Time { return base.Add(offset) }
		created, err := engine.lifecycle.Open(ctx, "Question?", twoOptions(), 60)
		require.NoError(t, err)
		require.NoError(t, engine.lifecycle.Close(ctx, created.ID))
		ids = append(ids, created.ID)
	}

	history, err := engine.lifecycle.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, ids[2], history[0].ID)
	assert.Equal(t, ids[1], history[1].ID)
	assert.Equal(t, ids[0], history[2].ID)
}
