package poll

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alex-pricope/live-polling-system/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeadlineClosesPoll(t *testing.T) {
	engine := newTestEngine(2, 10*time.Millisecond)
	ctx := context.Background()

	created, err := engine.lifecycle.Open(ctx, "Best planet?", twoOptions(), 60)
	require.NoError(t, err)

	// Replace the one-minute deadline with one that fires right away.
	engine.coordinator.Arm(created.ID, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return engine.broadcaster.closedCount() == 1
	}, time.Second, 5*time.Millisecond)

	p, err := engine.lifecycle.Poll(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ENDED", string(p.Status))
	require.NotNil(t, p.EndedAt)

	// After the close the results countdown runs out and the engine
	// announces the return to idle.
	require.Eventually(t, func() bool {
		return engine.broadcaster.idleCount() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestEarlyTerminationWhenAllActiveVoted(t *testing.T) {
	engine := newTestEngine(5, time.Second)
	ctx := context.Background()

	for _, id := range []string{"participant-a", "participant-b"} {
		_, err := engine.registry.Register(ctx, id, id)
		require.NoError(t, err)
	}

	created, err := engine.lifecycle.Open(ctx, "Best planet?", twoOptions(), 600)
	require.NoError(t, err)

	_, err = engine.ledger.Submit(ctx, created.ID, "participant-a", created.Options[0].ID)
	require.NoError(t, err)
	assert.Zero(t, engine.broadcaster.closedCount())

	// The second vote covers every active participant, so the poll
	// closes long before its deadline.
	_, err = engine.ledger.Submit(ctx, created.ID, "participant-b", created.Options[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, engine.broadcaster.closedCount())

	p, err := engine.lifecycle.Poll(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ENDED", string(p.Status))
}

func TestEarlyTerminationIgnoresInactiveParticipants(t *testing.T) {
	engine := newTestEngine(5, time.Second)
	ctx := context.Background()

	for _, id := range []string{"participant-a", "participant-b", "participant-c"} {
		_, err := engine.registry.Register(ctx, id, id)
		require.NoError(t, err)
	}
	require.NoError(t, engine.registry.BindConnection(ctx, "participant-c", "conn-3"))
	require.NoError(t, engine.registry.Deactivate(ctx, "conn-3"))

	created, err := engine.lifecycle.Open(ctx, "Best planet?", twoOptions(), 600)
	require.NoError(t, err)

	_, err = engine.ledger.Submit(ctx, created.ID, "participant-a", created.Options[0].ID)
	require.NoError(t, err)
	_, err = engine.ledger.Submit(ctx, created.ID, "participant-b", created.Options[0].ID)
	require.NoError(t, err)

	// The disconnected participant does not count towards coverage.
	assert.Equal(t, 1, engine.broadcaster.closedCount())
}

func TestUntrackedPollEventsAreNoOps(t *testing.T) {
	engine := newTestEngine(5, time.Second)
	ctx := context.Background()

	_, err := engine.registry.Register(ctx, "participant-a", "Alice")
	require.NoError(t, err)

	created, err := engine.lifecycle.Open(ctx, "Best planet?", twoOptions(), 600)
	require.NoError(t, err)

	engine.coordinator.OnVoteRecorded("some-other-poll", 10)
	assert.Zero(t, engine.broadcaster.closedCount())

	engine.coordinator.Disarm("some-other-poll")
	engine.coordinator.OnVoteRecorded(created.ID, 1)
	assert.Equal(t, 1, engine.broadcaster.closedCount())
}

func TestDisarmCancelsDeadline(t *testing.T) {
	engine := newTestEngine(2, 10*time.Millisecond)
	ctx := context.Background()

	created, err := engine.lifecycle.Open(ctx, "Best planet?", twoOptions(), 60)
	require.NoError(t, err)

	engine.coordinator.Arm(created.ID, 20*time.Millisecond)
	engine.coordinator.Disarm(created.ID)

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, engine.broadcaster.closedCount())

	p, err := engine.lifecycle.Poll(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", string(p.Status))
}

func TestNewPollSupersedesRunningCountdown(t *testing.T) {
	engine := newTestEngine(50, 20*time.Millisecond)
	ctx := context.Background()

	first, err := engine.lifecycle.Open(ctx, "Best planet?", twoOptions(), 60)
	require.NoError(t, err)
	engine.coordinator.Arm(first.ID, time.Millisecond)

	require.Eventually(t, func() bool {
		return engine.broadcaster.closedCount() == 1
	}, time.Second, 5*time.Millisecond)

	// Opening the next poll while the results countdown is still going
	// cancels it, so no stale idle broadcast arrives afterwards.
	_, err = engine.lifecycle.Open(ctx, "Best moon?", twoOptions(), 600)
	require.NoError(t, err)

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, engine.broadcaster.idleCount())
}

// flakyPollStorage fails a number of status updates before behaving,
// simulating a transient storage outage during the close transition.
type flakyPollStorage struct {
	storage.PollStorage
	mu       sync.Mutex
	failures int
}

func (s *flakyPollStorage) Update(ctx context.Context, p *storage.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures > 0 {
		s.failures--
		return errors.New("throttled")
	}
	return s.PollStorage.Update(ctx, p)
}

func TestDeadlineCloseRetriesAfterStorageError(t *testing.T) {
	broadcaster := &recorderBroadcaster{}
	polls := &flakyPollStorage{PollStorage: storage.NewMemoryPollStorage(), failures: 1}
	lifecycle := NewLifecycle(polls, broadcaster, 100*time.Millisecond, 50)
	registry := NewParticipantRegistry(storage.NewMemoryParticipantStorage())
	coordinator := NewTimerCoordinator(lifecycle, registry, broadcaster, 2, 10*time.Millisecond)
	lifecycle.SetCoordinator(coordinator)
	ctx := context.Background()

	created, err := lifecycle.Open(ctx, "Best planet?", twoOptions(), 60)
	require.NoError(t, err)
	coordinator.Arm(created.ID, time.Millisecond)

	// The first close attempt hits the storage outage, the coordinator
	// keeps tracking the poll and closes it on the retry.
	require.Eventually(t, func() bool {
		return broadcaster.closedCount() == 1
	}, time.Second, 5*time.Millisecond)

	p, err := lifecycle.Poll(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ENDED", string(p.Status))
}

func TestShutdownStopsTimers(t *testing.T) {
	engine := newTestEngine(2, 10*time.Millisecond)
	ctx := context.Background()

	created, err := engine.lifecycle.Open(ctx, "Best planet?", twoOptions(), 60)
	require.NoError(t, err)
	engine.coordinator.Arm(created.ID, 20*time.Millisecond)

	engine.coordinator.Shutdown()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, engine.broadcaster.closedCount())
	assert.Zero(t, engine.broadcaster.idleCount())
}
