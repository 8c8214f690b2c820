package poll

import (
	"sync"
	"time"

	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/alex-pricope/live-polling-system/storage"
	"github.com/sirupsen/logrus"
)

func init() {
	logging.Log = logrus.New()
}

// recorderBroadcaster collects broadcast events for assertions.
type recorderBroadcaster struct {
	mu      sync.Mutex
	opened  []Snapshot
	tallies []Snapshot
	closed  []Snapshot
	idles   []Snapshot
}

func (r *recorderBroadcaster) PollOpened(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opened = append(r.opened, snap)
}

func (r *recorderBroadcaster) TallyUpdated(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tallies = append(r.tallies, snap)
}

func (r *recorderBroadcaster) PollClosed(snap Snapshot, countdownTotal int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = append(r.closed, snap)
}

func (r *recorderBroadcaster) ResetToIdle(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idles = append(r.idles, snap)
}

func (r *recorderBroadcaster) closedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.closed)
}

func (r *recorderBroadcaster) idleCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.idles)
}

func (r *recorderBroadcaster) tallyCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tallies)
}

type testEngine struct {
	lifecycle   *Lifecycle
	ledger      *VoteLedger
	registry    *ParticipantRegistry
	coordinator *TimerCoordinator
	broadcaster *recorderBroadcaster
}

// newTestEngine wires the whole engine against in-memory storage with a
// fast countdown cadence.
func newTestEngine(countdownTicks int, tickInterval time.Duration) *testEngine {
	broadcaster := &recorderBroadcaster{}
	resultsWindow := time.Duration(countdownTicks) * tickInterval
	lifecycle := NewLifecycle(storage.NewMemoryPollStorage(), broadcaster, resultsWindow, 50)
	registry := NewParticipantRegistry(storage.NewMemoryParticipantStorage())
	coordinator := NewTimerCoordinator(lifecycle, registry, broadcaster, countdownTicks, tickInterval)
	lifecycle.SetCoordinator(coordinator)
	ledger := NewVoteLedger(storage.NewMemoryVoteStorage(), lifecycle, coordinator, broadcaster)

	return &testEngine{
		lifecycle:   lifecycle,
		ledger:      ledger,
		registry:    registry,
		coordinator: coordinator,
		broadcaster: broadcaster,
	}
}

func twoOptions() []OptionSpec {
	return []OptionSpec{
		{Text: "Mars", IsCorrect: true},
		{Text: "Venus"},
	}
}

func fourOptions() []OptionSpec {
	return []OptionSpec{
		{Text: "Mars", IsCorrect: true},
		{Text: "Venus"},
		{Text: "Jupiter"},
		{Text: "Saturn"},
	}
}
