package poll

import (
	"context"
	"sync"
	"time"

	"github.com/alex-pricope/live-polling-system/logging"
)

// TimerCoordinator owns the single armed deadline that closes the
// active poll, watches vote coverage for early termination, and drives
// the results countdown after a close. Exactly one instance exists per
// process, matching the single-active-poll invariant.
type TimerCoordinator struct {
	mu          sync.Mutex
	lifecycle   *Lifecycle
	registry    *ParticipantRegistry
	broadcaster Broadcaster

	countdownTicks int
	tickInterval   time.Duration

	pollID        string
	deadline      *time.Timer
	countdownStop chan struct{}
}

func NewTimerCoordinator(lifecycle *Lifecycle, registry *ParticipantRegistry, broadcaster Broadcaster, countdownTicks int, tickInterval time.Duration) *TimerCoordinator {
	return &TimerCoordinator{
		lifecycle:      lifecycle,
		registry:       registry,
		broadcaster:    broadcaster,
		countdownTicks: countdownTicks,
		tickInterval:   tickInterval,
	}
}

// Arm schedules a one-shot close for the poll, replacing any prior
// deadline and cancelling a still-running results countdown of a
// superseded poll.
func (t *TimerCoordinator) Arm(pollID string, duration time.Duration) {
	t.mu.Lock()
	t.stopCountdownLocked()
	if t.deadline != nil {
		t.deadline.Stop()
	}
	t.pollID = pollID
	t.deadline = time.AfterFunc(duration, func() {
		t.closePoll(pollID)
	})
	t.mu.Unlock()

	logging.Log.Infof("TIMER: armed deadline for poll %s in %s", pollID, duration)
}

// Disarm cancels a still-pending deadline without side effects, used on
// shutdown. Disarming a poll that is not tracked is a no-op.
func (t *TimerCoordinator) Disarm(pollID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pollID != pollID {
		return
	}
	if t.deadline != nil {
		t.deadline.Stop()
		t.deadline = nil
	}
	t.pollID = ""
	logging.Log.Infof("TIMER: disarmed deadline for poll %s", pollID)
}

// OnVoteRecorded evaluates early termination after each accepted vote:
// once every active participant has voted, the poll closes immediately
// and the pending deadline becomes a no-op.
func (t *TimerCoordinator) OnVoteRecorded(pollID string, voterCount int) {
	t.mu.Lock()
	tracked := t.pollID == pollID
	t.mu.Unlock()
	if !tracked {
		return
	}

	activeCount, err := t.registry.ActiveCount(context.Background())
	if err != nil {
		logging.Log.Errorf("TIMER: failed to read active participant count: %v", err)
		return
	}
	if activeCount > 0 && voterCount >= activeCount {
		logging.Log.Infof("TIMER: poll %s ending early, all participants voted (%d/%d)", pollID, voterCount, activeCount)
		t.closePoll(pollID)
	}
}

// Shutdown cancels the pending deadline and any running countdown.
func (t *TimerCoordinator) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.deadline != nil {
		t.deadline.Stop()
		t.deadline = nil
	}
	t.pollID = ""
	t.stopCountdownLocked()
}

// closePoll runs the close transition once per tracked poll: stale
// deadline callbacks and the loser of the early-termination race fall
// through the tracked-poll check.
func (t *TimerCoordinator) closePoll(pollID string) {
	t.mu.Lock()
	if t.pollID != pollID {
		t.mu.Unlock()
		return
	}
	t.pollID = ""
	if t.deadline != nil {
		t.deadline.Stop()
		t.deadline = nil
	}
	t.stopCountdownLocked()
	stop := make(chan struct{})
	t.countdownStop = stop
	t.mu.Unlock()

	ctx := context.Background()
	if err := t.lifecycle.Close(ctx, pollID); err != nil {
		logging.Log.Errorf("TIMER: failed to close poll %s, retrying in %s: %v", pollID, t.tickInterval, err)
		// The poll is still ACTIVE, it must not be left without a
		// tracked deadline until a restart finds it.
		t.mu.Lock()
		if t.pollID == "" {
			t.pollID = pollID
			t.deadline = time.AfterFunc(t.tickInterval, func() {
				t.closePoll(pollID)
			})
		}
		if t.countdownStop == stop {
			t.countdownStop = nil
		}
		t.mu.Unlock()
		return
	}

	p, err := t.lifecycle.Poll(ctx, pollID)
	if err != nil {
		logging.Log.Errorf("TIMER: failed to load closed poll %s: %v", pollID, err)
		return
	}
	t.broadcaster.PollClosed(t.lifecycle.snapshotOf(p), t.countdownTicks)

	go t.runCountdown(pollID, stop)
}

// runCountdown broadcasts the remaining results window once per tick,
// then the transition back to IDLE. Broadcasting is best effort and
// never blocks the tick cadence.
func (t *TimerCoordinator) runCountdown(pollID string, stop chan struct{}) {
	ticker := time.NewTicker(t.tickInterval)
	defer ticker.Stop()

	remaining := t.countdownTicks
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			remaining--
			if remaining <= 0 {
				t.broadcaster.ResetToIdle(t.lifecycle.idleSnapshot())
				t.mu.Lock()
				if t.countdownStop == stop {
					t.countdownStop = nil
				}
				t.mu.Unlock()
				logging.Log.Infof("TIMER: results countdown for poll %s finished", pollID)
				return
			}
			if p, err := t.lifecycle.Poll(context.Background(), pollID); err == nil {
				t.broadcaster.TallyUpdated(t.lifecycle.snapshotOf(p))
			}
		}
	}
}

func (t *TimerCoordinator) stopCountdownLocked() {
	if t.countdownStop != nil {
		close(t.countdownStop)
		t.countdownStop = nil
	}
}
