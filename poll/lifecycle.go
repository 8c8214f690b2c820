package poll

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/alex-pricope/live-polling-system/storage"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Broadcaster fans lifecycle and tally events out to connected
// observers. Delivery is best effort; observers reconcile through the
// snapshot query when they miss a push.
type Broadcaster interface {
	PollOpened(snap Snapshot)
	TallyUpdated(snap Snapshot)
	PollClosed(snap Snapshot, countdownTotal int)
	ResetToIdle(snap Snapshot)
}

// OptionSpec describes one answer option of an open request.
type OptionSpec struct {
	Text      string
	IsCorrect bool
}

// Lifecycle is the authoritative state machine for the single current
// poll: IDLE -> ACTIVE -> ENDED -> IDLE. All status transitions and
// tally increments serialize through its mutex, so a close transition
// and an in-flight vote can never interleave.
type Lifecycle struct {
	mu            sync.Mutex
	polls         storage.PollStorage
	broadcaster   Broadcaster
	coordinator   *TimerCoordinator
	resultsWindow time.Duration
	historyLimit  int
	nowFn         func() time.Time
}

func NewLifecycle(polls storage.PollStorage, broadcaster Broadcaster, resultsWindow time.Duration, historyLimit int) *Lifecycle {
	return &Lifecycle{
		polls:         polls,
		broadcaster:   broadcaster,
		resultsWindow: resultsWindow,
		historyLimit:  historyLimit,
		nowFn:         time.Now,
	}
}

// SetCoordinator wires the timer coordinator after construction, the
// two reference each other.
func (l *Lifecycle) SetCoordinator(coordinator *TimerCoordinator) {
	l.coordinator = coordinator
}

// Open creates a new ACTIVE poll and arms its close deadline. Fails
// with ErrConflict while another poll is ACTIVE and with ErrValidation
// on malformed input. Opening supersedes a still-running results
// countdown of the previous poll.
func (l *Lifecycle) Open(ctx context.Context, question string, options []OptionSpec, duration int) (*storage.Poll, error) {
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrValidation)
	}
	if len(options) < 2 {
		return nil, fmt.Errorf("%w: at least 2 options are required", ErrValidation)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	for _, opt := range options {
		if opt.Text == "" {
			return nil, fmt.Errorf("%w: option text is required", ErrValidation)
		}
	}

	l.mu.Lock()
	active, err := l.polls.FindActive(ctx)
	if err != nil {
		l.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if active != nil {
		l.mu.Unlock()
		return nil, ErrConflict
	}

	id, err := gonanoid.New()
	if err != nil {
		l.mu.Unlock()
		return nil, err
	}

	p := &storage.Poll{
		ID:        id,
		Question:  question,
		Options:   make([]storage.Option, 0, len(options)),
		Duration:  duration,
		Status:    storage.PollStatusActive,
		StartedAt: l.nowFn().UTC(),
		CreatedBy: "OPERATOR",
	}
	for _, opt := range options {
		optionID, err := gonanoid.New()
		if err != nil {
			l.mu.Unlock()
			return nil, err
		}
		p.Options = append(p.Options, storage.Option{
			ID:        optionID,
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
		})
	}

	if err := l.polls.Create(ctx, p); err != nil {
		l.mu.Unlock()
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	l.mu.Unlock()

	logging.Log.Infof("POLL: opened poll %s (%d options, %ds)", p.ID, len(p.Options), p.Duration)

	if l.coordinator != nil {
		l.coordinator.Arm(p.ID, time.Duration(p.Duration)*time.Second)
	}
	l.broadcaster.PollOpened(newSnapshot(p, l.resultsWindow, l.nowFn().UTC()))
	return p, nil
}

// Close transitions a poll to ENDED and stamps its end time. Closing an
// already ENDED poll is a no-op.
func (l *Lifecycle) Close(ctx context.Context, pollID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.polls.Get(ctx, pollID)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return fmt.Errorf("%w: poll %s", ErrNotFound, pollID)
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if p.Status == storage.PollStatusEnded {
		return nil
	}

	endedAt := l.nowFn().UTC()
	p.Status = storage.PollStatusEnded
	p.EndedAt = &endedAt
	if err := l.polls.Update(ctx, p); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	logging.Log.Infof("POLL: closed poll %s", pollID)
	return nil
}

// Current returns the snapshot an observer should act on right now: the
// ACTIVE poll if one exists, else the most recently ENDED poll while its
// results window is still open, else IDLE.
func (l *Lifecycle) Current(ctx context.Context) (Snapshot, error) {
	now := l.nowFn().UTC()

	active, err := l.polls.FindActive(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if active != nil {
		return newSnapshot(active, l.resultsWindow, now), nil
	}

	ended, err := l.polls.FindEnded(ctx, 1)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(ended) > 0 {
		last := ended[0]
		if last.EndedAt != nil && now.Before(last.EndedAt.Add(l.resultsWindow)) {
			return newSnapshot(last, l.resultsWindow, now), nil
		}
	}
	return newIdleSnapshot(now), nil
}

// History returns ended polls, most recently ended first.
func (l *Lifecycle) History(ctx context.Context) ([]*storage.Poll, error) {
	polls, err := l.polls.FindEnded(ctx, l.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return polls, nil
}

// Poll returns one poll by id.
func (l *Lifecycle) Poll(ctx context.Context, pollID string) (*storage.Poll, error) {
	p, err := l.polls.Get(ctx, pollID)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, fmt.Errorf("%w: poll %s", ErrNotFound, pollID)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return p, nil
}

// EnsureVotable checks that a vote for the given option could be
// accepted right now: the poll exists, the option exists, the poll is
// ACTIVE and its duration has not elapsed.
func (l *Lifecycle) EnsureVotable(ctx context.Context, pollID, optionID string) error {
	p, err := l.Poll(ctx, pollID)
	if err != nil {
		return err
	}
	if _, err := optionIndex(p, optionID); err != nil {
		return err
	}
	return l.checkActive(p)
}

// RecordVote increments exactly one option tally. It re-validates the
// lifecycle state under the same mutex Close holds: a vote racing a
// close observes ErrInvalidState or ErrExpired, never a partial tally.
func (l *Lifecycle) RecordVote(ctx context.Context, pollID, optionID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, err := l.Poll(ctx, pollID)
	if err != nil {
		return err
	}
	idx, err := optionIndex(p, optionID)
	if err != nil {
		return err
	}
	if err := l.checkActive(p); err != nil {
		return err
	}

	if err := l.polls.IncrementVote(ctx, pollID, idx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// ResumeActive reports the still-ACTIVE poll found in storage at
// startup, so the server can re-arm its deadline. State survives a
// process restart through the persistence collaborator.
func (l *Lifecycle) ResumeActive(ctx context.Context) (*storage.Poll, error) {
	active, err := l.polls.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return active, nil
}

func (l *Lifecycle) checkActive(p *storage.Poll) error {
	if p.Status != storage.PollStatusActive {
		return fmt.Errorf("%w: poll %s", ErrInvalidState, p.ID)
	}
	// The close callback may still be in flight, votes past the
	// duration are rejected regardless.
	elapsed := l.nowFn().UTC().Sub(p.StartedAt)
	if elapsed > time.Duration(p.Duration)*time.Second {
		return fmt.Errorf("%w: poll %s", ErrExpired, p.ID)
	}
	return nil
}

func (l *Lifecycle) snapshotOf(p *storage.Poll) Snapshot {
	return newSnapshot(p, l.resultsWindow, l.nowFn().UTC())
}

func (l *Lifecycle) idleSnapshot() Snapshot {
	return newIdleSnapshot(l.nowFn().UTC())
}

func optionIndex(p *storage.Poll, optionID string) (int, error) {
	for i, opt := range p.Options {
		if opt.ID == optionID {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: option %s in poll %s", ErrNotFound, optionID, p.ID)
}
