package poll

import (
	"context"
	"errors"
	"fmt"

	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/alex-pricope/live-polling-system/storage"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// VoteLedger accepts at most one vote per (poll, participant) pair and
// keeps the aggregate option tallies in step with the accepted votes.
// The uniqueness constraint on the vote insert is the sole admission
// control; concurrent submissions never take a shared lock to get past
// it.
type VoteLedger struct {
	votes       storage.VoteStorage
	lifecycle   *Lifecycle
	coordinator *TimerCoordinator
	broadcaster Broadcaster
}

func NewVoteLedger(votes storage.VoteStorage, lifecycle *Lifecycle, coordinator *TimerCoordinator, broadcaster Broadcaster) *VoteLedger {
	return &VoteLedger{
		votes:       votes,
		lifecycle:   lifecycle,
		coordinator: coordinator,
		broadcaster: broadcaster,
	}
}

// Submit records one participant's vote: validate through the
// lifecycle, insert the vote behind the uniqueness constraint, bump the
// option tally, then report the coverage to the timer coordinator for
// early termination. A second submission for the same pair fails with
// ErrDuplicateVote.
func (v *VoteLedger) Submit(ctx context.Context, pollID, participantID, optionID string) (*storage.Vote, error) {
	if participantID == "" || optionID == "" {
		return nil, fmt.Errorf("%w: participantId and optionId are required", ErrValidation)
	}

	if err := v.lifecycle.EnsureVotable(ctx, pollID, optionID); err != nil {
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	vote := &storage.Vote{
		PollID:        pollID,
		ParticipantID: participantID,
		ID:            id,
		OptionID:      optionID,
		VotedAt:       v.lifecycle.nowFn().UTC(),
	}
	if err := v.votes.Create(ctx, vote); err != nil {
		if errors.Is(err, storage.ErrItemAlreadyExists) {
			return nil, fmt.Errorf("%w: participant %s", ErrDuplicateVote, participantID)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if err := v.lifecycle.RecordVote(ctx, pollID, optionID); err != nil {
		// The close transition won the race after our insert. Take the
		// vote record back out so no partially-applied tally remains.
		// A concurrent duplicate rejected against this record was told
		// ErrDuplicateVote for a poll that had stopped accepting votes
		// anyway, the rollback does not owe it a second attempt.
		if delErr := v.votes.Delete(ctx, pollID, participantID); delErr != nil {
			logging.Log.Errorf("VOTE: failed to roll back vote %s/%s: %v", pollID, participantID, delErr)
		}
		return nil, err
	}

	logging.Log.Infof("VOTE: accepted vote by %s for option %s in poll %s", participantID, optionID, pollID)

	voterCount, err := v.votes.CountByPoll(ctx, pollID)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to count voters for poll %s: %v", pollID, err)
	} else if v.coordinator != nil {
		v.coordinator.OnVoteRecorded(pollID, voterCount)
	}

	if snap, err := v.lifecycle.Current(ctx); err == nil {
		v.broadcaster.TallyUpdated(snap)
	}
	return vote, nil
}

// HasVoted reports whether the participant already voted in the poll.
func (v *VoteLedger) HasVoted(ctx context.Context, pollID, participantID string) (bool, error) {
	_, err := v.Vote(ctx, pollID, participantID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Vote returns the participant's recorded vote, used by reconnect and
// resume flows.
func (v *VoteLedger) Vote(ctx context.Context, pollID, participantID string) (*storage.Vote, error) {
	vote, err := v.votes.Get(ctx, pollID, participantID)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, fmt.Errorf("%w: vote %s/%s", ErrNotFound, pollID, participantID)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return vote, nil
}
