package poll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/alex-pricope/live-polling-system/storage"
)

// ParticipantRegistry tracks who is connected and eligible to vote. Its
// active count is the denominator the timer coordinator uses for early
// termination. A kicked participant id stays kicked.
type ParticipantRegistry struct {
	participants storage.ParticipantStorage
	nowFn        func() time.Time
}

func NewParticipantRegistry(participants storage.ParticipantStorage) *ParticipantRegistry {
	return &ParticipantRegistry{
		participants: participants,
		nowFn:        time.Now,
	}
}

// Register creates or refreshes a participant and marks it active.
// Fails with ErrForbidden for a previously kicked id.
func (r *ParticipantRegistry) Register(ctx context.Context, id, name string) (*storage.Participant, error) {
	if id == "" || name == "" {
		return nil, fmt.Errorf("%w: participant id and name are required", ErrValidation)
	}

	participant, err := r.participants.Get(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrItemNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if participant != nil && participant.IsKicked {
		return nil, fmt.Errorf("%w: participant %s", ErrForbidden, id)
	}

	if participant == nil {
		participant = &storage.Participant{ID: id}
	}
	participant.Name = name
	participant.IsActive = true
	participant.JoinedAt = r.nowFn().UTC()

	if err := r.participants.Put(ctx, participant); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	logging.Log.Infof("PARTICIPANT: registered %s (%s)", name, id)
	return participant, nil
}

// BindConnection attaches a live connection to the participant,
// supporting reconnects with a fresh connection id.
func (r *ParticipantRegistry) BindConnection(ctx context.Context, participantID, connectionID string) error {
	participant, err := r.Validate(ctx, participantID)
	if err != nil {
		return err
	}

	participant.ConnectionID = connectionID
	participant.IsActive = true
	if err := r.participants.Put(ctx, participant); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Deactivate marks the participant bound to the connection inactive,
// used when its stream disconnects. Unknown connections are ignored.
func (r *ParticipantRegistry) Deactivate(ctx context.Context, connectionID string) error {
	if connectionID == "" {
		return nil
	}
	participant, err := r.participants.GetByConnection(ctx, connectionID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if participant == nil {
		return nil
	}

	participant.IsActive = false
	if err := r.participants.Put(ctx, participant); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	logging.Log.Infof("PARTICIPANT: deactivated %s", participant.ID)
	return nil
}

// Kick permanently removes the participant and returns the connection
// id it was bound to so the caller can notify it directly.
func (r *ParticipantRegistry) Kick(ctx context.Context, id string) (string, error) {
	participant, err := r.participants.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return "", fmt.Errorf("%w: participant %s", ErrNotFound, id)
		}
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	participant.IsKicked = true
	participant.IsActive = false
	if err := r.participants.Put(ctx, participant); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	logging.Log.Warnf("PARTICIPANT: kicked %s", id)
	return participant.ConnectionID, nil
}

// Validate returns the participant when it exists and was not kicked.
func (r *ParticipantRegistry) Validate(ctx context.Context, id string) (*storage.Participant, error) {
	participant, err := r.participants.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			return nil, fmt.Errorf("%w: participant %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if participant.IsKicked {
		return nil, fmt.Errorf("%w: participant %s", ErrForbidden, id)
	}
	return participant, nil
}

// ActiveParticipants returns active participants, most recent first.
func (r *ParticipantRegistry) ActiveParticipants(ctx context.Context) ([]*storage.Participant, error) {
	active, err := r.participants.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return active, nil
}

// ActiveCount returns the number of currently active participants.
func (r *ParticipantRegistry) ActiveCount(ctx context.Context) (int, error) {
	active, err := r.ActiveParticipants(ctx)
	if err != nil {
		return 0, err
	}
	return len(active), nil
}
