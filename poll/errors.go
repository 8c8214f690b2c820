package poll

import "errors"

// Expected, recoverable conditions surfaced directly to the caller.
// Callers match with errors.Is; details are wrapped around these with %w.
var (
	ErrValidation    = errors.New("invalid request")
	ErrConflict      = errors.New("an active poll already exists")
	ErrNotFound      = errors.New("not found")
	ErrInvalidState  = errors.New("poll is not active")
	ErrExpired       = errors.New("poll has expired")
	ErrDuplicateVote = errors.New("participant already voted in this poll")
	ErrForbidden     = errors.New("participant was removed from the session")

	// ErrUnavailable marks a failing persistence collaborator. Never
	// retried here; the operation fails fast.
	ErrUnavailable = errors.New("storage unavailable")
)
