package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/alex-pricope/live-polling-system/api/models"
	"github.com/alex-pricope/live-polling-system/broadcast"
	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/alex-pricope/live-polling-system/poll"
	"github.com/gin-gonic/gin"
)

// writeError maps the engine error taxonomy onto HTTP status codes.
func writeError(g *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, poll.ErrValidation),
		errors.Is(err, poll.ErrInvalidState),
		errors.Is(err, poll.ErrExpired):
		status = http.StatusBadRequest
	case errors.Is(err, poll.ErrConflict),
		errors.Is(err, poll.ErrDuplicateVote):
		status = http.StatusConflict
	case errors.Is(err, poll.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, poll.ErrForbidden):
		status = http.StatusForbidden
	}
	g.JSON(status, &models.ErrorResponse{Error: err.Error()})
}

// broadcastParticipants pushes the current active participant list to
// all observers, after joins, disconnects and kicks.
func broadcastParticipants(ctx context.Context, registry *poll.ParticipantRegistry, gateway *broadcast.Gateway) {
	active, err := registry.ActiveParticipants(ctx)
	if err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to load active participants for broadcast: %v", err)
		return
	}
	gateway.Broadcast(broadcast.EventParticipantsUpdate, models.TransformParticipantsToEntries(active))
}
