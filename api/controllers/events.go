package controllers

import (
	"context"
	"io"

	"github.com/alex-pricope/live-polling-system/broadcast"
	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/alex-pricope/live-polling-system/poll"
	"github.com/gin-gonic/gin"
)

type EventsController struct {
	gateway  *broadcast.Gateway
	registry *poll.ParticipantRegistry
}

func NewEventsController(gateway *broadcast.Gateway, registry *poll.ParticipantRegistry) *EventsController {
	return &EventsController{
		gateway:  gateway,
		registry: registry,
	}
}

func (c *EventsController) RegisterRoutes(engine *gin.Engine) {
	engine.GET("/api/events", c.stream)
}

// stream godoc
// @Summary Subscribe to the live event stream
// @Description Server-sent events: poll lifecycle, tally updates, participant and chat events. Passing participantId binds the connection to that participant.
// @Tags events
// @Produce text/event-stream
// @Param participantId query string false "Participant ID to bind this connection to"
// @Success 200 {string} string "event stream"
// @Failure 403 {object} models.ErrorResponse "Participant was kicked"
// @Router /api/events [get]
func (c *EventsController) stream(g *gin.Context) {
	participantID := g.Query("participantId")

	connectionID, events := c.gateway.Subscribe(participantID)
	defer func() {
		c.gateway.Unsubscribe(events)
		if participantID == "" {
			return
		}
		// The request context is gone by now, the deactivation still
		// has to be recorded.
		if err := c.registry.Deactivate(context.Background(), connectionID); err != nil {
			logging.Log.Errorf("SSE: failed to deactivate connection %s: %v", connectionID, err)
		}
		broadcastParticipants(context.Background(), c.registry, c.gateway)
	}()

	if participantID != "" {
		if err := c.registry.BindConnection(g.Request.Context(), participantID, connectionID); err != nil {
			logging.Log.Warnf("SSE: rejected stream for participant %s: %v", participantID, err)
			writeError(g, err)
			return
		}
		broadcastParticipants(g.Request.Context(), c.registry, c.gateway)
	}

	g.Writer.Header().Set("Cache-Control", "no-cache")
	g.Writer.Header().Set("Connection", "keep-alive")
	g.Writer.Header().Set("X-Accel-Buffering", "no")

	// A fresh subscriber starts from the authoritative snapshot, the
	// same one the reconciliation query serves.
	if snap, err := c.gateway.Snapshot(g.Request.Context()); err == nil {
		g.SSEvent(broadcast.EventPollUpdate, snap)
		g.Writer.Flush()
	}

	g.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-events:
			if !ok {
				return false
			}
			g.SSEvent(event.Name, event.Data)
			return true
		case <-g.Request.Context().Done():
			return false
		}
	})
}
