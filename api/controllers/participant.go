package controllers

import (
	"errors"
	"net/http"

	"github.com/alex-pricope/live-polling-system/api/models"
	"github.com/alex-pricope/live-polling-system/api/transport"
	"github.com/alex-pricope/live-polling-system/broadcast"
	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/alex-pricope/live-polling-system/poll"
	"github.com/gin-gonic/gin"
)

type ParticipantController struct {
	registry *poll.ParticipantRegistry
	gateway  *broadcast.Gateway
}

func NewParticipantController(registry *poll.ParticipantRegistry, gateway *broadcast.Gateway) *ParticipantController {
	return &ParticipantController{
		registry: registry,
		gateway:  gateway,
	}
}

func (c *ParticipantController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/participant")

	group.POST("", c.registerParticipant)
	group.GET("", c.listParticipants)
	group.GET("/session/:participantId", c.validateSession)

	admin := engine.Group("/api/participant", transport.AdminAuthMiddleware())
	admin.POST("/:participantId/kick", c.kickParticipant)
}

// registerParticipant godoc
// @Summary Register a participant
// @Description Creates or refreshes a participant; kicked ids cannot rejoin
// @Tags participant
// @Accept json
// @Produce json
// @Param request body models.RegisterParticipantRequest true "Register Participant Request"
// @Success 200 {object} models.RegisterParticipantResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse "Participant was kicked"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/participant [post]
func (c *ParticipantController) registerParticipant(g *gin.Context) {
	var req models.RegisterParticipantRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	participant, err := c.registry.Register(g.Request.Context(), req.ParticipantID, req.Name)
	if err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to register %s: %v", req.ParticipantID, err)
		writeError(g, err)
		return
	}

	broadcastParticipants(g.Request.Context(), c.registry, c.gateway)
	g.JSON(http.StatusOK, &models.RegisterParticipantResponse{
		Success:     true,
		Participant: models.TransformParticipantToEntry(participant),
	})
}

// listParticipants godoc
// @Summary List active participants
// @Tags participant
// @Produce json
// @Success 200 {array} models.ParticipantEntry
// @Failure 500 {object} models.ErrorResponse
// @Router /api/participant [get]
func (c *ParticipantController) listParticipants(g *gin.Context) {
	active, err := c.registry.ActiveParticipants(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to list active participants: %v", err)
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, models.TransformParticipantsToEntries(active))
}

// validateSession godoc
// @Summary Validate a participant session
// @Description Used by returning participants to check their id is still welcome
// @Tags participant
// @Produce json
// @Param participantId path string true "Participant ID"
// @Success 200 {object} models.SessionValidationResponse
// @Failure 403 {object} models.SessionValidationResponse "Participant was kicked"
// @Failure 404 {object} models.SessionValidationResponse "Participant not found"
// @Router /api/participant/session/{participantId} [get]
func (c *ParticipantController) validateSession(g *gin.Context) {
	participant, err := c.registry.Validate(g.Request.Context(), g.Param("participantId"))
	if err != nil {
		status := http.StatusNotFound
		message := "participant not found"
		if errors.Is(err, poll.ErrForbidden) {
			status = http.StatusForbidden
			message = "participant was removed from the session"
		}
		g.JSON(status, &models.SessionValidationResponse{Valid: false, Message: message})
		return
	}

	entry := models.TransformParticipantToEntry(participant)
	g.JSON(http.StatusOK, &models.SessionValidationResponse{Valid: true, Participant: &entry})
}

// @Security AdminToken
// kickParticipant godoc
// @Summary Kick a participant
// @Description Permanently removes a participant; the id cannot rejoin
// @Tags participant
// @Produce json
// @Param participantId path string true "Participant ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/participant/{participantId}/kick [post]
func (c *ParticipantController) kickParticipant(g *gin.Context) {
	participantID := g.Param("participantId")

	connectionID, err := c.registry.Kick(g.Request.Context(), participantID)
	if err != nil {
		logging.Log.Errorf("PARTICIPANT: failed to kick %s: %v", participantID, err)
		writeError(g, err)
		return
	}

	if connectionID != "" {
		c.gateway.SendTo(connectionID, broadcast.EventParticipantKicked, gin.H{
			"message": "You have been removed from the poll",
		})
		c.gateway.CloseConnection(connectionID)
	}

	broadcastParticipants(g.Request.Context(), c.registry, c.gateway)
	g.JSON(http.StatusOK, gin.H{"success": true})
}
