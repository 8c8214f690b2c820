package controllers

import (
	"net/http"

	"github.com/alex-pricope/live-polling-system/api/models"
	"github.com/alex-pricope/live-polling-system/api/transport"
	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/alex-pricope/live-polling-system/poll"
	"github.com/gin-gonic/gin"
)

type PollController struct {
	lifecycle *poll.Lifecycle
}

func NewPollController(lifecycle *poll.Lifecycle) *PollController {
	return &PollController{
		lifecycle: lifecycle,
	}
}

func (c *PollController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/poll")

	group.GET("/current", c.getCurrentPoll)
	group.GET("/history", c.getPollHistory)

	admin := engine.Group("/api/poll", transport.AdminAuthMiddleware())
	admin.POST("", c.createPoll)
}

// @Security AdminToken
// createPoll godoc
// @Summary Open a new poll
// @Description Opens a poll for voting; fails while another poll is still active
// @Tags poll
// @Accept json
// @Produce json
// @Param request body models.CreatePollRequest true "Create Poll Request"
// @Success 201 {object} models.PollResponse
// @Failure 400 {object} models.ErrorResponse "Fewer than 2 options or non-positive duration"
// @Failure 409 {object} models.ErrorResponse "A poll is already active"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/poll [post]
func (c *PollController) createPoll(g *gin.Context) {
	var req models.CreatePollRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	options := make([]poll.OptionSpec, 0, len(req.Options))
	for _, opt := range req.Options {
		options = append(options, poll.OptionSpec{Text: opt.Text, IsCorrect: opt.IsCorrect})
	}

	created, err := c.lifecycle.Open(g.Request.Context(), req.Question, options, req.Duration)
	if err != nil {
		logging.Log.Errorf("POLL: failed to open poll: %v", err)
		writeError(g, err)
		return
	}

	g.JSON(http.StatusCreated, models.TransformPollToResponse(created))
}

// getCurrentPoll godoc
// @Summary Get the current poll snapshot
// @Description Reconciliation query: the active poll, the last ended poll during its results window, or IDLE
// @Tags poll
// @Produce json
// @Success 200 {object} poll.Snapshot
// @Failure 500 {object} models.ErrorResponse
// @Router /api/poll/current [get]
func (c *PollController) getCurrentPoll(g *gin.Context) {
	snap, err := c.lifecycle.Current(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("POLL: failed to read current poll: %v", err)
		writeError(g, err)
		return
	}
	g.JSON(http.StatusOK, snap)
}

// getPollHistory godoc
// @Summary List ended polls
// @Description Returns ended polls, most recently ended first
// @Tags poll
// @Produce json
// @Success 200 {array} models.PollResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/poll/history [get]
func (c *PollController) getPollHistory(g *gin.Context) {
	polls, err := c.lifecycle.History(g.Request.Context())
	if err != nil {
		logging.Log.Errorf("POLL: failed to load poll history: %v", err)
		writeError(g, err)
		return
	}

	response := make([]models.PollResponse, 0, len(polls))
	for _, p := range polls {
		response = append(response, models.TransformPollToResponse(p))
	}
	g.JSON(http.StatusOK, response)
}
