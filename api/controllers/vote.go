package controllers

import (
	"net/http"

	"github.com/alex-pricope/live-polling-system/api/models"
	"github.com/alex-pricope/live-polling-system/logging"
	"github.com/alex-pricope/live-polling-system/poll"
	"github.com/gin-gonic/gin"
)

type VotingController struct {
	ledger *poll.VoteLedger
}

func NewVotingController(ledger *poll.VoteLedger) *VotingController {
	return &VotingController{
		ledger: ledger,
	}
}

func (c *VotingController) RegisterRoutes(engine *gin.Engine) {
	group := engine.Group("/api/poll")

	group.POST("/:pollId/vote", c.submitVote)
	group.GET("/:pollId/vote/status", c.checkVoteStatus)
}

// submitVote godoc
// @Summary Submit a vote
// @Description Accepts at most one vote per participant per poll
// @Tags voting
// @Accept json
// @Produce json
// @Param pollId path string true "Poll ID"
// @Param vote body models.SubmitVoteRequest true "Vote submission"
// @Success 201 {object} models.SubmitVoteResponse
// @Failure 400 {object} models.ErrorResponse "Poll not active or expired"
// @Failure 404 {object} models.ErrorResponse "Poll or option not found"
// @Failure 409 {object} models.ErrorResponse "Participant already voted"
// @Failure 500 {object} models.ErrorResponse
// @Router /api/poll/{pollId}/vote [post]
func (c *VotingController) submitVote(g *gin.Context) {
	var req models.SubmitVoteRequest
	if err := g.ShouldBindJSON(&req); err != nil {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request format"})
		return
	}

	vote, err := c.ledger.Submit(g.Request.Context(), g.Param("pollId"), req.ParticipantID, req.OptionID)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to submit vote: %v", err)
		writeError(g, err)
		return
	}

	g.JSON(http.StatusCreated, &models.SubmitVoteResponse{
		Success: true,
		Vote:    models.TransformVoteToEntry(vote),
	})
}

// checkVoteStatus godoc
// @Summary Check a participant's vote
// @Description Reports whether the participant voted in the poll, used on reconnect
// @Tags voting
// @Produce json
// @Param pollId path string true "Poll ID"
// @Param participantId query string true "Participant ID"
// @Success 200 {object} models.VoteStatusResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/poll/{pollId}/vote/status [get]
func (c *VotingController) checkVoteStatus(g *gin.Context) {
	participantID := g.Query("participantId")
	if participantID == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "participantId is required"})
		return
	}

	hasVoted, err := c.ledger.HasVoted(g.Request.Context(), g.Param("pollId"), participantID)
	if err != nil {
		logging.Log.Errorf("VOTE: failed to check vote status: %v", err)
		writeError(g, err)
		return
	}

	response := models.VoteStatusResponse{HasVoted: hasVoted}
	if hasVoted {
		vote, err := c.ledger.Vote(g.Request.Context(), g.Param("pollId"), participantID)
		if err != nil {
			logging.Log.Errorf("VOTE: failed to load vote: %v", err)
			writeError(g, err)
			return
		}
		entry := models.TransformVoteToEntry(vote)
		response.Vote = &entry
	}
	g.JSON(http.StatusOK, response)
}
