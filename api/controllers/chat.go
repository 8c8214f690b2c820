package controllers

import (
	"net/http"
	"time"

	"github.com/alex-pricope/live-polling-system/api/models"
	"github.com/alex-pricope/live-polling-system/broadcast"
	"github.com/gin-gonic/gin"
)

// ChatController relays chat messages to all observers. Messages are
// broadcast only, nothing is persisted.
type ChatController struct {
	gateway *broadcast.Gateway
}

func NewChatController(gateway *broadcast.Gateway) *ChatController {
	return &ChatController{
		gateway: gateway,
	}
}

func (c *ChatController) RegisterRoutes(engine *gin.Engine) {
	engine.POST("/api/chat", c.sendMessage)
}

// sendMessage godoc
// @Summary Send a chat message
// @Description Relays a chat message to all connected observers
// @Tags chat
// @Accept json
// @Produce json
// @Param message body models.ChatMessageRequest true "Chat message"
// @Success 200 {object} models.ChatMessage
// @Failure 400 {object} models.ErrorResponse
// @Router /api/chat [post]
func (c *ChatController) sendMessage(g *gin.Context) {
	var req models.ChatMessageRequest
	if err := g.ShouldBindJSON(&req); err != nil || req.Sender == "" || req.Text == "" {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid request, missing sender or text"})
		return
	}
	if _, ok := models.ValidChatRoles[req.Role]; !ok {
		g.JSON(http.StatusBadRequest, &models.ErrorResponse{Error: "invalid role"})
		return
	}

	message := models.ChatMessage{
		Sender:    req.Sender,
		Text:      req.Text,
		Role:      req.Role,
		Timestamp: time.Now().UTC(),
	}
	c.gateway.Broadcast(broadcast.EventChatMessage, message)
	g.JSON(http.StatusOK, message)
}
