package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	testutils "github.com/alex-pricope/live-polling-system/api/controllers/testing"
	"github.com/alex-pricope/live-polling-system/api/models"
	"github.com/alex-pricope/live-polling-system/broadcast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendChatMessage(t *testing.T) {
	server := setupTestServer(t)

	t.Run("Happy path - message reaches subscribers", func(t *testing.T) {
		_, events := server.gateway.Subscribe("")

		payload := models.ChatMessageRequest{Sender: "Alice", Text: "hello", Role: models.ChatRoleParticipant}
		res := testutils.PerformRequest(server.router, http.MethodPost, "/api/chat", payload, nil)
		require.Equal(t, http.StatusOK, res.Code)

		var message models.ChatMessage
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &message))
		assert.Equal(t, "Alice", message.Sender)
		assert.False(t, message.Timestamp.IsZero())

		select {
		case event := <-events:
			assert.Equal(t, broadcast.EventChatMessage, event.Name)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for chat event")
		}
	})

	t.Run("Missing sender", func(t *testing.T) {
		payload := models.ChatMessageRequest{Text: "hello", Role: models.ChatRoleParticipant}
		res := testutils.PerformRequest(server.router, http.MethodPost, "/api/chat", payload, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Missing text", func(t *testing.T) {
		payload := models.ChatMessageRequest{Sender: "Alice", Role: models.ChatRoleParticipant}
		res := testutils.PerformRequest(server.router, http.MethodPost, "/api/chat", payload, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("Invalid role", func(t *testing.T) {
		payload := models.ChatMessageRequest{Sender: "Alice", Text: "hello", Role: "INTRUDER"}
		res := testutils.PerformRequest(server.router, http.MethodPost, "/api/chat", payload, nil)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}
