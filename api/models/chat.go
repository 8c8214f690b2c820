package models

import "time"

type ChatRole string

const (
	ChatRoleParticipant ChatRole = "PARTICIPANT"
	ChatRoleOperator    ChatRole = "OPERATOR"
)

var ValidChatRoles = map[ChatRole]struct{}{
	ChatRoleParticipant: {},
	ChatRoleOperator:    {},
}

type ChatMessageRequest struct {
	Sender string   `json:"sender"`
	Text   string   `json:"text"`
	Role   ChatRole `json:"role"`
}

// ChatMessage is relayed to observers only, never stored.
type ChatMessage struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Role      ChatRole  `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}
