package models

import (
	"time"

	"github.com/alex-pricope/live-polling-system/storage"
)

type RegisterParticipantRequest struct {
	ParticipantID string `json:"participantId"`
	Name          string `json:"name"`
}

type ParticipantEntry struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joinedAt"`
}

type RegisterParticipantResponse struct {
	Success     bool             `json:"success"`
	Participant ParticipantEntry `json:"participant"`
}

type SessionValidationResponse struct {
	Valid       bool              `json:"valid"`
	Participant *ParticipantEntry `json:"participant,omitempty"`
	Message     string            `json:"message,omitempty"`
}

func TransformParticipantToEntry(p *storage.Participant) ParticipantEntry {
	return ParticipantEntry{
		ID:       p.ID,
		Name:     p.Name,
		JoinedAt: p.JoinedAt,
	}
}

func TransformParticipantsToEntries(participants []*storage.Participant) []ParticipantEntry {
	entries := make([]ParticipantEntry, 0, len(participants))
	for _, p := range participants {
		entries = append(entries, TransformParticipantToEntry(p))
	}
	return entries
}
