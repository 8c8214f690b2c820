package models

import (
	"time"

	"github.com/alex-pricope/live-polling-system/storage"
)

type SubmitVoteRequest struct {
	ParticipantID string `json:"participantId"`
	OptionID      string `json:"optionId"`
}

type VoteEntry struct {
	PollID        string    `json:"pollId"`
	ParticipantID string    `json:"participantId"`
	OptionID      string    `json:"optionId"`
	VotedAt       time.Time `json:"votedAt"`
}

type SubmitVoteResponse struct {
	Success bool      `json:"success"`
	Vote    VoteEntry `json:"vote"`
}

type VoteStatusResponse struct {
	HasVoted bool       `json:"hasVoted"`
	Vote     *VoteEntry `json:"vote,omitempty"`
}

func TransformVoteToEntry(v *storage.Vote) VoteEntry {
	return VoteEntry{
		PollID:        v.PollID,
		ParticipantID: v.ParticipantID,
		OptionID:      v.OptionID,
		VotedAt:       v.VotedAt,
	}
}
