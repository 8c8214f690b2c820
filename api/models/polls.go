package models

import (
	"time"

	"github.com/alex-pricope/live-polling-system/storage"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreatePollRequest struct {
	Question string              `json:"question"`
	Options  []CreateOptionEntry `json:"options"`
	Duration int                 `json:"duration"`
}

type CreateOptionEntry struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type OptionResponse struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	VoteCount int    `json:"voteCount"`
	IsCorrect bool   `json:"isCorrect"`
}

type PollResponse struct {
	PollID    string           `json:"pollId"`
	Question  string           `json:"question"`
	Options   []OptionResponse `json:"options"`
	Duration  int              `json:"duration"`
	Status    string           `json:"status"`
	StartedAt time.Time        `json:"startedAt"`
	EndedAt   *time.Time       `json:"endedAt,omitempty"`
}

func TransformPollToResponse(p *storage.Poll) PollResponse {
	response := PollResponse{
		PollID:    p.ID,
		Question:  p.Question,
		Options:   make([]OptionResponse, 0, len(p.Options)),
		Duration:  p.Duration,
		Status:    string(p.Status),
		StartedAt: p.StartedAt,
		EndedAt:   p.EndedAt,
	}
	for _, opt := range p.Options {
		response.Options = append(response.Options, OptionResponse{
			ID:        opt.ID,
			Text:      opt.Text,
			VoteCount: opt.VoteCount,
			IsCorrect: opt.IsCorrect,
		})
	}
	return response
}
