package poll

import (
	"time"

	"github.com/alex-pricope/live-polling-system/storage"
)

type Status string

const (
	StatusIdle   Status = "IDLE"
	StatusActive Status = "ACTIVE"
	StatusEnded  Status = "ENDED"
)

// Snapshot is the self-contained projection of the current poll state
// used for both push broadcasts and pull-based reconciliation. It is
// derived from the Poll entity alone, never by replaying votes, and
// always carries the server clock so observers can compute their own
// offset instead of trusting wall-clock arithmetic.
type Snapshot struct {
	Status           Status       `json:"status"`
	PollID           string       `json:"pollId,omitempty"`
	Question         string       `json:"question,omitempty"`
	Options          []OptionView `json:"options,omitempty"`
	Duration         int          `json:"duration,omitempty"`
	StartedAt        *time.Time   `json:"startedAt,omitempty"`
	EndedAt          *time.Time   `json:"endedAt,omitempty"`
	ResultsRemaining int          `json:"resultsRemaining,omitempty"`
	ServerTime       time.Time    `json:"serverTime"`
}

type OptionView struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	VoteCount int    `json:"voteCount"`
	IsCorrect bool   `json:"isCorrect"`
}

func newIdleSnapshot(now time.Time) Snapshot {
	return Snapshot{Status: StatusIdle, ServerTime: now}
}

func newSnapshot(p *storage.Poll, resultsWindow time.Duration, now time.Time) Snapshot {
	snap := Snapshot{
		PollID:     p.ID,
		Question:   p.Question,
		Options:    make([]OptionView, 0, len(p.Options)),
		Duration:   p.Duration,
		ServerTime: now,
	}
	for _, opt := range p.Options {
		snap.Options = append(snap.Options, OptionView{
			ID:        opt.ID,
			Text:      opt.Text,
			VoteCount: opt.VoteCount,
			IsCorrect: opt.IsCorrect,
		})
	}

	switch p.Status {
	case storage.PollStatusActive:
		snap.Status = StatusActive
		startedAt := p.StartedAt
		snap.StartedAt = &startedAt
	case storage.PollStatusEnded:
		snap.Status = StatusEnded
		snap.EndedAt = p.EndedAt
		if p.EndedAt != nil {
			remaining := p.EndedAt.Add(resultsWindow).Sub(now)
			if remaining > 0 {
				snap.ResultsRemaining = int((remaining + time.Second - 1) / time.Second)
			}
		}
	}
	return snap
}
