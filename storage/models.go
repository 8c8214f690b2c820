package storage

import "time"

type PollStatus string

const (
	PollStatusActive PollStatus = "ACTIVE"
	PollStatusEnded  PollStatus = "ENDED"
)

type Poll struct {
	ID        string     `dynamodbav:"PK" json:"id"`
	Question  string     `dynamodbav:"Question" json:"question"`
	Options   []Option   `dynamodbav:"Options" json:"options"`
	Duration  int        `dynamodbav:"Duration" json:"duration"`
	Status    PollStatus `dynamodbav:"Status" json:"status"`
	StartedAt time.Time  `dynamodbav:"StartedAt" json:"startedAt"`
	EndedAt   *time.Time `dynamodbav:"EndedAt,omitempty" json:"endedAt,omitempty"`
	CreatedBy string     `dynamodbav:"CreatedBy" json:"createdBy"`
}

type Option struct {
	ID        string `dynamodbav:"ID" json:"id"`
	Text      string `dynamodbav:"Text" json:"text"`
	VoteCount int    `dynamodbav:"VoteCount" json:"voteCount"`
	IsCorrect bool   `dynamodbav:"IsCorrect" json:"isCorrect"`
}

type Vote struct {
	PollID        string    `dynamodbav:"PK" json:"pollId"`
	ParticipantID string    `dynamodbav:"SK" json:"participantId"`
	ID            string    `dynamodbav:"ID" json:"id"`
	OptionID      string    `dynamodbav:"OptionID" json:"optionId"`
	VotedAt       time.Time `dynamodbav:"VotedAt" json:"votedAt"`
}

type Participant struct {
	ID           string    `dynamodbav:"PK" json:"id"`
	Name         string    `dynamodbav:"Name" json:"name"`
	ConnectionID string    `dynamodbav:"ConnectionID" json:"-"`
	JoinedAt     time.Time `dynamodbav:"JoinedAt" json:"joinedAt"`
	IsActive     bool      `dynamodbav:"IsActive" json:"isActive"`
	IsKicked     bool      `dynamodbav:"IsKicked" json:"-"`
}
