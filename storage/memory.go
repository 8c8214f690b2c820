package storage

import (
	"context"
	"sort"
	"sync"
)

// In-memory implementations of the storage interfaces, used for local
// mode and in tests. They keep the same contract as the Dynamo ones,
// including the unique (pollID, participantID) vote constraint.

type MemoryPollStorage struct {
	mu    sync.RWMutex
	polls map[string]*Poll
}

func NewMemoryPollStorage() *MemoryPollStorage {
	return &MemoryPollStorage{polls: make(map[string]*Poll)}
}

func copyPoll(p *Poll) *Poll {
	cp := *p
	cp.Options = make([]Option, len(p.Options))
	copy(cp.Options, p.Options)
	if p.EndedAt != nil {
		endedAt := *p.EndedAt
		cp.EndedAt = &endedAt
	}
	return &cp
}

func (s *MemoryPollStorage) Create(ctx context.Context, poll *Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.polls[poll.ID]; exists {
		return ErrItemAlreadyExists
	}
	s.polls[poll.ID] = copyPoll(poll)
	return nil
}

func (s *MemoryPollStorage) Get(ctx context.Context, id string) (*Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	poll, exists := s.polls[id]
	if !exists {
		return nil, ErrItemNotFound
	}
	return copyPoll(poll), nil
}

func (s *MemoryPollStorage) FindActive(ctx context.Context) (*Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, poll := range s.polls {
		if poll.Status == PollStatusActive {
			return copyPoll(poll), nil
		}
	}
	return nil, nil
}

func (s *MemoryPollStorage) FindEnded(ctx context.Context, limit int) ([]*Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ended []*Poll
	for _, poll := range s.polls {
		if poll.Status == PollStatusEnded {
			ended = append(ended, copyPoll(poll))
		}
	}
	sort.Slice(ended, func(i, j int) bool {
		if ended[i].EndedAt == nil || ended[j].EndedAt == nil {
			return ended[i].EndedAt != nil
		}
		return ended[i].EndedAt.After(*ended[j].EndedAt)
	})
	if limit > 0 && len(ended) > limit {
		ended = ended[:limit]
	}
	return ended, nil
}

func (s *MemoryPollStorage) Update(ctx context.Context, poll *Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.polls[poll.ID]; !exists {
		return ErrItemNotFound
	}
	s.polls[poll.ID] = copyPoll(poll)
	return nil
}

func (s *MemoryPollStorage) IncrementVote(ctx context.Context, pollID string, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	poll, exists := s.polls[pollID]
	if !exists {
		return ErrItemNotFound
	}
	if optionIndex < 0 || optionIndex >= len(poll.Options) {
		return ErrItemNotFound
	}
	poll.Options[optionIndex].VoteCount++
	return nil
}

type voteKey struct {
	pollID        string
	participantID string
}

type MemoryVoteStorage struct {
	mu    sync.Mutex
	votes map[voteKey]*Vote
}

func NewMemoryVoteStorage() *MemoryVoteStorage {
	return &MemoryVoteStorage{votes: make(map[voteKey]*Vote)}
}

func (s *MemoryVoteStorage) Create(ctx context.Context, vote *Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := voteKey{pollID: vote.PollID, participantID: vote.ParticipantID}
	// Check-and-insert under one lock, the memory equivalent of the
	// Dynamo conditional put.
	if _, exists := s.votes[key]; exists {
		return ErrItemAlreadyExists
	}
	cp := *vote
	s.votes[key] = &cp
	return nil
}

func (s *MemoryVoteStorage) Get(ctx context.Context, pollID, participantID string) (*Vote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	vote, exists := s.votes[voteKey{pollID: pollID, participantID: participantID}]
	if !exists {
		return nil, ErrItemNotFound
	}
	cp := *vote
	return &cp, nil
}

func (s *MemoryVoteStorage) CountByPoll(ctx context.Context, pollID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for key := range s.votes {
		if key.pollID == pollID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryVoteStorage) Delete(ctx context.Context, pollID, participantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.votes, voteKey{pollID: pollID, participantID: participantID})
	return nil
}

type MemoryParticipantStorage struct {
	mu           sync.RWMutex
	participants map[string]*Participant
}

func NewMemoryParticipantStorage() *MemoryParticipantStorage {
	return &MemoryParticipantStorage{participants: make(map[string]*Participant)}
}

func (s *MemoryParticipantStorage) Get(ctx context.Context, id string) (*Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	participant, exists := s.participants[id]
	if !exists {
		return nil, ErrItemNotFound
	}
	cp := *participant
	return &cp, nil
}

func (s *MemoryParticipantStorage) Put(ctx context.Context, participant *Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *participant
	s.participants[participant.ID] = &cp
	return nil
}

func (s *MemoryParticipantStorage) GetByConnection(ctx context.Context, connectionID string) (*Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, participant := range s.participants {
		if participant.ConnectionID == connectionID {
			cp := *participant
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *MemoryParticipantStorage) GetActive(ctx context.Context) ([]*Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var active []*Participant
	for _, participant := range s.participants {
		if participant.IsActive {
			cp := *participant
			active = append(active, &cp)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].JoinedAt.After(active[j].JoinedAt)
	})
	return active, nil
}
