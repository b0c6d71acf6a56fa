// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package poll

import (
	"context"
	"sync"

	"github.com/danielhkuo/rank-poll/models"
)

// State is a consistent read of the poll
type State struct {
	Active bool
	Votes  []models.Vote
}

// Store holds the vote list and the active flag.
//
// Append must fail with ErrPollClosed if the poll has ended, and that check
// must be atomic with the write so no vote lands after End.
type Store interface {
	Append(ctx context.Context, vote models.Vote) error
	End(ctx context.Context) error
	Snapshot(ctx context.Context) (State, error)
}

// MemoryStore keeps the poll in process memory. Every process has its own
// poll; state is lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	votes []models.Vote
	ended bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Append(_ context.Context, vote models.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended {
		return ErrPollClosed
	}
	s.votes = append(s.votes, vote)
	return nil
}

func (s *MemoryStore) End(_ context.Context) error {
	s.mu.Lock()
	s.ended = true
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Snapshot(_ context.Context) (State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	votes := make([]models.Vote, len(s.votes))
	copy(votes, s.votes)
	return State{Active: !s.ended, Votes: votes}, nil
}
