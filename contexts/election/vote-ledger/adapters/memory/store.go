package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"campusvote/contexts/election/vote-ledger/domain/entities"
	domainerrors "campusvote/contexts/election/vote-ledger/domain/errors"
	"campusvote/contexts/election/vote-ledger/ports"

	"github.com/google/uuid"
)

// Store is the in-memory vote ledger used by tests and local wiring. The
// identity map keyed by (poll, voter) is checked and written under one
// lock, mirroring the unique index the postgres adapter relies on.
type Store struct {
	mu       sync.RWMutex
	votes    map[string]entities.Vote
	identity map[string]string
}

func NewStore(seed []entities.Vote) *Store {
	store := &Store{
		votes:    make(map[string]entities.Vote, len(seed)),
		identity: make(map[string]string, len(seed)),
	}
	for _, vote := range seed {
		store.votes[vote.ID] = vote
		store.identity[identityKey(vote.PollID, vote.VoterID)] = vote.ID
	}
	return store
}

func (s *Store) Insert(_ context.Context, vote entities.Vote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := identityKey(vote.PollID, vote.VoterID)
	if _, taken := s.identity[key]; taken {
		return domainerrors.ErrAlreadyVoted
	}
	s.votes[vote.ID] = vote
	s.identity[key] = vote.ID
	return nil
}

func (s *Store) ListByPoll(_ context.Context, pollID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Vote, 0)
	for _, vote := range s.votes {
		if vote.PollID == pollID {
			out = append(out, vote)
		}
	}
	sortVotes(out)
	return out, nil
}

func (s *Store) ListByVoter(_ context.Context, voterID string) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Vote, 0)
	for _, vote := range s.votes {
		if vote.VoterID == voterID {
			out = append(out, vote)
		}
	}
	sortVotes(out)
	return out, nil
}

func (s *Store) ListAll(_ context.Context) ([]entities.Vote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Vote, 0, len(s.votes))
	for _, vote := range s.votes {
		out = append(out, vote)
	}
	sortVotes(out)
	return out, nil
}

func (s *Store) CountByPoll(_ context.Context, pollID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, vote := range s.votes {
		if vote.PollID == pollID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountAll(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.votes), nil
}

func (s *Store) HasVoted(_ context.Context, pollID string, voterID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, voted := s.identity[identityKey(pollID, voterID)]
	return voted, nil
}

func (s *Store) CountSince(_ context.Context, since time.Time) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int)
	for _, vote := range s.votes {
		if vote.CastAt.Before(since) {
			continue
		}
		out[vote.CastAt.UTC().Format("2006-01-02")]++
	}
	return out, nil
}

func (s *Store) CountPerPoll(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int)
	for _, vote := range s.votes {
		out[vote.PollID]++
	}
	return out, nil
}

func (s *Store) DeleteByPoll(_ context.Context, pollID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for id, vote := range s.votes {
		if vote.PollID == pollID {
			delete(s.votes, id)
			delete(s.identity, identityKey(vote.PollID, vote.VoterID))
			deleted++
		}
	}
	return deleted, nil
}

func (s *Store) DeleteByVoters(_ context.Context, voterIDs []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[string]bool, len(voterIDs))
	for _, id := range voterIDs {
		wanted[id] = true
	}
	deleted := 0
	for id, vote := range s.votes {
		if wanted[vote.VoterID] {
			delete(s.votes, id)
			delete(s.identity, identityKey(vote.PollID, vote.VoterID))
			deleted++
		}
	}
	return deleted, nil
}

// Clock and IDGenerator for in-memory wiring.

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func identityKey(pollID string, voterID string) string {
	return pollID + "/" + voterID
}

func sortVotes(votes []entities.Vote) {
	sort.Slice(votes, func(i, j int) bool {
		if !votes[i].CastAt.Equal(votes[j].CastAt) {
			return votes[i].CastAt.Before(votes[j].CastAt)
		}
		return votes[i].ID < votes[j].ID
	})
}

var _ ports.VoteRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
