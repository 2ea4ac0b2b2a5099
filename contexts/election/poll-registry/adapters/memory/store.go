package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"campusvote/contexts/election/poll-registry/domain/entities"
	domainerrors "campusvote/contexts/election/poll-registry/domain/errors"
	"campusvote/contexts/election/poll-registry/ports"

	"github.com/google/uuid"
)

// Store is the in-memory poll repository used by tests and local wiring.
type Store struct {
	mu    sync.RWMutex
	polls map[string]entities.Poll
}

func NewStore(seed []entities.Poll) *Store {
	polls := make(map[string]entities.Poll, len(seed))
	for _, poll := range seed {
		polls[poll.ID] = poll
	}
	return &Store{polls: polls}
}

func (s *Store) Insert(_ context.Context, poll entities.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polls[poll.ID] = clonePoll(poll)
	return nil
}

func (s *Store) Update(_ context.Context, poll entities.Poll) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.polls[poll.ID]; !ok {
		return domainerrors.ErrPollNotFound
	}
	s.polls[poll.ID] = clonePoll(poll)
	return nil
}

func (s *Store) Get(_ context.Context, pollID string) (entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	poll, ok := s.polls[strings.TrimSpace(pollID)]
	if !ok {
		return entities.Poll{}, domainerrors.ErrPollNotFound
	}
	return clonePoll(poll), nil
}

func (s *Store) List(_ context.Context) ([]entities.Poll, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Poll, 0, len(s.polls))
	for _, poll := range s.polls {
		out = append(out, clonePoll(poll))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) SetActive(_ context.Context, pollID string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	poll, ok := s.polls[pollID]
	if !ok {
		return domainerrors.ErrPollNotFound
	}
	poll.IsActive = active
	s.polls[pollID] = poll
	return nil
}

func (s *Store) Delete(_ context.Context, pollID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.polls[pollID]; !ok {
		return false, nil
	}
	delete(s.polls, pollID)
	return true, nil
}

// Clock and IDGenerator for in-memory wiring.

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// clonePoll copies the candidate slice so callers cannot mutate stored
// state through the returned value.
func clonePoll(poll entities.Poll) entities.Poll {
	cloned := poll
	cloned.Candidates = append([]string(nil), poll.Candidates...)
	return cloned
}

var _ ports.PollRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
