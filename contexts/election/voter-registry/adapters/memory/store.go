package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"campusvote/contexts/election/eligibility"
	"campusvote/contexts/election/voter-registry/domain/entities"
	domainerrors "campusvote/contexts/election/voter-registry/domain/errors"
	"campusvote/contexts/election/voter-registry/ports"

	"github.com/google/uuid"
)

// Store is the in-memory voter repository used by tests and local
// wiring. It mirrors the storage constraints the postgres adapter gets
// from unique indexes: regNo and email uniqueness are checked under the
// same lock that performs the insert.
type Store struct {
	mu     sync.RWMutex
	voters map[string]entities.Voter
}

func NewStore(seed []entities.Voter) *Store {
	voters := make(map[string]entities.Voter, len(seed))
	for _, voter := range seed {
		voters[voter.ID] = voter
	}
	return &Store{voters: voters}
}

func (s *Store) Insert(_ context.Context, voter entities.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.collides(voter.RegNo, voter.Email) {
		return domainerrors.ErrDuplicateVoter
	}
	s.voters[voter.ID] = voter
	return nil
}

func (s *Store) InsertBatch(_ context.Context, voters []entities.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, voter := range voters {
		if s.collides(voter.RegNo, voter.Email) {
			return domainerrors.ErrDuplicateVoter
		}
	}
	for _, voter := range voters {
		s.voters[voter.ID] = voter
	}
	return nil
}

func (s *Store) Update(_ context.Context, voter entities.Voter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.voters[voter.ID]; !ok {
		return domainerrors.ErrVoterNotFound
	}
	for id, existing := range s.voters {
		if id == voter.ID {
			continue
		}
		if existing.RegNo == voter.RegNo || existing.Email == voter.Email {
			return domainerrors.ErrDuplicateVoter
		}
	}
	s.voters[voter.ID] = voter
	return nil
}

func (s *Store) Get(_ context.Context, voterID string) (entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	voter, ok := s.voters[strings.TrimSpace(voterID)]
	if !ok {
		return entities.Voter{}, domainerrors.ErrVoterNotFound
	}
	return voter, nil
}

func (s *Store) GetByRegNo(_ context.Context, regNo string) (entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	regNo = strings.ToUpper(strings.TrimSpace(regNo))
	for _, voter := range s.voters {
		if voter.RegNo == regNo {
			return voter, nil
		}
	}
	return entities.Voter{}, domainerrors.ErrVoterNotFound
}

func (s *Store) GetByIDs(_ context.Context, voterIDs []string) ([]entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Voter, 0, len(voterIDs))
	for _, id := range voterIDs {
		if voter, ok := s.voters[strings.TrimSpace(id)]; ok {
			out = append(out, voter)
		}
	}
	sortVoters(out)
	return out, nil
}

func (s *Store) List(_ context.Context, filter ports.VoterFilter) ([]entities.Voter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Voter, 0)
	for _, voter := range s.voters {
		if matches(voter, filter) {
			out = append(out, voter)
		}
	}
	sortVoters(out)
	return out, nil
}

func (s *Store) Count(_ context.Context, filter ports.VoterFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, voter := range s.voters {
		if matches(voter, filter) {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountCollisions(_ context.Context, regNos []string, emails []string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wantRegNo := make(map[string]bool, len(regNos))
	for _, regNo := range regNos {
		wantRegNo[regNo] = true
	}
	wantEmail := make(map[string]bool, len(emails))
	for _, email := range emails {
		wantEmail[email] = true
	}
	count := 0
	for _, voter := range s.voters {
		if wantRegNo[voter.RegNo] || wantEmail[voter.Email] {
			count++
		}
	}
	return count, nil
}

func (s *Store) SetHasVoted(_ context.Context, voterIDs []string, hasVoted bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range voterIDs {
		if voter, ok := s.voters[id]; ok {
			voter.HasVoted = hasVoted
			s.voters[id] = voter
		}
	}
	return nil
}

func (s *Store) SetPasswords(_ context.Context, passwords map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, password := range passwords {
		if voter, ok := s.voters[id]; ok {
			voter.Password = password
			s.voters[id] = voter
		}
	}
	return nil
}

func (s *Store) Delete(_ context.Context, voterIDs []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for _, id := range voterIDs {
		if _, ok := s.voters[id]; ok {
			delete(s.voters, id)
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

func (s *Store) collides(regNo string, email string) bool {
	for _, voter := range s.voters {
		if voter.RegNo == regNo || voter.Email == email {
			return true
		}
	}
	return false
}

func matches(voter entities.Voter, filter ports.VoterFilter) bool {
	placement := eligibility.Filter{
		Year:       filter.Year,
		Section:    strings.ToUpper(strings.TrimSpace(filter.Section)),
		Department: strings.ToUpper(strings.TrimSpace(filter.Department)),
	}
	if !placement.Matches(voter.Placement()) {
		return false
	}
	if filter.RegNo != "" && !strings.EqualFold(voter.RegNo, strings.TrimSpace(filter.RegNo)) {
		return false
	}
	if filter.Email != "" && !strings.EqualFold(voter.Email, strings.TrimSpace(filter.Email)) {
		return false
	}
	return true
}

func sortVoters(voters []entities.Voter) {
	sort.Slice(voters, func(i, j int) bool {
		if voters[i].Year != voters[j].Year {
			return voters[i].Year < voters[j].Year
		}
		if voters[i].Section != voters[j].Section {
			return voters[i].Section < voters[j].Section
		}
		return voters[i].Name < voters[j].Name
	})
}

var _ ports.VoterRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
