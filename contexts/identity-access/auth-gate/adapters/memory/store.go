package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"campusvote/contexts/identity-access/auth-gate/domain/entities"
	domainerrors "campusvote/contexts/identity-access/auth-gate/domain/errors"
	"campusvote/contexts/identity-access/auth-gate/ports"

	"github.com/google/uuid"
)

// Store is the in-memory admin repository used by tests and local wiring.
type Store struct {
	mu      sync.RWMutex
	admins  map[string]entities.Admin
	byEmail map[string]string
}

func NewStore(seed []entities.Admin) *Store {
	admins := make(map[string]entities.Admin, len(seed))
	byEmail := make(map[string]string, len(seed))
	for _, admin := range seed {
		admins[admin.ID] = admin
		byEmail[strings.ToLower(admin.Email)] = admin.ID
	}
	return &Store{admins: admins, byEmail: byEmail}
}

func (s *Store) Insert(_ context.Context, admin entities.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := strings.ToLower(admin.Email)
	if _, ok := s.byEmail[email]; ok {
		return domainerrors.ErrDuplicateAdmin
	}
	s.admins[admin.ID] = admin
	s.byEmail[email] = admin.ID
	return nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (entities.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return entities.Admin{}, domainerrors.ErrAdminNotFound
	}
	return s.admins[id], nil
}

func (s *Store) Get(_ context.Context, adminID string) (entities.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	admin, ok := s.admins[strings.TrimSpace(adminID)]
	if !ok {
		return entities.Admin{}, domainerrors.ErrAdminNotFound
	}
	return admin, nil
}

// Clock and IDGenerator for in-memory wiring.

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

var _ ports.AdminRepository = (*Store)(nil)
var _ ports.Clock = (*Store)(nil)
var _ ports.IDGenerator = (*Store)(nil)
