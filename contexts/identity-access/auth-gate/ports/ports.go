package ports

import (
	"context"
	"time"

	"campusvote/contexts/identity-access/auth-gate/domain/entities"
)

type AdminRepository interface {
	// Insert persists one admin. The storage layer's unique email
	// constraint is the arbiter; a violation is returned as
	// ErrDuplicateAdmin.
	Insert(ctx context.Context, admin entities.Admin) error
	GetByEmail(ctx context.Context, email string) (entities.Admin, error)
	Get(ctx context.Context, adminID string) (entities.Admin, error)
}

// VoterAccount is the registry slice the gate reads for voter login and
// profile lookups. Password is the issued credential compared verbatim
// on login.
type VoterAccount struct {
	ID         string
	RegNo      string
	Name       string
	Email      string
	Year       string
	Section    string
	Department string
	Password   string
	HasVoted   bool
}

// VoterAccounts crosses into the voter registry. Lookups that miss
// return ErrVoterNotFound.
type VoterAccounts interface {
	GetByEmail(ctx context.Context, email string) (VoterAccount, error)
	Get(ctx context.Context, voterID string) (VoterAccount, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
