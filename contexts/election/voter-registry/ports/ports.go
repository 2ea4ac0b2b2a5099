package ports

import (
	"context"
	"time"

	"campusvote/contexts/election/voter-registry/domain/entities"
)

// VoterFilter is a conjunction over optional dimensions. Empty fields
// impose no restriction.
type VoterFilter struct {
	Year       string
	Section    string
	Department string
	RegNo      string
	Email      string
}

func (f VoterFilter) IsZero() bool {
	return f.Year == "" && f.Section == "" && f.Department == "" && f.RegNo == "" && f.Email == ""
}

type VoterRepository interface {
	// Insert persists one voter. The storage layer's uniqueness
	// constraints on regNo and email are the arbiter; a violation is
	// returned as ErrDuplicateVoter.
	Insert(ctx context.Context, voter entities.Voter) error
	// InsertBatch persists a pre-validated batch. Callers have already
	// checked collisions; a constraint violation still maps to
	// ErrDuplicateVoter.
	InsertBatch(ctx context.Context, voters []entities.Voter) error
	Update(ctx context.Context, voter entities.Voter) error
	Get(ctx context.Context, voterID string) (entities.Voter, error)
	GetByRegNo(ctx context.Context, regNo string) (entities.Voter, error)
	GetByIDs(ctx context.Context, voterIDs []string) ([]entities.Voter, error)
	// List returns voters matching the filter sorted by (year, section, name).
	List(ctx context.Context, filter VoterFilter) ([]entities.Voter, error)
	Count(ctx context.Context, filter VoterFilter) (int, error)
	// CountCollisions reports how many existing voters already use any of
	// the given regNos or emails.
	CountCollisions(ctx context.Context, regNos []string, emails []string) (int, error)
	SetHasVoted(ctx context.Context, voterIDs []string, hasVoted bool) error
	// SetPasswords applies per-voter credential resets keyed by voter id.
	SetPasswords(ctx context.Context, passwords map[string]string) error
	// Delete removes the given voters and reports how many rows went away.
	Delete(ctx context.Context, voterIDs []string) (int, error)
}

// VoteCascader is the ledger-side cleanup hook: deleting voters must not
// leave orphaned vote rows behind. Dependents are removed before owners.
type VoteCascader interface {
	DeleteByVoters(ctx context.Context, voterIDs []string) (int, error)
}

// CredentialMailer delivers login credentials. Failures are non-fatal to
// bulk operations; callers report a sent/total ratio instead.
type CredentialMailer interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
