package ports

import (
	"context"
	"time"

	"campusvote/contexts/election/vote-ledger/domain/entities"
	"campusvote/internal/shared/events"
)

// VoteRepository persists votes. Insert must fail with the module's
// ErrAlreadyVoted when the (poll, voter) pair already holds a row; that
// single write is the concurrency arbiter for double voting. CountSince
// buckets votes cast at or after since by UTC date ("2006-01-02");
// CountPerPoll buckets the whole ledger by poll id.
type VoteRepository interface {
	Insert(ctx context.Context, vote entities.Vote) error
	ListByPoll(ctx context.Context, pollID string) ([]entities.Vote, error)
	ListByVoter(ctx context.Context, voterID string) ([]entities.Vote, error)
	ListAll(ctx context.Context) ([]entities.Vote, error)
	CountByPoll(ctx context.Context, pollID string) (int, error)
	CountAll(ctx context.Context) (int, error)
	HasVoted(ctx context.Context, pollID string, voterID string) (bool, error)
	CountSince(ctx context.Context, since time.Time) (map[string]int, error)
	CountPerPoll(ctx context.Context) (map[string]int, error)
	DeleteByPoll(ctx context.Context, pollID string) (int, error)
	DeleteByVoters(ctx context.Context, voterIDs []string) (int, error)
}

// PollSnapshot is the slice of poll state the ledger needs to admit or
// reject a ballot and to label rankings.
type PollSnapshot struct {
	ID               string
	Title            string
	TargetYear       string
	TargetSection    string
	TargetDepartment string
	Candidates       []string
	IsActive         bool
}

// PollReader resolves polls from the catalogue module.
type PollReader interface {
	GetPoll(ctx context.Context, pollID string) (PollSnapshot, error)
	ListPolls(ctx context.Context) ([]PollSnapshot, error)
}

// VoterMarker flips the registry's denormalized has-voted flag after a
// successful cast.
type VoterMarker interface {
	SetHasVoted(ctx context.Context, voterIDs []string, hasVoted bool) error
}

// EventPublisher pushes ledger facts onto the in-process bus. Nil means
// no publication, as in pure read/test wiring.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
