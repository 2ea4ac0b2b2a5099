package ports

import (
	"context"
	"time"

	"campusvote/contexts/election/eligibility"
	"campusvote/contexts/election/poll-registry/domain/entities"
)

// PollRepository persists polls. List returns polls sorted by creation
// time descending. Delete reports whether a row was removed.
type PollRepository interface {
	Insert(ctx context.Context, poll entities.Poll) error
	Update(ctx context.Context, poll entities.Poll) error
	Get(ctx context.Context, pollID string) (entities.Poll, error)
	List(ctx context.Context) ([]entities.Poll, error)
	SetActive(ctx context.Context, pollID string, active bool) error
	Delete(ctx context.Context, pollID string) (bool, error)
}

// VoterDirectory is the registry read surface the poll catalogue needs:
// audience sizing at creation and listing time, and placement lookup for
// the voter-facing feed.
type VoterDirectory interface {
	CountEligible(ctx context.Context, filter eligibility.Filter) (int, error)
	GetPlacement(ctx context.Context, voterID string) (eligibility.Placement, error)
}

// VoteReader is the ledger read surface: live counts for listings and the
// has-voted annotation for the voter feed. DeleteByPoll is the cascade
// hook used when a poll is removed.
type VoteReader interface {
	CountByPoll(ctx context.Context, pollID string) (int, error)
	HasVoted(ctx context.Context, pollID string, voterID string) (bool, error)
	DeleteByPoll(ctx context.Context, pollID string) (int, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
