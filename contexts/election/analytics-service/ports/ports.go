package ports

import (
	"context"
	"time"
)

// VoterSnapshot is the registry slice analytics reads. Password appears
// because the voters export includes the issued credential.
type VoterSnapshot struct {
	RegNo      string
	Name       string
	Email      string
	Year       string
	Section    string
	Department string
	Password   string
	HasVoted   bool
	CreatedAt  time.Time
}

type VoterReader interface {
	ListVoters(ctx context.Context) ([]VoterSnapshot, error)
}

// PollSnapshot is the catalogue slice analytics reads.
type PollSnapshot struct {
	ID                  string
	Title               string
	TargetYear          string
	TargetSection       string
	TargetDepartment    string
	Candidates          []string
	IsActive            bool
	EligibleVotersCount int
}

type PollReader interface {
	ListPolls(ctx context.Context) ([]PollSnapshot, error)
}

// VoteRecord is one ledger row as analytics sees it.
type VoteRecord struct {
	PollID    string
	VoterID   string
	VoterRef  string
	Candidate string
	CastAt    time.Time
}

type VoteReader interface {
	ListVotes(ctx context.Context) ([]VoteRecord, error)
	CountVotes(ctx context.Context) (int, error)
}

// TrendPoint and PollActivity mirror the ledger's dashboard reads; the
// vote-ledger module is the source of record for both.
type TrendPoint struct {
	Date  string
	Votes int
}

type PollActivity struct {
	PollID           string
	Title            string
	TargetYear       string
	TargetSection    string
	TargetDepartment string
	Votes            int
}

// LedgerAnalytics re-exposes the ledger's trend and activity queries to
// the dashboard payload.
type LedgerAnalytics interface {
	VotingTrend(ctx context.Context, days int) ([]TrendPoint, error)
	MostActivePolls(ctx context.Context, limit int) ([]PollActivity, error)
}
