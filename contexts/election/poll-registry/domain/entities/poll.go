package entities

import (
	"time"

	"campusvote/contexts/election/eligibility"
)

// Poll is one election question put to a targeted voter audience.
// EligibleVotersCount is the audience size frozen at creation time; later
// roster changes do not rewrite it. Polls are created inactive and opened
// explicitly by an administrator.
type Poll struct {
	ID                  string
	Title               string
	Description         string
	TargetYear          string
	TargetSection       string
	TargetDepartment    string
	Candidates          []string
	IsActive            bool
	EligibleVotersCount int
	CreatedAt           time.Time
	CreatedBy           string
}

func (p Poll) Target() eligibility.Target {
	return eligibility.Target{
		Year:       p.TargetYear,
		Section:    p.TargetSection,
		Department: p.TargetDepartment,
	}
}

// HasCandidate reports whether name is one of the poll's candidates.
// Matching is exact; candidate names are stored as entered.
func (p Poll) HasCandidate(name string) bool {
	for _, candidate := range p.Candidates {
		if candidate == name {
			return true
		}
	}
	return false
}

// PollSummary is a read-model row for admin listings: the poll plus live
// counts. EligibleVotersCount here is recomputed against the current
// roster; CreatedEligibleCount carries the persisted creation snapshot.
type PollSummary struct {
	Poll
	TotalVotes           int
	CreatedEligibleCount int
}

// VoterPoll is a read-model row for the voter-facing feed: the poll plus
// whether this voter has already cast in it.
type VoterPoll struct {
	Poll
	HasVoted bool
}
