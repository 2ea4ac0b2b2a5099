package entities

import (
	"time"

	"campusvote/contexts/election/eligibility"
)

// Voter is a registered elector. RegNo is the immutable business key;
// RegNo and Email are each globally unique. Password is the regenerable
// login credential delivered to the voter by mail. HasVoted is a
// denormalized convenience flag kept in sync by the vote ledger on cast
// and by explicit admin bulk actions.
type Voter struct {
	ID          string
	RegNo       string
	Name        string
	Email       string
	Year        string
	Section     string
	Department  string
	Password    string
	HasVoted    bool
	SourceSheet string
	CreatedAt   time.Time
}

func (v Voter) Placement() eligibility.Placement {
	return eligibility.Placement{
		Year:       v.Year,
		Section:    v.Section,
		Department: v.Department,
	}
}

// VoterGroup is a derived, never-persisted aggregation of voters sharing
// academic placement attributes. Sections is populated only for year-level
// grouping.
type VoterGroup struct {
	Year       string
	Section    string
	Department string
	Voters     []Voter
	TotalCount int
	VotedCount int
	Sections   []string
}

// Years a voter may belong to.
var ValidYears = []string{"1", "2", "3", "4"}

func IsValidYear(year string) bool {
	for _, y := range ValidYears {
		if y == year {
			return true
		}
	}
	return false
}
