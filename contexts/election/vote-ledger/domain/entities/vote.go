package entities

import "time"

// Vote is one cast ballot. The pair (PollID, VoterID) is unique across
// the ledger; the storage layer enforces it.
type Vote struct {
	ID        string
	PollID    string
	VoterID   string
	Candidate string
	CastAt    time.Time
}

// CandidateTally is one row of a poll's result: absolute count plus the
// percentage of all votes cast in that poll, rounded to one decimal.
type CandidateTally struct {
	Candidate  string
	Votes      int
	Percentage float64
}

// TrendPoint is the number of votes cast on one UTC calendar day.
type TrendPoint struct {
	Date  string
	Votes int
}

// PollActivity ranks a poll by ledger volume for dashboard display.
type PollActivity struct {
	PollID           string
	Title            string
	TargetYear       string
	TargetSection    string
	TargetDepartment string
	Votes            int
}
