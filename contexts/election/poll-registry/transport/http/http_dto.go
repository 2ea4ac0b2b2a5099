package http

// CreatePollRequest is the admin poll-creation payload.
type CreatePollRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	TargetYear       string   `json:"targetYear"`
	TargetSection    string   `json:"targetSection"`
	TargetDepartment string   `json:"targetDepartment"`
	Candidates       []string `json:"candidates"`
}

// UpdatePollRequest patches poll fields. A nil candidates list leaves the
// existing candidates untouched.
type UpdatePollRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	TargetYear       string   `json:"targetYear"`
	TargetSection    string   `json:"targetSection"`
	TargetDepartment string   `json:"targetDepartment"`
	Candidates       []string `json:"candidates"`
}

// TogglePollRequest flips a poll's activation flag.
type TogglePollRequest struct {
	IsActive bool `json:"isActive"`
}

// PollResponse is the wire form of one poll.
type PollResponse struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Description         string   `json:"description"`
	TargetYear          string   `json:"targetYear"`
	TargetSection       string   `json:"targetSection,omitempty"`
	TargetDepartment    string   `json:"targetDepartment,omitempty"`
	Candidates          []string `json:"candidates"`
	IsActive            bool     `json:"isActive"`
	EligibleVotersCount int      `json:"eligibleVotersCount"`
	CreatedAt           string   `json:"createdAt,omitempty"`
	CreatedBy           string   `json:"createdBy,omitempty"`
}

// PollSummaryResponse is an admin listing row: live vote count plus the
// recomputed eligible count, with the creation snapshot alongside.
type PollSummaryResponse struct {
	PollResponse
	TotalVotes           int `json:"totalVotes"`
	CreatedEligibleCount int `json:"createdEligibleCount"`
}

// PollListResponse wraps the admin poll listing.
type PollListResponse struct {
	Success bool                  `json:"success"`
	Polls   []PollSummaryResponse `json:"polls"`
}

// VoterPollResponse is one row of a voter's poll feed.
type VoterPollResponse struct {
	PollResponse
	HasVoted bool `json:"hasVoted"`
}

// VoterPollListResponse wraps the voter-facing poll feed.
type VoterPollListResponse struct {
	Success bool                `json:"success"`
	Polls   []VoterPollResponse `json:"polls"`
}

// SinglePollResponse wraps one poll for create/update/toggle responses.
type SinglePollResponse struct {
	Success bool         `json:"success"`
	Poll    PollResponse `json:"poll"`
}
