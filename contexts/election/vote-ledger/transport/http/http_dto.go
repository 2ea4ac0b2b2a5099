package http

// ErrorResponse is the uniform failure envelope for ledger routes.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CastVoteRequest is the voter-facing ballot payload.
type CastVoteRequest struct {
	PollID    string `json:"pollId"`
	Candidate string `json:"candidate"`
}

// CastVoteResponse confirms a recorded ballot.
type CastVoteResponse struct {
	Success bool   `json:"success"`
	VoteID  string `json:"voteId"`
	Message string `json:"message"`
}

// CandidateTallyResponse is one candidate's result line.
type CandidateTallyResponse struct {
	Candidate  string  `json:"candidate"`
	Votes      int     `json:"votes"`
	Percentage float64 `json:"percentage"`
}

// TallyResponse is a poll's full result.
type TallyResponse struct {
	Success    bool                     `json:"success"`
	PollID     string                   `json:"pollId"`
	TotalVotes int                      `json:"totalVotes"`
	Results    []CandidateTallyResponse `json:"results"`
}

// TrendPointResponse is one day of voting volume.
type TrendPointResponse struct {
	Date  string `json:"date"`
	Votes int    `json:"votes"`
}

// PollActivityResponse ranks one poll by vote volume.
type PollActivityResponse struct {
	PollID           string `json:"pollId"`
	Title            string `json:"title"`
	TargetYear       string `json:"targetYear"`
	TargetSection    string `json:"targetSection,omitempty"`
	TargetDepartment string `json:"targetDepartment,omitempty"`
	Votes            int    `json:"votes"`
}
