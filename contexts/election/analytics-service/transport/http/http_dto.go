package http

// OverviewResponse is the headline participation summary.
type OverviewResponse struct {
	TotalVoters      int `json:"totalVoters"`
	VotedCount       int `json:"votedCount"`
	NotVotedCount    int `json:"notVotedCount"`
	VotingPercentage int `json:"votingPercentage"`
	TotalPolls       int `json:"totalPolls"`
	ActivePolls      int `json:"activePolls"`
	TotalVotes       int `json:"totalVotes"`
}

// BreakdownResponse is one grouped participation row.
type BreakdownResponse struct {
	Key   string `json:"key"`
	Total int    `json:"total"`
	Voted int    `json:"voted"`
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

// DashboardResponse is the full admin analytics payload.
type DashboardResponse struct {
	Success       bool                   `json:"success"`
	Overview      OverviewResponse       `json:"overview"`
	ByYear        []BreakdownResponse    `json:"byYear"`
	ByDepartment  []BreakdownResponse    `json:"byDepartment"`
	ByYearSection []BreakdownResponse    `json:"byYearSection"`
	Trends        []TrendPointResponse   `json:"trends"`
	TopPolls      []PollActivityResponse `json:"topPolls"`
}
