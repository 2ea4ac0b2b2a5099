package http

type ErrorResponse struct {
	Success bool     `json:"success"`
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

type CreateVoterRequest struct {
	RegNo      string `json:"regNo"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Year       string `json:"year"`
	Section    string `json:"section"`
	Department string `json:"department"`
	Password   string `json:"password,omitempty"`
}

type UpdateVoterRequest struct {
	RegNo      string `json:"regNo"`
	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Year       string `json:"year,omitempty"`
	Section    string `json:"section,omitempty"`
	Department string `json:"department,omitempty"`
	HasVoted   *bool  `json:"hasVoted,omitempty"`
}

type VoterResponse struct {
	ID         string `json:"id"`
	RegNo      string `json:"regNo"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Year       string `json:"year"`
	Section    string `json:"section"`
	Department string `json:"department"`
	HasVoted   bool   `json:"hasVoted"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

type VoterListResponse struct {
	Success bool            `json:"success"`
	Voters  []VoterResponse `json:"voters"`
}

type VoterGroupResponse struct {
	Year       string          `json:"year"`
	Section    string          `json:"section,omitempty"`
	Department string          `json:"department,omitempty"`
	Voters     []VoterResponse `json:"voters"`
	TotalCount int             `json:"totalCount"`
	VotedCount int             `json:"votedCount"`
	Sections   []string        `json:"sections,omitempty"`
}

type GroupedVotersResponse struct {
	Success bool                 `json:"success"`
	Groups  []VoterGroupResponse `json:"groups"`
}

type BulkActionRequest struct {
	Action   string             `json:"action"`
	VoterIDs []string           `json:"voterIds,omitempty"`
	Filters  *BulkActionFilters `json:"filters,omitempty"`
}

type BulkActionFilters struct {
	Year       string `json:"year,omitempty"`
	Section    string `json:"section,omitempty"`
	Department string `json:"department,omitempty"`
}

type BulkActionResponse struct {
	Success   bool   `json:"success"`
	Count     int    `json:"count"`
	SentCount int    `json:"sentCount,omitempty"`
	Message   string `json:"message"`
}

type UploadResponse struct {
	Success         bool   `json:"success"`
	Count           int    `json:"count"`
	SheetsProcessed int    `json:"sheetsProcessed,omitempty"`
	Message         string `json:"message,omitempty"`
}

type DeleteGroupResponse struct {
	Success      bool   `json:"success"`
	DeletedCount int    `json:"deletedCount"`
	Message      string `json:"message"`
}
