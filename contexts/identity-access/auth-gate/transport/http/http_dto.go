package http

// LoginRequest authenticates either role; Type selects the path.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Type     string `json:"type"`
}

// AdminProfileResponse is the admin payload returned on login.
type AdminProfileResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// VoterProfileResponse is the voter payload returned on login and on
// the profile route. The credential never appears here.
type VoterProfileResponse struct {
	ID         string `json:"id"`
	RegNo      string `json:"regNo"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Year       string `json:"year"`
	Section    string `json:"section,omitempty"`
	Department string `json:"department,omitempty"`
	HasVoted   bool   `json:"hasVoted"`
}

// LoginResponse carries the signed token plus the matching profile.
type LoginResponse struct {
	Success bool                  `json:"success"`
	Token   string                `json:"token"`
	Admin   *AdminProfileResponse `json:"admin,omitempty"`
	Voter   *VoterProfileResponse `json:"voter,omitempty"`
}

// ProfileResponse wraps the voter profile route payload.
type ProfileResponse struct {
	Success bool                 `json:"success"`
	Voter   VoterProfileResponse `json:"voter"`
}
