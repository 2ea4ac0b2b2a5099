package entities

import "time"

// Roles a verified identity can carry.
const (
	RoleAdmin = "admin"
	RoleVoter = "voter"
)

// Admin is a platform administrator account. Email is globally unique.
// PasswordHash is a bcrypt digest; the plaintext never persists.
type Admin struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the verified caller attached to a request after token
// verification.
type Identity struct {
	ID   string
	Role string
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

func (i Identity) IsVoter() bool { return i.Role == RoleVoter }
