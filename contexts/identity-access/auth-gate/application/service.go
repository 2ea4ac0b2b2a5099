package application

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"campusvote/contexts/identity-access/auth-gate/domain/entities"
	domainerrors "campusvote/contexts/identity-access/auth-gate/domain/errors"
	"campusvote/contexts/identity-access/auth-gate/ports"

	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service owns admin accounts, login for both roles, and token
// verification.
type Service struct {
	Admins   ports.AdminRepository
	Voters   ports.VoterAccounts
	Secret   []byte
	TokenTTL time.Duration
	Clock    ports.Clock
	IDGen    ports.IDGenerator
	Logger   *slog.Logger
}

// LoginResult carries the signed token plus the authenticated profile.
// Exactly one of Admin/Voter is set, matching Identity.Role.
type LoginResult struct {
	Token    string
	Identity entities.Identity
	Admin    *entities.Admin
	Voter    *ports.VoterAccount
}

// Login authenticates by email. The admin path compares a bcrypt hash;
// the voter path compares the issued credential verbatim. Any mismatch,
// including an unknown email, collapses to ErrInvalidCredentials.
func (s Service) Login(ctx context.Context, email string, secret string, role string) (LoginResult, error) {
	logger := resolveLogger(s.Logger)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || secret == "" {
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}

	switch role {
	case entities.RoleAdmin:
		admin, err := s.Admins.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, domainerrors.ErrAdminNotFound) {
				return LoginResult{}, domainerrors.ErrInvalidCredentials
			}
			return LoginResult{}, err
		}
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(secret)) != nil {
			return LoginResult{}, domainerrors.ErrInvalidCredentials
		}
		identity := entities.Identity{ID: admin.ID, Role: entities.RoleAdmin}
		token, err := s.issueToken(identity)
		if err != nil {
			return LoginResult{}, err
		}
		logger.Info("admin logged in",
			"event", "auth_admin_logged_in",
			"module", "identity-access/auth-gate",
			"layer", "application",
			"admin_id", admin.ID,
		)
		admin.PasswordHash = ""
		return LoginResult{Token: token, Identity: identity, Admin: &admin}, nil

	case entities.RoleVoter:
		voter, err := s.Voters.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, domainerrors.ErrVoterNotFound) {
				return LoginResult{}, domainerrors.ErrInvalidCredentials
			}
			return LoginResult{}, err
		}
		if voter.Password == "" || voter.Password != secret {
			return LoginResult{}, domainerrors.ErrInvalidCredentials
		}
		identity := entities.Identity{ID: voter.ID, Role: entities.RoleVoter}
		token, err := s.issueToken(identity)
		if err != nil {
			return LoginResult{}, err
		}
		logger.Info("voter logged in",
			"event", "auth_voter_logged_in",
			"module", "identity-access/auth-gate",
			"layer", "application",
			"voter_id", voter.ID,
		)
		voter.Password = ""
		return LoginResult{Token: token, Identity: identity, Voter: &voter}, nil

	default:
		return LoginResult{}, domainerrors.ErrInvalidCredentials
	}
}

// Verify parses and validates a bearer token and returns the caller
// identity. Every failure mode collapses to ErrUnauthorized.
func (s Service) Verify(token string) (entities.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.Identity{}, domainerrors.ErrUnauthorized
	}
	return parseToken(s.Secret, token)
}

// CreateAdminCommand is the write-model input for a new admin account.
type CreateAdminCommand struct {
	Email    string
	Name     string
	Password string
}

// CreateAdmin hashes the password and inserts. The storage unique email
// constraint arbitrates duplicates.
func (s Service) CreateAdmin(ctx context.Context, cmd CreateAdminCommand) (entities.Admin, error) {
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	name := strings.TrimSpace(cmd.Name)
	if email == "" || name == "" || cmd.Password == "" {
		return entities.Admin{}, domainerrors.ErrInvalidAdminInput
	}
	if !emailPattern.MatchString(email) {
		return entities.Admin{}, domainerrors.ErrInvalidAdminInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return entities.Admin{}, err
	}
	id, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Admin{}, err
	}
	admin := entities.Admin{
		ID:           id,
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.Admins.Insert(ctx, admin); err != nil {
		return entities.Admin{}, err
	}

	resolveLogger(s.Logger).Info("admin account created",
		"event", "auth_admin_created",
		"module", "identity-access/auth-gate",
		"layer", "application",
		"admin_id", admin.ID,
	)
	return admin, nil
}

// Profile resolves the voter profile behind a verified voter identity.
// Admin identities have no voter profile and are rejected.
func (s Service) Profile(ctx context.Context, identity entities.Identity) (ports.VoterAccount, error) {
	if !identity.IsVoter() {
		return ports.VoterAccount{}, domainerrors.ErrUnauthorized
	}
	voter, err := s.Voters.Get(ctx, identity.ID)
	if err != nil {
		return ports.VoterAccount{}, err
	}
	voter.Password = ""
	return voter, nil
}

func (s Service) issueToken(identity entities.Identity) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return signToken(s.Secret, identity, s.now(), ttl)
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
