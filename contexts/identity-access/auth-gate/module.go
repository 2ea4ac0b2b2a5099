package authgate

import (
	"context"
	"log/slog"
	"time"

	httpadapter "campusvote/contexts/identity-access/auth-gate/adapters/http"
	"campusvote/contexts/identity-access/auth-gate/adapters/memory"
	"campusvote/contexts/identity-access/auth-gate/application"
	domainerrors "campusvote/contexts/identity-access/auth-gate/domain/errors"
	"campusvote/contexts/identity-access/auth-gate/ports"
)

// Module is the auth-gate composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Auth    application.Service
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Admins      ports.AdminRepository
	Voters      ports.VoterAccounts
	Secret      []byte
	TokenTTL    time.Duration
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// NewModule wires the auth service and transport handler using explicit
// ports.
func NewModule(deps Dependencies) Module {
	auth := application.Service{
		Admins:   deps.Admins,
		Voters:   deps.Voters,
		Secret:   deps.Secret,
		TokenTTL: deps.TokenTTL,
		Clock:    deps.Clock,
		IDGen:    deps.IDGenerator,
		Logger:   deps.Logger,
	}
	handler := httpadapter.Handler{
		Auth:   auth,
		Logger: deps.Logger,
	}
	return Module{
		Handler: handler,
		Auth:    auth,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. Voter accounts cross a module boundary, so callers supply
// them; tests typically pass the registry module's memory store through
// a bridge.
func NewInMemoryModule(voters ports.VoterAccounts, secret []byte, logger *slog.Logger) Module {
	store := memory.NewStore(nil)
	if voters == nil {
		voters = noVoters{}
	}
	module := NewModule(Dependencies{
		Admins:      store,
		Voters:      voters,
		Secret:      secret,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}

type noVoters struct{}

func (noVoters) GetByEmail(_ context.Context, _ string) (ports.VoterAccount, error) {
	return ports.VoterAccount{}, domainerrors.ErrVoterNotFound
}

func (noVoters) Get(_ context.Context, _ string) (ports.VoterAccount, error) {
	return ports.VoterAccount{}, domainerrors.ErrVoterNotFound
}
