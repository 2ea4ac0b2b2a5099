package voterregistry

import (
	"context"
	"log/slog"

	httpadapter "campusvote/contexts/election/voter-registry/adapters/http"
	"campusvote/contexts/election/voter-registry/adapters/memory"
	"campusvote/contexts/election/voter-registry/application/commands"
	"campusvote/contexts/election/voter-registry/application/queries"
	"campusvote/contexts/election/voter-registry/ports"
)

// Module is the voter-registry composition root exposed to runtime wiring.
type Module struct {
	Handler  httpadapter.Handler
	Voters   commands.VoterUseCase
	Registry queries.RegistryUseCase
	Store    *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Voters      ports.VoterRepository
	Votes       ports.VoteCascader
	Mailer      ports.CredentialMailer
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	LoginURL    string
	Logger      *slog.Logger
}

// NewModule wires the registry use-cases and transport handler using
// explicit ports.
func NewModule(deps Dependencies) Module {
	voters := commands.VoterUseCase{
		Voters:   deps.Voters,
		Votes:    deps.Votes,
		Mailer:   deps.Mailer,
		Clock:    deps.Clock,
		IDGen:    deps.IDGenerator,
		LoginURL: deps.LoginURL,
		Logger:   deps.Logger,
	}
	registry := queries.RegistryUseCase{
		Voters: deps.Voters,
	}

	handler := httpadapter.Handler{
		Voters:   voters,
		Registry: registry,
		Logger:   deps.Logger,
	}

	return Module{
		Handler:  handler,
		Voters:   voters,
		Registry: registry,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory adapters.
func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore(nil)
	module := NewModule(Dependencies{
		Voters:      store,
		Votes:       noCascade{},
		Clock:       store,
		IDGenerator: store,
		LoginURL:    "http://localhost:3000/login",
		Logger:      logger,
	})
	module.Store = store
	return module
}

// noCascade satisfies the vote cascade port when no ledger is wired, as in
// tests that exercise the registry alone.
type noCascade struct{}

func (noCascade) DeleteByVoters(_ context.Context, _ []string) (int, error) { return 0, nil }
