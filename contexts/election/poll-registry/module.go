package pollregistry

import (
	"context"
	"log/slog"

	"campusvote/contexts/election/eligibility"
	httpadapter "campusvote/contexts/election/poll-registry/adapters/http"
	"campusvote/contexts/election/poll-registry/adapters/memory"
	"campusvote/contexts/election/poll-registry/application/commands"
	"campusvote/contexts/election/poll-registry/application/queries"
	"campusvote/contexts/election/poll-registry/ports"
)

// Module is the poll-registry composition root exposed to runtime wiring.
type Module struct {
	Handler   httpadapter.Handler
	Polls     commands.PollUseCase
	Catalogue queries.CatalogueUseCase
	Store     *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Polls       ports.PollRepository
	Voters      ports.VoterDirectory
	Votes       ports.VoteReader
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// NewModule wires the catalogue use-cases and transport handler using
// explicit ports.
func NewModule(deps Dependencies) Module {
	polls := commands.PollUseCase{
		Polls:  deps.Polls,
		Voters: deps.Voters,
		Votes:  deps.Votes,
		Clock:  deps.Clock,
		IDGen:  deps.IDGenerator,
		Logger: deps.Logger,
	}
	catalogue := queries.CatalogueUseCase{
		Polls:  deps.Polls,
		Voters: deps.Voters,
		Votes:  deps.Votes,
		Logger: deps.Logger,
	}

	handler := httpadapter.Handler{
		Polls:     polls,
		Catalogue: catalogue,
		Logger:    deps.Logger,
	}

	return Module{
		Handler:   handler,
		Polls:     polls,
		Catalogue: catalogue,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. Voters and Votes cross module boundaries, so callers supply
// them; tests typically pass the sibling modules' memory stores.
func NewInMemoryModule(voters ports.VoterDirectory, votes ports.VoteReader, logger *slog.Logger) Module {
	store := memory.NewStore(nil)
	if voters == nil {
		voters = emptyDirectory{}
	}
	if votes == nil {
		votes = emptyLedger{}
	}
	module := NewModule(Dependencies{
		Polls:       store,
		Voters:      voters,
		Votes:       votes,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}

type emptyDirectory struct{}

func (emptyDirectory) CountEligible(_ context.Context, _ eligibility.Filter) (int, error) {
	return 0, nil
}

func (emptyDirectory) GetPlacement(_ context.Context, _ string) (eligibility.Placement, error) {
	return eligibility.Placement{}, nil
}

type emptyLedger struct{}

func (emptyLedger) CountByPoll(_ context.Context, _ string) (int, error) { return 0, nil }

func (emptyLedger) HasVoted(_ context.Context, _ string, _ string) (bool, error) {
	return false, nil
}

func (emptyLedger) DeleteByPoll(_ context.Context, _ string) (int, error) { return 0, nil }
