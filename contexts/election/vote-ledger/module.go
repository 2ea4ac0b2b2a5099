package voteledger

import (
	"context"
	"log/slog"

	httpadapter "campusvote/contexts/election/vote-ledger/adapters/http"
	"campusvote/contexts/election/vote-ledger/adapters/memory"
	"campusvote/contexts/election/vote-ledger/application/commands"
	"campusvote/contexts/election/vote-ledger/application/queries"
	"campusvote/contexts/election/vote-ledger/ports"
)

// Module is the vote-ledger composition root exposed to runtime wiring.
type Module struct {
	Handler httpadapter.Handler
	Ledger  commands.LedgerUseCase
	Results queries.ResultsUseCase
	Store   *memory.Store
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Votes       ports.VoteRepository
	Polls       ports.PollReader
	Voters      ports.VoterMarker
	Publisher   ports.EventPublisher
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// NewModule wires the ledger use-cases and transport handler using
// explicit ports.
func NewModule(deps Dependencies) Module {
	ledger := commands.LedgerUseCase{
		Votes:     deps.Votes,
		Polls:     deps.Polls,
		Voters:    deps.Voters,
		Publisher: deps.Publisher,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	results := queries.ResultsUseCase{
		Votes:  deps.Votes,
		Polls:  deps.Polls,
		Clock:  deps.Clock,
		Logger: deps.Logger,
	}

	handler := httpadapter.Handler{
		Ledger:  ledger,
		Results: results,
		Logger:  deps.Logger,
	}

	return Module{
		Handler: handler,
		Ledger:  ledger,
		Results: results,
	}
}

// NewInMemoryModule builds a development/testing module with in-memory
// adapters. Polls and Voters cross module boundaries, so callers supply
// them; tests typically pass the sibling modules' memory stores.
func NewInMemoryModule(polls ports.PollReader, voters ports.VoterMarker, logger *slog.Logger) Module {
	store := memory.NewStore(nil)
	if voters == nil {
		voters = noMarker{}
	}
	module := NewModule(Dependencies{
		Votes:       store,
		Polls:       polls,
		Voters:      voters,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}

type noMarker struct{}

func (noMarker) SetHasVoted(_ context.Context, _ []string, _ bool) error { return nil }
