package analytics

import (
	"log/slog"

	httpadapter "campusvote/contexts/election/analytics-service/adapters/http"
	"campusvote/contexts/election/analytics-service/application"
	"campusvote/contexts/election/analytics-service/ports"
)

// Module is the analytics composition root exposed to runtime wiring.
// The module holds no state of its own; every figure is derived from
// the sibling election modules through read ports.
type Module struct {
	Handler   httpadapter.Handler
	Analytics application.Service
}

// Dependencies captures all runtime ports/config required by NewModule.
type Dependencies struct {
	Voters ports.VoterReader
	Polls  ports.PollReader
	Votes  ports.VoteReader
	Ledger ports.LedgerAnalytics
	Logger *slog.Logger
}

// NewModule wires the analytics service and transport handler using
// explicit ports.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Voters: deps.Voters,
		Polls:  deps.Polls,
		Votes:  deps.Votes,
		Ledger: deps.Ledger,
		Logger: deps.Logger,
	}
	handler := httpadapter.Handler{
		Analytics: service,
		Logger:    deps.Logger,
	}
	return Module{
		Handler:   handler,
		Analytics: service,
	}
}
