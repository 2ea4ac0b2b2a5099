package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"

	analytics "campusvote/contexts/election/analytics-service"
	pollregistry "campusvote/contexts/election/poll-registry"
	voteledger "campusvote/contexts/election/vote-ledger"
	voterregistry "campusvote/contexts/election/voter-registry"
	authgate "campusvote/contexts/identity-access/auth-gate"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "campusvote/internal/platform/httpserver/docs"
)

type Server struct {
	mux       *http.ServeMux
	logger    *slog.Logger
	addr      string
	auth      authgate.Module
	voters    voterregistry.Module
	polls     pollregistry.Module
	ledger    voteledger.Module
	analytics analytics.Module
}

func New(
	auth authgate.Module,
	voters voterregistry.Module,
	polls pollregistry.Module,
	ledger voteledger.Module,
	analyticsModule analytics.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:       http.NewServeMux(),
		logger:    logger,
		addr:      addr,
		auth:      auth,
		voters:    voters,
		polls:     polls,
		ledger:    ledger,
		analytics: analyticsModule,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

// Handler exposes the route table for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	s.mux.HandleFunc("GET /api/voter/profile", s.handleVoterProfile)
	s.mux.HandleFunc("GET /api/voter/polls", s.handleVoterPolls)
	s.mux.HandleFunc("POST /api/voter/vote", s.handleCastVote)

	s.mux.HandleFunc("GET /api/admin/voters", s.handleListVoters)
	s.mux.HandleFunc("POST /api/admin/voters", s.handleCreateVoter)
	s.mux.HandleFunc("PUT /api/admin/voters", s.handleUpdateVoter)
	s.mux.HandleFunc("DELETE /api/admin/voters", s.handleDeleteVoterByQuery)
	s.mux.HandleFunc("DELETE /api/admin/voters/{voter_id}", s.handleDeleteVoter)
	s.mux.HandleFunc("DELETE /api/admin/voters/groups/{group_id}", s.handleDeleteVoterGroup)
	s.mux.HandleFunc("POST /api/admin/voters/bulk-actions", s.handleVoterBulkAction)
	s.mux.HandleFunc("POST /api/admin/upload-voters", s.handleUploadVoters)
	s.mux.HandleFunc("POST /api/admin/send-credentials", s.handleSendCredentials)

	s.mux.HandleFunc("GET /api/admin/polls", s.handleListPolls)
	s.mux.HandleFunc("POST /api/admin/polls", s.handleCreatePoll)
	s.mux.HandleFunc("PUT /api/admin/polls/{poll_id}", s.handleUpdatePoll)
	s.mux.HandleFunc("PUT /api/admin/polls/{poll_id}/toggle", s.handleTogglePoll)
	s.mux.HandleFunc("DELETE /api/admin/polls/{poll_id}", s.handleDeletePoll)
	s.mux.HandleFunc("GET /api/admin/polls/{poll_id}/results", s.handlePollResults)
	s.mux.HandleFunc("GET /api/admin/analytics/voting-trends", s.handleVotingTrend)
	s.mux.HandleFunc("GET /api/admin/analytics/most-active-polls", s.handleMostActivePolls)

	s.mux.HandleFunc("GET /api/admin/analytics", s.handleAnalyticsDashboard)
	s.mux.HandleFunc("GET /api/admin/export", s.handleExport)
}

// errorBody is the shared failure payload: every route answers
// {"success": false, "code": ..., "message": ...} on error, matching the
// original API contract.
type errorBody struct {
	Success    bool     `json:"success"`
	Code       string   `json:"code"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors,omitempty"`
	ErrorCount int      `json:"errorCount,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
