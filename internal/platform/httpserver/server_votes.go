package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	ledgererrors "campusvote/contexts/election/vote-ledger/domain/errors"
	ledgerhttp "campusvote/contexts/election/vote-ledger/transport/http"
)

func writeLedgerDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledgererrors.ErrInvalidVoteInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, ledgererrors.ErrPollNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ledgererrors.ErrPollClosed):
		writeError(w, http.StatusUnprocessableEntity, "poll_closed", err.Error())
	case errors.Is(err, ledgererrors.ErrInvalidCandidate):
		writeError(w, http.StatusUnprocessableEntity, "invalid_candidate", err.Error())
	case errors.Is(err, ledgererrors.ErrAlreadyVoted):
		writeError(w, http.StatusConflict, "already_voted", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireVoter(w, r)
	if !ok {
		return
	}
	var req ledgerhttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.ledger.Handler.CastVoteHandler(r.Context(), identity.ID, req)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handlePollResults(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	resp, err := s.ledger.Handler.TallyHandler(r.Context(), r.PathValue("poll_id"))
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVotingTrend(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	points, err := s.ledger.Handler.VotingTrendHandler(r.Context(), days)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "trends": points})
}

func (s *Server) handleMostActivePolls(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.ledger.Handler.MostActivePollsHandler(r.Context(), limit)
	if err != nil {
		writeLedgerDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "polls": rows})
}
