package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	pollerrors "campusvote/contexts/election/poll-registry/domain/errors"
	pollhttp "campusvote/contexts/election/poll-registry/transport/http"
	ledgerhttp "campusvote/contexts/election/vote-ledger/transport/http"
)

// adminPollRow joins a catalogue listing row with the ledger's
// per-candidate results, so one request carries everything the admin
// screen renders for a poll.
type adminPollRow struct {
	pollhttp.PollSummaryResponse
	Results []ledgerhttp.CandidateTallyResponse `json:"results"`
}

type adminPollListResponse struct {
	Success bool           `json:"success"`
	Polls   []adminPollRow `json:"polls"`
}

func writePollDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pollerrors.ErrInvalidPollInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, pollerrors.ErrNoEligibleVoters):
		writeError(w, http.StatusUnprocessableEntity, "no_eligible_voters", err.Error())
	case errors.Is(err, pollerrors.ErrPollNotFound),
		errors.Is(err, pollerrors.ErrVoterNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleListPolls(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	listing, err := s.polls.Handler.ListPollsHandler(r.Context())
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	resp := adminPollListResponse{
		Success: true,
		Polls:   make([]adminPollRow, 0, len(listing.Polls)),
	}
	for _, row := range listing.Polls {
		tally, err := s.ledger.Handler.TallyHandler(r.Context(), row.ID)
		if err != nil {
			writeLedgerDomainError(w, err)
			return
		}
		resp.Polls = append(resp.Polls, adminPollRow{
			PollSummaryResponse: row,
			Results:             tally.Results,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePoll(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireAdmin(w, r)
	if !ok {
		return
	}
	var req pollhttp.CreatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.polls.Handler.CreatePollHandler(r.Context(), req, identity.ID)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdatePoll(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req pollhttp.UpdatePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.polls.Handler.UpdatePollHandler(r.Context(), r.PathValue("poll_id"), req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTogglePoll(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req pollhttp.TogglePollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.polls.Handler.TogglePollHandler(r.Context(), r.PathValue("poll_id"), req)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeletePoll(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	if err := s.polls.Handler.DeletePollHandler(r.Context(), r.PathValue("poll_id")); err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Poll deleted successfully"})
}

func (s *Server) handleVoterPolls(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireVoter(w, r)
	if !ok {
		return
	}
	resp, err := s.polls.Handler.VoterPollsHandler(r.Context(), identity.ID)
	if err != nil {
		writePollDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
