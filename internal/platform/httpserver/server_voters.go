package httpserver

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"campusvote/contexts/election/voter-registry/application/roster"
	registryerrors "campusvote/contexts/election/voter-registry/domain/errors"
	registryhttp "campusvote/contexts/election/voter-registry/transport/http"
	"campusvote/contexts/election/voter-registry/ports"
)

const maxRosterUploadBytes = 10 << 20

func writeRegistryDomainError(w http.ResponseWriter, err error) {
	var validation *registryerrors.ValidationReport
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{
			Code:       "validation_failed",
			Message:    validation.Error(),
			Errors:     validation.Samples,
			ErrorCount: validation.Total,
		})
		return
	}

	switch {
	case errors.Is(err, registryerrors.ErrInvalidVoterInput),
		errors.Is(err, registryerrors.ErrInvalidGroupKey),
		errors.Is(err, registryerrors.ErrInvalidAction),
		errors.Is(err, registryerrors.ErrEmptySelection):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, registryerrors.ErrDuplicateVoter):
		writeError(w, http.StatusConflict, "duplicate_voter", err.Error())
	case errors.Is(err, registryerrors.ErrVoterNotFound),
		errors.Is(err, registryerrors.ErrGroupNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func voterFilterFromQuery(r *http.Request) ports.VoterFilter {
	query := r.URL.Query()
	return ports.VoterFilter{
		Year:       query.Get("year"),
		Section:    query.Get("section"),
		Department: query.Get("department"),
		RegNo:      query.Get("regNo"),
		Email:      query.Get("email"),
	}
}

func (s *Server) handleListVoters(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	filter := voterFilterFromQuery(r)
	if groupBy := r.URL.Query().Get("groupBy"); groupBy != "" {
		resp, err := s.voters.Handler.GroupVotersHandler(r.Context(), filter, groupBy)
		if err != nil {
			writeRegistryDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}
	resp, err := s.voters.Handler.ListVotersHandler(r.Context(), filter)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateVoter(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req registryhttp.CreateVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.voters.Handler.CreateVoterHandler(r.Context(), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateVoter(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req registryhttp.UpdateVoterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.voters.Handler.UpdateVoterHandler(r.Context(), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteVoter(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	s.deleteVoter(w, r, r.PathValue("voter_id"))
}

func (s *Server) handleDeleteVoterByQuery(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	s.deleteVoter(w, r, r.URL.Query().Get("id"))
}

func (s *Server) deleteVoter(w http.ResponseWriter, r *http.Request, voterID string) {
	if strings.TrimSpace(voterID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "voter id is required")
		return
	}
	if err := s.voters.Handler.DeleteVoterHandler(r.Context(), voterID); err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Voter deleted successfully"})
}

func (s *Server) handleDeleteVoterGroup(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	resp, err := s.voters.Handler.DeleteGroupHandler(r.Context(), r.PathValue("group_id"))
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVoterBulkAction(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req registryhttp.BulkActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.voters.Handler.BulkActionHandler(r.Context(), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSendCredentials is a dedicated alias for the send-credentials
// bulk action, kept for compatibility with the original route table.
func (s *Server) handleSendCredentials(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	var req registryhttp.BulkActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	req.Action = "send-credentials"
	resp, err := s.voters.Handler.BulkActionHandler(r.Context(), req)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUploadVoters(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	if err := r.ParseMultipartForm(maxRosterUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_upload", "multipart form with a file field is required")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_upload", "roster file is required")
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_csv", "roster file must be valid CSV")
		return
	}
	if len(records) < 2 {
		writeError(w, http.StatusBadRequest, "invalid_csv", "roster file needs a header row and at least one data row")
		return
	}

	rows := roster.MapSheet(records[0], records[1:], header.Filename)
	resp, err := s.voters.Handler.UploadVotersHandler(r.Context(), rows)
	if err != nil {
		writeRegistryDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}
