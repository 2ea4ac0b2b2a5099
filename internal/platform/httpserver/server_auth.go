package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"campusvote/contexts/identity-access/auth-gate/domain/entities"
	autherrors "campusvote/contexts/identity-access/auth-gate/domain/errors"
	authhttp "campusvote/contexts/identity-access/auth-gate/transport/http"
)

func writeAuthDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, autherrors.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, autherrors.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, autherrors.ErrVoterNotFound),
		errors.Is(err, autherrors.ErrAdminNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, autherrors.ErrInvalidAdminInput):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, autherrors.ErrDuplicateAdmin):
		writeError(w, http.StatusConflict, "duplicate_admin", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireAdmin verifies the bearer token and gates the route to admin
// identities before any data access.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) (entities.Identity, bool) {
	identity, err := s.auth.Auth.Verify(bearerToken(r))
	if err != nil || !identity.IsAdmin() {
		writeError(w, http.StatusUnauthorized, "unauthorized", "admin authorization required")
		return entities.Identity{}, false
	}
	return identity, true
}

// requireVoter verifies the bearer token and gates the route to voter
// identities before any data access.
func (s *Server) requireVoter(w http.ResponseWriter, r *http.Request) (entities.Identity, bool) {
	identity, err := s.auth.Auth.Verify(bearerToken(r))
	if err != nil || !identity.IsVoter() {
		writeError(w, http.StatusUnauthorized, "unauthorized", "voter authorization required")
		return entities.Identity{}, false
	}
	return identity, true
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req authhttp.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.auth.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVoterProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := s.requireVoter(w, r)
	if !ok {
		return
	}
	resp, err := s.auth.Handler.ProfileHandler(r.Context(), identity)
	if err != nil {
		writeAuthDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
