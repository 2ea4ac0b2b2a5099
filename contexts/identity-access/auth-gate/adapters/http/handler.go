package httpadapter

import (
	"context"
	"log/slog"

	"campusvote/contexts/identity-access/auth-gate/application"
	"campusvote/contexts/identity-access/auth-gate/domain/entities"
	"campusvote/contexts/identity-access/auth-gate/ports"
	httptransport "campusvote/contexts/identity-access/auth-gate/transport/http"
)

type Handler struct {
	Auth   application.Service
	Logger *slog.Logger
}

func (h Handler) LoginHandler(ctx context.Context, req httptransport.LoginRequest) (httptransport.LoginResponse, error) {
	result, err := h.Auth.Login(ctx, req.Email, req.Password, req.Type)
	if err != nil {
		return httptransport.LoginResponse{}, err
	}
	resp := httptransport.LoginResponse{Success: true, Token: result.Token}
	if result.Admin != nil {
		resp.Admin = &httptransport.AdminProfileResponse{
			ID:    result.Admin.ID,
			Email: result.Admin.Email,
			Name:  result.Admin.Name,
		}
	}
	if result.Voter != nil {
		profile := mapVoterProfile(*result.Voter)
		resp.Voter = &profile
	}
	return resp, nil
}

func (h Handler) ProfileHandler(ctx context.Context, identity entities.Identity) (httptransport.ProfileResponse, error) {
	voter, err := h.Auth.Profile(ctx, identity)
	if err != nil {
		return httptransport.ProfileResponse{}, err
	}
	return httptransport.ProfileResponse{
		Success: true,
		Voter:   mapVoterProfile(voter),
	}, nil
}

func mapVoterProfile(voter ports.VoterAccount) httptransport.VoterProfileResponse {
	return httptransport.VoterProfileResponse{
		ID:         voter.ID,
		RegNo:      voter.RegNo,
		Name:       voter.Name,
		Email:      voter.Email,
		Year:       voter.Year,
		Section:    voter.Section,
		Department: voter.Department,
		HasVoted:   voter.HasVoted,
	}
}
