package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"campusvote/contexts/election/voter-registry/application/commands"
	"campusvote/contexts/election/voter-registry/application/queries"
	"campusvote/contexts/election/voter-registry/domain/entities"
	"campusvote/contexts/election/voter-registry/domain/valueobjects"
	"campusvote/contexts/election/voter-registry/ports"
	httptransport "campusvote/contexts/election/voter-registry/transport/http"
)

type Handler struct {
	Voters   commands.VoterUseCase
	Registry queries.RegistryUseCase
	Logger   *slog.Logger
}

func (h Handler) CreateVoterHandler(ctx context.Context, req httptransport.CreateVoterRequest) (httptransport.VoterResponse, error) {
	voter, err := h.Voters.CreateVoter(ctx, commands.CreateVoterCommand{
		RegNo:      req.RegNo,
		Name:       req.Name,
		Email:      req.Email,
		Year:       req.Year,
		Section:    req.Section,
		Department: req.Department,
		Password:   req.Password,
	})
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return mapVoter(voter), nil
}

func (h Handler) UpdateVoterHandler(ctx context.Context, req httptransport.UpdateVoterRequest) (httptransport.VoterResponse, error) {
	voter, err := h.Voters.UpdateVoter(ctx, commands.UpdateVoterCommand{
		RegNo:      req.RegNo,
		Name:       req.Name,
		Email:      req.Email,
		Year:       req.Year,
		Section:    req.Section,
		Department: req.Department,
		HasVoted:   req.HasVoted,
	})
	if err != nil {
		return httptransport.VoterResponse{}, err
	}
	return mapVoter(voter), nil
}

func (h Handler) DeleteVoterHandler(ctx context.Context, voterID string) error {
	return h.Voters.DeleteVoter(ctx, voterID)
}

func (h Handler) ListVotersHandler(ctx context.Context, filter ports.VoterFilter) (httptransport.VoterListResponse, error) {
	voters, err := h.Registry.ListVoters(ctx, filter)
	if err != nil {
		return httptransport.VoterListResponse{}, err
	}
	return httptransport.VoterListResponse{Success: true, Voters: mapVoters(voters)}, nil
}

func (h Handler) GroupVotersHandler(
	ctx context.Context,
	filter ports.VoterFilter,
	groupBy string,
) (httptransport.GroupedVotersResponse, error) {
	groups, err := h.Registry.GroupVoters(ctx, filter, queries.GroupBy(groupBy))
	if err != nil {
		return httptransport.GroupedVotersResponse{}, err
	}
	resp := httptransport.GroupedVotersResponse{Success: true, Groups: make([]httptransport.VoterGroupResponse, 0, len(groups))}
	for _, group := range groups {
		resp.Groups = append(resp.Groups, httptransport.VoterGroupResponse{
			Year:       group.Year,
			Section:    group.Section,
			Department: group.Department,
			Voters:     mapVoters(group.Voters),
			TotalCount: group.TotalCount,
			VotedCount: group.VotedCount,
			Sections:   group.Sections,
		})
	}
	return resp, nil
}

func (h Handler) BulkActionHandler(ctx context.Context, req httptransport.BulkActionRequest) (httptransport.BulkActionResponse, error) {
	cmd := commands.BulkActionCommand{
		Action:   commands.BulkAction(req.Action),
		VoterIDs: req.VoterIDs,
	}
	if req.Filters != nil {
		cmd.Filter = ports.VoterFilter{
			Year:       req.Filters.Year,
			Section:    req.Filters.Section,
			Department: req.Filters.Department,
		}
	}
	result, err := h.Voters.BulkAction(ctx, cmd)
	if err != nil {
		return httptransport.BulkActionResponse{}, err
	}
	return httptransport.BulkActionResponse{
		Success:   true,
		Count:     result.Count,
		SentCount: result.SentCount,
		Message:   result.Message,
	}, nil
}

func (h Handler) UploadVotersHandler(ctx context.Context, rows []commands.RosterRow) (httptransport.UploadResponse, error) {
	result, err := h.Voters.BulkCreateVoters(ctx, rows)
	if err != nil {
		return httptransport.UploadResponse{}, err
	}
	return httptransport.UploadResponse{
		Success:         true,
		Count:           result.Count,
		SheetsProcessed: result.SheetsProcessed,
	}, nil
}

func (h Handler) DeleteGroupHandler(ctx context.Context, groupID string) (httptransport.DeleteGroupResponse, error) {
	key, err := valueobjects.ParseGroupKey(groupID)
	if err != nil {
		return httptransport.DeleteGroupResponse{}, err
	}
	result, err := h.Voters.DeleteGroup(ctx, key)
	if err != nil {
		return httptransport.DeleteGroupResponse{}, err
	}
	return httptransport.DeleteGroupResponse{
		Success:      true,
		DeletedCount: result.DeletedCount,
		Message:      fmt.Sprintf("Successfully deleted %d voters", result.DeletedCount),
	}, nil
}

func mapVoter(voter entities.Voter) httptransport.VoterResponse {
	resp := httptransport.VoterResponse{
		ID:         voter.ID,
		RegNo:      voter.RegNo,
		Name:       voter.Name,
		Email:      voter.Email,
		Year:       voter.Year,
		Section:    voter.Section,
		Department: voter.Department,
		HasVoted:   voter.HasVoted,
	}
	if !voter.CreatedAt.IsZero() {
		resp.CreatedAt = voter.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func mapVoters(voters []entities.Voter) []httptransport.VoterResponse {
	out := make([]httptransport.VoterResponse, 0, len(voters))
	for _, voter := range voters {
		out = append(out, mapVoter(voter))
	}
	return out
}
