package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"campusvote/contexts/election/poll-registry/application/commands"
	"campusvote/contexts/election/poll-registry/application/queries"
	"campusvote/contexts/election/poll-registry/domain/entities"
	httptransport "campusvote/contexts/election/poll-registry/transport/http"
)

type Handler struct {
	Polls     commands.PollUseCase
	Catalogue queries.CatalogueUseCase
	Logger    *slog.Logger
}

func (h Handler) CreatePollHandler(
	ctx context.Context,
	req httptransport.CreatePollRequest,
	createdBy string,
) (httptransport.SinglePollResponse, error) {
	poll, err := h.Polls.CreatePoll(ctx, commands.CreatePollCommand{
		Title:            req.Title,
		Description:      req.Description,
		TargetYear:       req.TargetYear,
		TargetSection:    req.TargetSection,
		TargetDepartment: req.TargetDepartment,
		Candidates:       req.Candidates,
		CreatedBy:        createdBy,
	})
	if err != nil {
		return httptransport.SinglePollResponse{}, err
	}
	return httptransport.SinglePollResponse{Success: true, Poll: mapPoll(poll)}, nil
}

func (h Handler) UpdatePollHandler(
	ctx context.Context,
	pollID string,
	req httptransport.UpdatePollRequest,
) (httptransport.SinglePollResponse, error) {
	poll, err := h.Polls.UpdatePoll(ctx, commands.UpdatePollCommand{
		PollID:           pollID,
		Title:            req.Title,
		Description:      req.Description,
		TargetYear:       req.TargetYear,
		TargetSection:    req.TargetSection,
		TargetDepartment: req.TargetDepartment,
		Candidates:       req.Candidates,
	})
	if err != nil {
		return httptransport.SinglePollResponse{}, err
	}
	return httptransport.SinglePollResponse{Success: true, Poll: mapPoll(poll)}, nil
}

func (h Handler) TogglePollHandler(
	ctx context.Context,
	pollID string,
	req httptransport.TogglePollRequest,
) (httptransport.SinglePollResponse, error) {
	poll, err := h.Polls.TogglePoll(ctx, pollID, req.IsActive)
	if err != nil {
		return httptransport.SinglePollResponse{}, err
	}
	return httptransport.SinglePollResponse{Success: true, Poll: mapPoll(poll)}, nil
}

func (h Handler) DeletePollHandler(ctx context.Context, pollID string) error {
	return h.Polls.DeletePoll(ctx, pollID)
}

func (h Handler) ListPollsHandler(ctx context.Context) (httptransport.PollListResponse, error) {
	summaries, err := h.Catalogue.ListPolls(ctx)
	if err != nil {
		return httptransport.PollListResponse{}, err
	}
	resp := httptransport.PollListResponse{
		Success: true,
		Polls:   make([]httptransport.PollSummaryResponse, 0, len(summaries)),
	}
	for _, summary := range summaries {
		resp.Polls = append(resp.Polls, httptransport.PollSummaryResponse{
			PollResponse:         mapPoll(summary.Poll),
			TotalVotes:           summary.TotalVotes,
			CreatedEligibleCount: summary.CreatedEligibleCount,
		})
	}
	return resp, nil
}

func (h Handler) VoterPollsHandler(ctx context.Context, voterID string) (httptransport.VoterPollListResponse, error) {
	polls, err := h.Catalogue.PollsForVoter(ctx, voterID)
	if err != nil {
		return httptransport.VoterPollListResponse{}, err
	}
	resp := httptransport.VoterPollListResponse{
		Success: true,
		Polls:   make([]httptransport.VoterPollResponse, 0, len(polls)),
	}
	for _, poll := range polls {
		resp.Polls = append(resp.Polls, httptransport.VoterPollResponse{
			PollResponse: mapPoll(poll.Poll),
			HasVoted:     poll.HasVoted,
		})
	}
	return resp, nil
}

func mapPoll(poll entities.Poll) httptransport.PollResponse {
	resp := httptransport.PollResponse{
		ID:                  poll.ID,
		Title:               poll.Title,
		Description:         poll.Description,
		TargetYear:          poll.TargetYear,
		TargetSection:       poll.TargetSection,
		TargetDepartment:    poll.TargetDepartment,
		Candidates:          poll.Candidates,
		IsActive:            poll.IsActive,
		EligibleVotersCount: poll.EligibleVotersCount,
		CreatedBy:           poll.CreatedBy,
	}
	if !poll.CreatedAt.IsZero() {
		resp.CreatedAt = poll.CreatedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
