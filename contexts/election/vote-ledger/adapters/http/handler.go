package httpadapter

import (
	"context"
	"log/slog"

	"campusvote/contexts/election/vote-ledger/application/commands"
	"campusvote/contexts/election/vote-ledger/application/queries"
	httptransport "campusvote/contexts/election/vote-ledger/transport/http"
)

type Handler struct {
	Ledger  commands.LedgerUseCase
	Results queries.ResultsUseCase
	Logger  *slog.Logger
}

// CastVoteHandler godoc
// @Summary Cast a vote
// @Description Records one ballot for the authenticated voter. The (poll, voter) pair is unique; a second cast fails.
// @Tags vote-ledger
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body httptransport.CastVoteRequest true "Ballot"
// @Success 201 {object} httptransport.CastVoteResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 401 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 422 {object} httptransport.ErrorResponse
// @Router /api/voter/vote [post]
func (h Handler) CastVoteHandler(
	ctx context.Context,
	voterID string,
	req httptransport.CastVoteRequest,
) (httptransport.CastVoteResponse, error) {
	vote, err := h.Ledger.CastVote(ctx, commands.CastVoteCommand{
		PollID:    req.PollID,
		VoterID:   voterID,
		Candidate: req.Candidate,
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{
		Success: true,
		VoteID:  vote.ID,
		Message: "Vote cast successfully",
	}, nil
}

func (h Handler) TallyHandler(ctx context.Context, pollID string) (httptransport.TallyResponse, error) {
	rows, err := h.Results.Tally(ctx, pollID)
	if err != nil {
		return httptransport.TallyResponse{}, err
	}
	resp := httptransport.TallyResponse{
		Success: true,
		PollID:  pollID,
		Results: make([]httptransport.CandidateTallyResponse, 0, len(rows)),
	}
	for _, row := range rows {
		resp.TotalVotes += row.Votes
		resp.Results = append(resp.Results, httptransport.CandidateTallyResponse{
			Candidate:  row.Candidate,
			Votes:      row.Votes,
			Percentage: row.Percentage,
		})
	}
	return resp, nil
}

func (h Handler) VotingTrendHandler(ctx context.Context, days int) ([]httptransport.TrendPointResponse, error) {
	points, err := h.Results.VotingTrend(ctx, days)
	if err != nil {
		return nil, err
	}
	out := make([]httptransport.TrendPointResponse, 0, len(points))
	for _, point := range points {
		out = append(out, httptransport.TrendPointResponse{Date: point.Date, Votes: point.Votes})
	}
	return out, nil
}

func (h Handler) MostActivePollsHandler(ctx context.Context, limit int) ([]httptransport.PollActivityResponse, error) {
	activity, err := h.Results.MostActivePolls(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]httptransport.PollActivityResponse, 0, len(activity))
	for _, row := range activity {
		out = append(out, httptransport.PollActivityResponse{
			PollID:           row.PollID,
			Title:            row.Title,
			TargetYear:       row.TargetYear,
			TargetSection:    row.TargetSection,
			TargetDepartment: row.TargetDepartment,
			Votes:            row.Votes,
		})
	}
	return out, nil
}
