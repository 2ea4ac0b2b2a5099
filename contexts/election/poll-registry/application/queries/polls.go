package queries

import (
	"context"
	"log/slog"
	"strings"

	"campusvote/contexts/election/eligibility"
	application "campusvote/contexts/election/poll-registry/application"
	"campusvote/contexts/election/poll-registry/domain/entities"
	domainerrors "campusvote/contexts/election/poll-registry/domain/errors"
	"campusvote/contexts/election/poll-registry/ports"
)

// CatalogueUseCase serves poll reads: the admin listing with live counts
// and the voter-facing feed filtered by eligibility.
type CatalogueUseCase struct {
	Polls  ports.PollRepository
	Voters ports.VoterDirectory
	Votes  ports.VoteReader
	Logger *slog.Logger
}

func (uc CatalogueUseCase) GetPoll(ctx context.Context, pollID string) (entities.Poll, error) {
	return uc.Polls.Get(ctx, strings.TrimSpace(pollID))
}

// ListPolls returns every poll annotated with its live vote count and an
// eligible count recomputed against the current roster. The creation
// snapshot is reported separately so drift stays visible.
func (uc CatalogueUseCase) ListPolls(ctx context.Context) ([]entities.PollSummary, error) {
	logger := application.ResolveLogger(uc.Logger)
	polls, err := uc.Polls.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entities.PollSummary, 0, len(polls))
	for _, poll := range polls {
		votes, err := uc.Votes.CountByPoll(ctx, poll.ID)
		if err != nil {
			return nil, err
		}
		eligible, err := uc.Voters.CountEligible(ctx, eligibility.FilterFor(poll.Target()))
		if err != nil {
			return nil, err
		}
		summary := entities.PollSummary{
			Poll:                 poll,
			TotalVotes:           votes,
			CreatedEligibleCount: poll.EligibleVotersCount,
		}
		summary.EligibleVotersCount = eligible
		out = append(out, summary)
	}
	logger.Debug("polls listed",
		"event", "polls_listed",
		"module", "election/poll-registry",
		"layer", "application",
		"count", len(out),
	)
	return out, nil
}

// PollsForVoter returns every poll, active or not, whose target matches
// the voter's placement, each annotated with whether the voter already
// cast in it.
func (uc CatalogueUseCase) PollsForVoter(ctx context.Context, voterID string) ([]entities.VoterPoll, error) {
	voterID = strings.TrimSpace(voterID)
	if voterID == "" {
		return nil, domainerrors.ErrVoterNotFound
	}
	placement, err := uc.Voters.GetPlacement(ctx, voterID)
	if err != nil {
		return nil, err
	}
	polls, err := uc.Polls.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entities.VoterPoll, 0, len(polls))
	for _, poll := range polls {
		if !eligibility.IsEligible(placement, poll.Target()) {
			continue
		}
		voted, err := uc.Votes.HasVoted(ctx, poll.ID, voterID)
		if err != nil {
			return nil, err
		}
		out = append(out, entities.VoterPoll{Poll: poll, HasVoted: voted})
	}
	return out, nil
}
