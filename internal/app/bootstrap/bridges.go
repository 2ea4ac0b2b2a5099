package bootstrap

import (
	"context"
	"errors"

	analyticsports "campusvote/contexts/election/analytics-service/ports"
	"campusvote/contexts/election/eligibility"
	pollentities "campusvote/contexts/election/poll-registry/domain/entities"
	pollerrors "campusvote/contexts/election/poll-registry/domain/errors"
	pollports "campusvote/contexts/election/poll-registry/ports"
	ledgerqueries "campusvote/contexts/election/vote-ledger/application/queries"
	ledgererrors "campusvote/contexts/election/vote-ledger/domain/errors"
	ledgerports "campusvote/contexts/election/vote-ledger/ports"
	registryentities "campusvote/contexts/election/voter-registry/domain/entities"
	registryerrors "campusvote/contexts/election/voter-registry/domain/errors"
	registryports "campusvote/contexts/election/voter-registry/ports"
	autherrors "campusvote/contexts/identity-access/auth-gate/domain/errors"
	authports "campusvote/contexts/identity-access/auth-gate/ports"
)

// The bridges below adapt one module's outbound port onto another
// module's inbound surface. Modules never import each other; every
// cross-module edge is one of these adapters, built here and nowhere
// else.

// registryDirectory exposes the voter registry to the poll catalogue.
type registryDirectory struct {
	voters registryports.VoterRepository
}

func (d registryDirectory) CountEligible(ctx context.Context, filter eligibility.Filter) (int, error) {
	return d.voters.Count(ctx, registryports.VoterFilter{
		Year:       filter.Year,
		Section:    filter.Section,
		Department: filter.Department,
	})
}

func (d registryDirectory) GetPlacement(ctx context.Context, voterID string) (eligibility.Placement, error) {
	voter, err := d.voters.Get(ctx, voterID)
	if err != nil {
		if errors.Is(err, registryerrors.ErrVoterNotFound) {
			return eligibility.Placement{}, pollerrors.ErrVoterNotFound
		}
		return eligibility.Placement{}, err
	}
	return voter.Placement(), nil
}

var _ pollports.VoterDirectory = registryDirectory{}

// ledgerReader exposes ledger counts and cascades to the poll catalogue.
type ledgerReader struct {
	votes ledgerports.VoteRepository
}

func (r ledgerReader) CountByPoll(ctx context.Context, pollID string) (int, error) {
	return r.votes.CountByPoll(ctx, pollID)
}

func (r ledgerReader) HasVoted(ctx context.Context, pollID string, voterID string) (bool, error) {
	return r.votes.HasVoted(ctx, pollID, voterID)
}

func (r ledgerReader) DeleteByPoll(ctx context.Context, pollID string) (int, error) {
	return r.votes.DeleteByPoll(ctx, pollID)
}

var _ pollports.VoteReader = ledgerReader{}

// catalogueReader exposes the poll catalogue to the vote ledger.
type catalogueReader struct {
	polls pollports.PollRepository
}

func (r catalogueReader) GetPoll(ctx context.Context, pollID string) (ledgerports.PollSnapshot, error) {
	poll, err := r.polls.Get(ctx, pollID)
	if err != nil {
		if errors.Is(err, pollerrors.ErrPollNotFound) {
			return ledgerports.PollSnapshot{}, ledgererrors.ErrPollNotFound
		}
		return ledgerports.PollSnapshot{}, err
	}
	return pollSnapshot(poll), nil
}

func (r catalogueReader) ListPolls(ctx context.Context) ([]ledgerports.PollSnapshot, error) {
	polls, err := r.polls.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ledgerports.PollSnapshot, 0, len(polls))
	for _, poll := range polls {
		out = append(out, pollSnapshot(poll))
	}
	return out, nil
}

func pollSnapshot(poll pollentities.Poll) ledgerports.PollSnapshot {
	return ledgerports.PollSnapshot{
		ID:               poll.ID,
		Title:            poll.Title,
		TargetYear:       poll.TargetYear,
		TargetSection:    poll.TargetSection,
		TargetDepartment: poll.TargetDepartment,
		Candidates:       poll.Candidates,
		IsActive:         poll.IsActive,
	}
}

var _ ledgerports.PollReader = catalogueReader{}

// registryMarker lets the ledger flip the denormalized has-voted flag.
type registryMarker struct {
	voters registryports.VoterRepository
}

func (m registryMarker) SetHasVoted(ctx context.Context, voterIDs []string, hasVoted bool) error {
	return m.voters.SetHasVoted(ctx, voterIDs, hasVoted)
}

var _ ledgerports.VoterMarker = registryMarker{}

// ledgerCascader removes a deleted voter's ballots before the voter row
// goes away.
type ledgerCascader struct {
	votes ledgerports.VoteRepository
}

func (c ledgerCascader) DeleteByVoters(ctx context.Context, voterIDs []string) (int, error) {
	return c.votes.DeleteByVoters(ctx, voterIDs)
}

var _ registryports.VoteCascader = ledgerCascader{}

// voterAccounts exposes registry credentials to the auth gate.
type voterAccounts struct {
	voters registryports.VoterRepository
}

func (a voterAccounts) GetByEmail(ctx context.Context, email string) (authports.VoterAccount, error) {
	matches, err := a.voters.List(ctx, registryports.VoterFilter{Email: email})
	if err != nil {
		return authports.VoterAccount{}, err
	}
	if len(matches) == 0 {
		return authports.VoterAccount{}, autherrors.ErrVoterNotFound
	}
	return voterAccount(matches[0]), nil
}

func (a voterAccounts) Get(ctx context.Context, voterID string) (authports.VoterAccount, error) {
	voter, err := a.voters.Get(ctx, voterID)
	if err != nil {
		if errors.Is(err, registryerrors.ErrVoterNotFound) {
			return authports.VoterAccount{}, autherrors.ErrVoterNotFound
		}
		return authports.VoterAccount{}, err
	}
	return voterAccount(voter), nil
}

var _ authports.VoterAccounts = voterAccounts{}

// analyticsSources aggregates the read surfaces analytics derives its
// figures from. VoterRef on vote records is the registration number, so
// detailed exports can join voter identity without leaking internal ids.
type analyticsSources struct {
	voters registryports.VoterRepository
	polls  pollports.PollRepository
	votes  ledgerports.VoteRepository
	ledger ledgerqueries.ResultsUseCase
}

func (s analyticsSources) ListVoters(ctx context.Context) ([]analyticsports.VoterSnapshot, error) {
	voters, err := s.voters.List(ctx, registryports.VoterFilter{})
	if err != nil {
		return nil, err
	}
	out := make([]analyticsports.VoterSnapshot, 0, len(voters))
	for _, voter := range voters {
		out = append(out, analyticsports.VoterSnapshot{
			RegNo:      voter.RegNo,
			Name:       voter.Name,
			Email:      voter.Email,
			Year:       voter.Year,
			Section:    voter.Section,
			Department: voter.Department,
			Password:   voter.Password,
			HasVoted:   voter.HasVoted,
			CreatedAt:  voter.CreatedAt,
		})
	}
	return out, nil
}

func (s analyticsSources) ListPolls(ctx context.Context) ([]analyticsports.PollSnapshot, error) {
	polls, err := s.polls.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]analyticsports.PollSnapshot, 0, len(polls))
	for _, poll := range polls {
		out = append(out, analyticsports.PollSnapshot{
			ID:                  poll.ID,
			Title:               poll.Title,
			TargetYear:          poll.TargetYear,
			TargetSection:       poll.TargetSection,
			TargetDepartment:    poll.TargetDepartment,
			Candidates:          poll.Candidates,
			IsActive:            poll.IsActive,
			EligibleVotersCount: poll.EligibleVotersCount,
		})
	}
	return out, nil
}

func (s analyticsSources) ListVotes(ctx context.Context) ([]analyticsports.VoteRecord, error) {
	votes, err := s.votes.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	voters, err := s.voters.List(ctx, registryports.VoterFilter{})
	if err != nil {
		return nil, err
	}
	regNoByID := make(map[string]string, len(voters))
	for _, voter := range voters {
		regNoByID[voter.ID] = voter.RegNo
	}
	out := make([]analyticsports.VoteRecord, 0, len(votes))
	for _, vote := range votes {
		out = append(out, analyticsports.VoteRecord{
			PollID:    vote.PollID,
			VoterID:   vote.VoterID,
			VoterRef:  regNoByID[vote.VoterID],
			Candidate: vote.Candidate,
			CastAt:    vote.CastAt,
		})
	}
	return out, nil
}

func (s analyticsSources) CountVotes(ctx context.Context) (int, error) {
	return s.votes.CountAll(ctx)
}

func (s analyticsSources) VotingTrend(ctx context.Context, days int) ([]analyticsports.TrendPoint, error) {
	points, err := s.ledger.VotingTrend(ctx, days)
	if err != nil {
		return nil, err
	}
	out := make([]analyticsports.TrendPoint, 0, len(points))
	for _, point := range points {
		out = append(out, analyticsports.TrendPoint{Date: point.Date, Votes: point.Votes})
	}
	return out, nil
}

func (s analyticsSources) MostActivePolls(ctx context.Context, limit int) ([]analyticsports.PollActivity, error) {
	activity, err := s.ledger.MostActivePolls(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]analyticsports.PollActivity, 0, len(activity))
	for _, row := range activity {
		out = append(out, analyticsports.PollActivity{
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

var (
	_ analyticsports.VoterReader     = analyticsSources{}
	_ analyticsports.PollReader      = analyticsSources{}
	_ analyticsports.VoteReader      = analyticsSources{}
	_ analyticsports.LedgerAnalytics = analyticsSources{}
)

func voterAccount(voter registryentities.Voter) authports.VoterAccount {
	return authports.VoterAccount{
		ID:         voter.ID,
		RegNo:      voter.RegNo,
		Name:       voter.Name,
		Email:      voter.Email,
		Year:       voter.Year,
		Section:    voter.Section,
		Department: voter.Department,
		Password:   voter.Password,
		HasVoted:   voter.HasVoted,
	}
}
