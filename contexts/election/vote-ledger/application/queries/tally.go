package queries

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	"campusvote/contexts/election/vote-ledger/domain/entities"
	"campusvote/contexts/election/vote-ledger/ports"
)

// ResultsUseCase serves ledger reads: per-poll tallies, daily trends, and
// poll activity rankings.
type ResultsUseCase struct {
	Votes  ports.VoteRepository
	Polls  ports.PollReader
	Clock  ports.Clock
	Logger *slog.Logger
}

// Tally aggregates a poll's votes per candidate. Every poll candidate
// appears, including those with zero votes; percentages are of all votes
// cast in the poll, one decimal, and 0 when the poll is empty.
func (uc ResultsUseCase) Tally(ctx context.Context, pollID string) ([]entities.CandidateTally, error) {
	poll, err := uc.Polls.GetPoll(ctx, strings.TrimSpace(pollID))
	if err != nil {
		return nil, err
	}
	votes, err := uc.Votes.ListByPoll(ctx, poll.ID)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(poll.Candidates))
	for _, vote := range votes {
		counts[vote.Candidate]++
	}
	total := len(votes)

	out := make([]entities.CandidateTally, 0, len(poll.Candidates))
	for _, candidate := range poll.Candidates {
		row := entities.CandidateTally{Candidate: candidate, Votes: counts[candidate]}
		if total > 0 {
			row.Percentage = math.Round(float64(row.Votes)/float64(total)*1000) / 10
		}
		out = append(out, row)
	}
	return out, nil
}

// VotingTrend counts votes per UTC calendar day over the trailing window
// of the given number of days, oldest day first. Days without votes are
// present with zero so charts keep a continuous axis.
func (uc ResultsUseCase) VotingTrend(ctx context.Context, days int) ([]entities.TrendPoint, error) {
	if days <= 0 {
		days = 30
	}
	now := uc.now()
	since := now.AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)
	perDay, err := uc.Votes.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}

	out := make([]entities.TrendPoint, 0, days)
	for i := 0; i < days; i++ {
		date := since.AddDate(0, 0, i).Format("2006-01-02")
		out = append(out, entities.TrendPoint{Date: date, Votes: perDay[date]})
	}
	return out, nil
}

// MostActivePolls ranks polls by descending ledger volume and returns the
// top limit entries annotated with title and target labels.
func (uc ResultsUseCase) MostActivePolls(ctx context.Context, limit int) ([]entities.PollActivity, error) {
	if limit <= 0 {
		limit = 10
	}
	perPoll, err := uc.Votes.CountPerPoll(ctx)
	if err != nil {
		return nil, err
	}
	polls, err := uc.Polls.ListPolls(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]entities.PollActivity, 0, len(polls))
	for _, poll := range polls {
		votes := perPoll[poll.ID]
		if votes == 0 {
			continue
		}
		out = append(out, entities.PollActivity{
			PollID:           poll.ID,
			Title:            poll.Title,
			TargetYear:       poll.TargetYear,
			TargetSection:    poll.TargetSection,
			TargetDepartment: poll.TargetDepartment,
			Votes:            votes,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Votes != out[j].Votes {
			return out[i].Votes > out[j].Votes
		}
		return out[i].PollID < out[j].PollID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (uc ResultsUseCase) ListByPoll(ctx context.Context, pollID string) ([]entities.Vote, error) {
	return uc.Votes.ListByPoll(ctx, strings.TrimSpace(pollID))
}

func (uc ResultsUseCase) ListByVoter(ctx context.Context, voterID string) ([]entities.Vote, error) {
	return uc.Votes.ListByVoter(ctx, strings.TrimSpace(voterID))
}

func (uc ResultsUseCase) HasVoted(ctx context.Context, pollID string, voterID string) (bool, error) {
	return uc.Votes.HasVoted(ctx, strings.TrimSpace(pollID), strings.TrimSpace(voterID))
}

func (uc ResultsUseCase) CountByPoll(ctx context.Context, pollID string) (int, error) {
	return uc.Votes.CountByPoll(ctx, strings.TrimSpace(pollID))
}

func (uc ResultsUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
