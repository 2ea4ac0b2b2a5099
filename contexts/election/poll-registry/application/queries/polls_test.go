package queries

import (
	"context"
	"testing"
	"time"

	"campusvote/contexts/election/eligibility"
	"campusvote/contexts/election/poll-registry/adapters/memory"
	"campusvote/contexts/election/poll-registry/domain/entities"
	domainerrors "campusvote/contexts/election/poll-registry/domain/errors"
)

type fakeDirectory struct {
	counts     map[string]int
	placements map[string]eligibility.Placement
}

func (d fakeDirectory) CountEligible(_ context.Context, filter eligibility.Filter) (int, error) {
	key := filter.Year + "/" + filter.Section + "/" + filter.Department
	return d.counts[key], nil
}

func (d fakeDirectory) GetPlacement(_ context.Context, voterID string) (eligibility.Placement, error) {
	placement, ok := d.placements[voterID]
	if !ok {
		return eligibility.Placement{}, domainerrors.ErrVoterNotFound
	}
	return placement, nil
}

type fakeLedger struct {
	counts map[string]int
	voted  map[string]bool
}

func (l fakeLedger) CountByPoll(_ context.Context, pollID string) (int, error) {
	return l.counts[pollID], nil
}

func (l fakeLedger) HasVoted(_ context.Context, pollID string, voterID string) (bool, error) {
	return l.voted[pollID+"/"+voterID], nil
}

func (l fakeLedger) DeleteByPoll(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func seedPolls() []entities.Poll {
	base := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	return []entities.Poll{
		{
			ID: "p1", Title: "CR Election", Description: "d",
			TargetYear: "2", TargetSection: "ALL", TargetDepartment: "ADS",
			Candidates: []string{"A", "B"}, IsActive: true,
			EligibleVotersCount: 60, CreatedAt: base,
		},
		{
			ID: "p2", Title: "Sports Captain", Description: "d",
			TargetYear: "2", TargetSection: "B", TargetDepartment: "ADS",
			Candidates: []string{"X", "Y"}, IsActive: false,
			EligibleVotersCount: 30, CreatedAt: base.Add(time.Hour),
		},
		{
			ID: "p3", Title: "IT Forum Head", Description: "d",
			TargetYear: "3", TargetDepartment: "IT",
			Candidates: []string{"Z"}, IsActive: true,
			EligibleVotersCount: 40, CreatedAt: base.Add(2 * time.Hour),
		},
	}
}

func TestListPollsRecomputesEligibleCount(t *testing.T) {
	store := memory.NewStore(seedPolls())
	uc := CatalogueUseCase{
		Polls: store,
		Voters: fakeDirectory{counts: map[string]int{
			"2//ADS":  55, // drifted from the snapshot of 60
			"2/B/ADS": 28,
			"3//IT":   40,
		}},
		Votes: fakeLedger{counts: map[string]int{"p1": 41}},
	}

	summaries, err := uc.ListPolls(context.Background())
	if err != nil {
		t.Fatalf("list polls failed: %v", err)
	}
	if len(summaries) != 3 {
		t.Fatalf("expected 3 polls, got %d", len(summaries))
	}
	// newest first
	if summaries[0].ID != "p3" || summaries[2].ID != "p1" {
		t.Fatalf("unexpected order: %s %s %s", summaries[0].ID, summaries[1].ID, summaries[2].ID)
	}
	cr := summaries[2]
	if cr.EligibleVotersCount != 55 {
		t.Fatalf("expected recomputed count 55, got %d", cr.EligibleVotersCount)
	}
	if cr.CreatedEligibleCount != 60 {
		t.Fatalf("expected creation snapshot 60, got %d", cr.CreatedEligibleCount)
	}
	if cr.TotalVotes != 41 {
		t.Fatalf("expected 41 votes, got %d", cr.TotalVotes)
	}
}

func TestPollsForVoterFiltersByEligibility(t *testing.T) {
	store := memory.NewStore(seedPolls())
	uc := CatalogueUseCase{
		Polls: store,
		Voters: fakeDirectory{placements: map[string]eligibility.Placement{
			"v1": {Year: "2", Section: "A", Department: "ADS"},
		}},
		Votes: fakeLedger{voted: map[string]bool{"p1/v1": true}},
	}

	polls, err := uc.PollsForVoter(context.Background(), "v1")
	if err != nil {
		t.Fatalf("polls for voter failed: %v", err)
	}
	// p1 targets 2/ALL/ADS (match), p2 targets section B (no match),
	// p3 targets year 3 (no match). Inactive polls still appear.
	if len(polls) != 1 {
		t.Fatalf("expected 1 eligible poll, got %d", len(polls))
	}
	if polls[0].ID != "p1" {
		t.Fatalf("expected p1, got %s", polls[0].ID)
	}
	if !polls[0].HasVoted {
		t.Fatal("expected hasVoted annotation from the ledger")
	}
}

func TestPollsForVoterIncludesInactive(t *testing.T) {
	store := memory.NewStore(seedPolls())
	uc := CatalogueUseCase{
		Polls: store,
		Voters: fakeDirectory{placements: map[string]eligibility.Placement{
			"v2": {Year: "2", Section: "B", Department: "ADS"},
		}},
		Votes: fakeLedger{},
	}

	polls, err := uc.PollsForVoter(context.Background(), "v2")
	if err != nil {
		t.Fatalf("polls for voter failed: %v", err)
	}
	if len(polls) != 2 {
		t.Fatalf("expected p1 and the inactive p2, got %d polls", len(polls))
	}
}

func TestPollsForVoterUnknownVoter(t *testing.T) {
	store := memory.NewStore(nil)
	uc := CatalogueUseCase{
		Polls:  store,
		Voters: fakeDirectory{},
		Votes:  fakeLedger{},
	}
	if _, err := uc.PollsForVoter(context.Background(), "ghost"); err == nil {
		t.Fatal("expected an error for an unknown voter")
	}
}
