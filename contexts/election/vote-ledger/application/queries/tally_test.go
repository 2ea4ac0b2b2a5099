package queries

import (
	"context"
	"testing"
	"time"

	"campusvote/contexts/election/vote-ledger/adapters/memory"
	"campusvote/contexts/election/vote-ledger/domain/entities"
	domainerrors "campusvote/contexts/election/vote-ledger/domain/errors"
	"campusvote/contexts/election/vote-ledger/ports"
)

type fakePolls struct {
	polls map[string]ports.PollSnapshot
}

func (f fakePolls) GetPoll(_ context.Context, pollID string) (ports.PollSnapshot, error) {
	poll, ok := f.polls[pollID]
	if !ok {
		return ports.PollSnapshot{}, domainerrors.ErrPollNotFound
	}
	return poll, nil
}

func (f fakePolls) ListPolls(_ context.Context) ([]ports.PollSnapshot, error) {
	out := make([]ports.PollSnapshot, 0, len(f.polls))
	for _, poll := range f.polls {
		out = append(out, poll)
	}
	return out, nil
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func TestTallyPercentagesOneDecimal(t *testing.T) {
	at := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	store := memory.NewStore([]entities.Vote{
		{ID: "1", PollID: "p1", VoterID: "v1", Candidate: "Alice", CastAt: at},
		{ID: "2", PollID: "p1", VoterID: "v2", Candidate: "Alice", CastAt: at},
		{ID: "3", PollID: "p1", VoterID: "v3", Candidate: "Bob", CastAt: at},
	})
	uc := ResultsUseCase{
		Votes: store,
		Polls: fakePolls{polls: map[string]ports.PollSnapshot{
			"p1": {ID: "p1", Candidates: []string{"Alice", "Bob", "Carol"}},
		}},
	}

	rows, err := uc.Tally(context.Background(), "p1")
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected every candidate present, got %d rows", len(rows))
	}
	if rows[0].Candidate != "Alice" || rows[0].Votes != 2 || rows[0].Percentage != 66.7 {
		t.Fatalf("unexpected Alice row %+v", rows[0])
	}
	if rows[1].Votes != 1 || rows[1].Percentage != 33.3 {
		t.Fatalf("unexpected Bob row %+v", rows[1])
	}
	if rows[2].Candidate != "Carol" || rows[2].Votes != 0 || rows[2].Percentage != 0 {
		t.Fatalf("expected zero row for Carol, got %+v", rows[2])
	}
}

func TestTallyEmptyPoll(t *testing.T) {
	store := memory.NewStore(nil)
	uc := ResultsUseCase{
		Votes: store,
		Polls: fakePolls{polls: map[string]ports.PollSnapshot{
			"p1": {ID: "p1", Candidates: []string{"Alice", "Bob"}},
		}},
	}
	rows, err := uc.Tally(context.Background(), "p1")
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	for _, row := range rows {
		if row.Votes != 0 || row.Percentage != 0 {
			t.Fatalf("expected zero rows, got %+v", row)
		}
	}
}

func TestVotingTrendContinuousWindow(t *testing.T) {
	now := time.Date(2026, 4, 10, 15, 30, 0, 0, time.UTC)
	store := memory.NewStore([]entities.Vote{
		{ID: "1", PollID: "p1", VoterID: "v1", Candidate: "A", CastAt: now.AddDate(0, 0, -2)},
		{ID: "2", PollID: "p1", VoterID: "v2", Candidate: "A", CastAt: now.AddDate(0, 0, -2)},
		{ID: "3", PollID: "p1", VoterID: "v3", Candidate: "A", CastAt: now},
		// outside the window
		{ID: "4", PollID: "p1", VoterID: "v4", Candidate: "A", CastAt: now.AddDate(0, 0, -10)},
	})
	uc := ResultsUseCase{Votes: store, Polls: fakePolls{}, Clock: fixedClock{at: now}}

	points, err := uc.VotingTrend(context.Background(), 7)
	if err != nil {
		t.Fatalf("trend failed: %v", err)
	}
	if len(points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(points))
	}
	if points[0].Date != "2026-04-04" || points[6].Date != "2026-04-10" {
		t.Fatalf("unexpected window edges %s .. %s", points[0].Date, points[6].Date)
	}
	if points[4].Votes != 2 {
		t.Fatalf("expected 2 votes on 2026-04-08, got %d", points[4].Votes)
	}
	if points[6].Votes != 1 {
		t.Fatalf("expected 1 vote today, got %d", points[6].Votes)
	}
	if points[1].Votes != 0 {
		t.Fatalf("expected a zero-filled quiet day, got %d", points[1].Votes)
	}
}

func TestMostActivePolls(t *testing.T) {
	at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	votes := []entities.Vote{
		{ID: "1", PollID: "p1", VoterID: "v1", Candidate: "A", CastAt: at},
		{ID: "2", PollID: "p2", VoterID: "v1", Candidate: "B", CastAt: at},
		{ID: "3", PollID: "p2", VoterID: "v2", Candidate: "B", CastAt: at},
		{ID: "4", PollID: "p2", VoterID: "v3", Candidate: "B", CastAt: at},
		{ID: "5", PollID: "p3", VoterID: "v1", Candidate: "C", CastAt: at},
		{ID: "6", PollID: "p3", VoterID: "v2", Candidate: "C", CastAt: at},
	}
	store := memory.NewStore(votes)
	uc := ResultsUseCase{
		Votes: store,
		Polls: fakePolls{polls: map[string]ports.PollSnapshot{
			"p1": {ID: "p1", Title: "One"},
			"p2": {ID: "p2", Title: "Two"},
			"p3": {ID: "p3", Title: "Three"},
			"p4": {ID: "p4", Title: "Silent"},
		}},
	}

	activity, err := uc.MostActivePolls(context.Background(), 2)
	if err != nil {
		t.Fatalf("most active failed: %v", err)
	}
	if len(activity) != 2 {
		t.Fatalf("expected top 2, got %d", len(activity))
	}
	if activity[0].PollID != "p2" || activity[0].Votes != 3 {
		t.Fatalf("unexpected leader %+v", activity[0])
	}
	if activity[1].PollID != "p3" || activity[1].Votes != 2 {
		t.Fatalf("unexpected runner-up %+v", activity[1])
	}
}
