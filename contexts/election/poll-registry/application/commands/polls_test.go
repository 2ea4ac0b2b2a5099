package commands

import (
	"context"
	"errors"
	"testing"

	"campusvote/contexts/election/eligibility"
	"campusvote/contexts/election/poll-registry/adapters/memory"
	domainerrors "campusvote/contexts/election/poll-registry/domain/errors"
)

type fakeDirectory struct {
	counts map[string]int
}

func (d fakeDirectory) CountEligible(_ context.Context, filter eligibility.Filter) (int, error) {
	key := filter.Year + "/" + filter.Section + "/" + filter.Department
	return d.counts[key], nil
}

func (d fakeDirectory) GetPlacement(_ context.Context, _ string) (eligibility.Placement, error) {
	return eligibility.Placement{}, domainerrors.ErrVoterNotFound
}

type fakeLedger struct {
	counts       map[string]int
	voted        map[string]bool
	pollsDeleted []string
}

func (l *fakeLedger) CountByPoll(_ context.Context, pollID string) (int, error) {
	return l.counts[pollID], nil
}

func (l *fakeLedger) HasVoted(_ context.Context, pollID string, voterID string) (bool, error) {
	return l.voted[pollID+"/"+voterID], nil
}

func (l *fakeLedger) DeleteByPoll(_ context.Context, pollID string) (int, error) {
	l.pollsDeleted = append(l.pollsDeleted, pollID)
	return l.counts[pollID], nil
}

func newPollUseCase(store *memory.Store, directory fakeDirectory, ledger *fakeLedger) PollUseCase {
	return PollUseCase{
		Polls:  store,
		Voters: directory,
		Votes:  ledger,
		Clock:  store,
		IDGen:  store,
	}
}

func TestCreatePollFreezesSnapshotAndStartsInactive(t *testing.T) {
	store := memory.NewStore(nil)
	directory := fakeDirectory{counts: map[string]int{"2//ADS": 57}}
	uc := newPollUseCase(store, directory, &fakeLedger{})

	poll, err := uc.CreatePoll(context.Background(), CreatePollCommand{
		Title:            "Class Representative",
		Description:      "Choose the CR for this term",
		TargetYear:       "2",
		TargetSection:    "all",
		TargetDepartment: "ads",
		Candidates:       []string{"Alice", "Bob"},
		CreatedBy:        "admin-1",
	})
	if err != nil {
		t.Fatalf("create poll failed: %v", err)
	}
	if poll.IsActive {
		t.Fatal("expected poll created inactive")
	}
	if poll.EligibleVotersCount != 57 {
		t.Fatalf("expected snapshot 57, got %d", poll.EligibleVotersCount)
	}
	if poll.TargetSection != "ALL" || poll.TargetDepartment != "ADS" {
		t.Fatalf("expected normalized targets, got %q %q", poll.TargetSection, poll.TargetDepartment)
	}
	if poll.ID == "" || poll.CreatedAt.IsZero() {
		t.Fatal("expected id and creation time assigned")
	}
}

func TestCreatePollRejectsEmptyAudience(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newPollUseCase(store, fakeDirectory{counts: map[string]int{}}, &fakeLedger{})

	_, err := uc.CreatePoll(context.Background(), CreatePollCommand{
		Title:            "Ghost Poll",
		Description:      "No one can see this",
		TargetYear:       "4",
		TargetDepartment: "ECE",
		Candidates:       []string{"X"},
	})
	if !errors.Is(err, domainerrors.ErrNoEligibleVoters) {
		t.Fatalf("expected ErrNoEligibleVoters, got %v", err)
	}
	polls, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(polls) != 0 {
		t.Fatalf("expected nothing persisted, got %d polls", len(polls))
	}
}

func TestCreatePollValidation(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newPollUseCase(store, fakeDirectory{counts: map[string]int{"1//CSE": 10}}, &fakeLedger{})

	cases := []CreatePollCommand{
		{Description: "d", TargetYear: "1", TargetDepartment: "CSE", Candidates: []string{"A"}},
		{Title: "t", TargetYear: "1", TargetDepartment: "CSE", Candidates: []string{"A"}},
		{Title: "t", Description: "d", TargetDepartment: "CSE", Candidates: []string{"A"}},
		{Title: "t", Description: "d", TargetYear: "1", Candidates: []string{"A"}},
		{Title: "t", Description: "d", TargetYear: "1", TargetDepartment: "CSE"},
		{Title: "t", Description: "d", TargetYear: "1", TargetDepartment: "CSE", Candidates: []string{"A", "  "}},
	}
	for i, cmd := range cases {
		if _, err := uc.CreatePoll(context.Background(), cmd); !errors.Is(err, domainerrors.ErrInvalidPollInput) {
			t.Fatalf("case %d: expected ErrInvalidPollInput, got %v", i, err)
		}
	}
}

func TestUpdatePollKeepsSnapshot(t *testing.T) {
	store := memory.NewStore(nil)
	directory := fakeDirectory{counts: map[string]int{"2//ADS": 30}}
	uc := newPollUseCase(store, directory, &fakeLedger{})

	created, err := uc.CreatePoll(context.Background(), CreatePollCommand{
		Title:            "CR Election",
		Description:      "d",
		TargetYear:       "2",
		TargetDepartment: "ADS",
		Candidates:       []string{"A", "B"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	updated, err := uc.UpdatePoll(context.Background(), UpdatePollCommand{
		PollID:     created.ID,
		Title:      "CR Election 2026",
		Candidates: []string{"A", "B", "C"},
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != "CR Election 2026" {
		t.Fatalf("unexpected title %q", updated.Title)
	}
	if len(updated.Candidates) != 3 {
		t.Fatalf("expected candidates replaced, got %v", updated.Candidates)
	}
	if updated.EligibleVotersCount != created.EligibleVotersCount {
		t.Fatal("expected snapshot untouched on update")
	}
}

func TestUpdatePollUnknown(t *testing.T) {
	store := memory.NewStore(nil)
	uc := newPollUseCase(store, fakeDirectory{}, &fakeLedger{})
	_, err := uc.UpdatePoll(context.Background(), UpdatePollCommand{PollID: "missing", Title: "x"})
	if !errors.Is(err, domainerrors.ErrPollNotFound) {
		t.Fatalf("expected ErrPollNotFound, got %v", err)
	}
}

func TestTogglePoll(t *testing.T) {
	store := memory.NewStore(nil)
	directory := fakeDirectory{counts: map[string]int{"3//IT": 12}}
	uc := newPollUseCase(store, directory, &fakeLedger{})

	created, err := uc.CreatePoll(context.Background(), CreatePollCommand{
		Title: "t", Description: "d", TargetYear: "3", TargetDepartment: "IT",
		Candidates: []string{"A"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	toggled, err := uc.TogglePoll(context.Background(), created.ID, true)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !toggled.IsActive {
		t.Fatal("expected poll active after toggle")
	}
	stored, err := store.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !stored.IsActive {
		t.Fatal("expected stored poll active")
	}
}

func TestDeletePollCascadesVotesFirst(t *testing.T) {
	store := memory.NewStore(nil)
	directory := fakeDirectory{counts: map[string]int{"3//IT": 12}}
	ledger := &fakeLedger{counts: map[string]int{}}
	uc := newPollUseCase(store, directory, ledger)

	created, err := uc.CreatePoll(context.Background(), CreatePollCommand{
		Title: "t", Description: "d", TargetYear: "3", TargetDepartment: "IT",
		Candidates: []string{"A"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := uc.DeletePoll(context.Background(), created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(ledger.pollsDeleted) != 1 || ledger.pollsDeleted[0] != created.ID {
		t.Fatalf("expected vote cascade for %s, got %v", created.ID, ledger.pollsDeleted)
	}
	if _, err := store.Get(context.Background(), created.ID); !errors.Is(err, domainerrors.ErrPollNotFound) {
		t.Fatalf("expected poll gone, got %v", err)
	}
}
