package memory

import (
	"context"
	"errors"
	"testing"

	"campusvote/contexts/election/voter-registry/domain/entities"
	domainerrors "campusvote/contexts/election/voter-registry/domain/errors"
	"campusvote/contexts/election/voter-registry/ports"
)

func TestInsertEnforcesUniqueness(t *testing.T) {
	store := NewStore(nil)
	voter := entities.Voter{ID: "v1", RegNo: "21ADS001", Email: "a@campus.edu", Year: "2", Section: "A", Department: "ADS"}
	if err := store.Insert(context.Background(), voter); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	dup := entities.Voter{ID: "v2", RegNo: "21ADS001", Email: "other@campus.edu"}
	if err := store.Insert(context.Background(), dup); !errors.Is(err, domainerrors.ErrDuplicateVoter) {
		t.Fatalf("expected ErrDuplicateVoter on regNo clash, got %v", err)
	}
	dup = entities.Voter{ID: "v2", RegNo: "21ADS099", Email: "a@campus.edu"}
	if err := store.Insert(context.Background(), dup); !errors.Is(err, domainerrors.ErrDuplicateVoter) {
		t.Fatalf("expected ErrDuplicateVoter on email clash, got %v", err)
	}
}

func TestInsertBatchIsAtomic(t *testing.T) {
	store := NewStore([]entities.Voter{{ID: "v1", RegNo: "21ADS001", Email: "a@campus.edu"}})
	batch := []entities.Voter{
		{ID: "v2", RegNo: "21ADS002", Email: "b@campus.edu"},
		{ID: "v3", RegNo: "21ADS001", Email: "c@campus.edu"},
	}
	if err := store.InsertBatch(context.Background(), batch); !errors.Is(err, domainerrors.ErrDuplicateVoter) {
		t.Fatalf("expected ErrDuplicateVoter, got %v", err)
	}
	if _, err := store.Get(context.Background(), "v2"); !errors.Is(err, domainerrors.ErrVoterNotFound) {
		t.Fatalf("expected no partial insert, got %v", err)
	}
}

func TestListFilterAndOrder(t *testing.T) {
	store := NewStore([]entities.Voter{
		{ID: "v1", RegNo: "R1", Email: "a@x.y", Year: "2", Section: "B", Department: "ADS", Name: "Z"},
		{ID: "v2", RegNo: "R2", Email: "b@x.y", Year: "2", Section: "A", Department: "ADS", Name: "M"},
		{ID: "v3", RegNo: "R3", Email: "c@x.y", Year: "1", Section: "A", Department: "IT", Name: "A"},
	})
	voters, err := store.List(context.Background(), ports.VoterFilter{Department: "ads"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(voters) != 2 {
		t.Fatalf("expected 2 voters, got %d", len(voters))
	}
	if voters[0].ID != "v2" || voters[1].ID != "v1" {
		t.Fatalf("expected section order A before B, got %s %s", voters[0].ID, voters[1].ID)
	}
}

func TestCountCollisions(t *testing.T) {
	store := NewStore([]entities.Voter{
		{ID: "v1", RegNo: "R1", Email: "a@x.y"},
		{ID: "v2", RegNo: "R2", Email: "b@x.y"},
	})
	count, err := store.CountCollisions(context.Background(), []string{"R1", "R9"}, []string{"b@x.y"})
	if err != nil {
		t.Fatalf("count collisions failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 collisions, got %d", count)
	}
}

func TestSetHasVotedAndDelete(t *testing.T) {
	store := NewStore([]entities.Voter{
		{ID: "v1", RegNo: "R1", Email: "a@x.y"},
		{ID: "v2", RegNo: "R2", Email: "b@x.y"},
	})
	if err := store.SetHasVoted(context.Background(), []string{"v1", "ghost"}, true); err != nil {
		t.Fatalf("set has voted failed: %v", err)
	}
	voter, err := store.Get(context.Background(), "v1")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !voter.HasVoted {
		t.Fatal("expected hasVoted true")
	}

	deleted, err := store.Delete(context.Background(), []string{"v1", "ghost"})
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deleted, got %d", deleted)
	}
}
