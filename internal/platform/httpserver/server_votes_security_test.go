package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestCastVoteFlow(t *testing.T) {
	env := newTestEnv()
	env.seedVoter(t, "21ADS001", "asha@example.edu", "2", "A", "ADS")
	pollID := env.seedActivePoll(t, "ADS Rep", "2", "ADS", []string{"Asha", "Bilal"})
	token := env.login(t, "asha@example.edu", "pw-21ADS001", "voter")

	rr := env.do(http.MethodPost, "/api/voter/vote", token,
		[]byte(`{"pollId":"`+pollID+`","candidate":"Asha"}`))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Success bool   `json:"success"`
		VoteID  string `json:"voteId"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || resp.VoteID == "" {
		t.Fatalf("expected recorded vote, got %s", rr.Body.String())
	}

	// The feed reflects the cast immediately.
	feed := env.do(http.MethodGet, "/api/voter/polls", token, nil)
	var polls struct {
		Polls []struct {
			HasVoted bool `json:"hasVoted"`
		} `json:"polls"`
	}
	if err := json.Unmarshal(feed.Body.Bytes(), &polls); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if len(polls.Polls) != 1 || !polls.Polls[0].HasVoted {
		t.Fatalf("expected hasVoted=true in feed, got %s", feed.Body.String())
	}
}

func TestCastVoteTwiceConflicts(t *testing.T) {
	env := newTestEnv()
	env.seedVoter(t, "21ADS001", "asha@example.edu", "2", "A", "ADS")
	pollID := env.seedActivePoll(t, "ADS Rep", "2", "ADS", []string{"Asha", "Bilal"})
	token := env.login(t, "asha@example.edu", "pw-21ADS001", "voter")

	body := []byte(`{"pollId":"` + pollID + `","candidate":"Asha"}`)
	if rr := env.do(http.MethodPost, "/api/voter/vote", token, body); rr.Code != http.StatusCreated {
		t.Fatalf("first cast: expected 201, got %d body=%s", rr.Code, rr.Body.String())
	}
	rr := env.do(http.MethodPost, "/api/voter/vote", token, []byte(`{"pollId":"`+pollID+`","candidate":"Bilal"}`))
	if rr.Code != http.StatusConflict {
		t.Fatalf("second cast: expected 409, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCastVoteRejectsClosedPoll(t *testing.T) {
	env := newTestEnv()
	adminToken := env.adminToken(t)
	env.seedVoter(t, "21ADS001", "asha@example.edu", "2", "A", "ADS")
	pollID := env.seedActivePoll(t, "ADS Rep", "2", "ADS", []string{"Asha", "Bilal"})
	if rr := env.do(http.MethodPut, "/api/admin/polls/"+pollID+"/toggle", adminToken,
		[]byte(`{"isActive":false}`)); rr.Code != http.StatusOK {
		t.Fatalf("toggle off: expected 200, got %d", rr.Code)
	}

	token := env.login(t, "asha@example.edu", "pw-21ADS001", "voter")
	rr := env.do(http.MethodPost, "/api/voter/vote", token,
		[]byte(`{"pollId":"`+pollID+`","candidate":"Asha"}`))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCastVoteRejectsUnknownCandidate(t *testing.T) {
	env := newTestEnv()
	env.seedVoter(t, "21ADS001", "asha@example.edu", "2", "A", "ADS")
	pollID := env.seedActivePoll(t, "ADS Rep", "2", "ADS", []string{"Asha", "Bilal"})
	token := env.login(t, "asha@example.edu", "pw-21ADS001", "voter")

	rr := env.do(http.MethodPost, "/api/voter/vote", token,
		[]byte(`{"pollId":"`+pollID+`","candidate":"Zed"}`))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestCastVoteRejectsUnknownPoll(t *testing.T) {
	env := newTestEnv()
	env.seedVoter(t, "21ADS001", "asha@example.edu", "2", "A", "ADS")
	token := env.login(t, "asha@example.edu", "pw-21ADS001", "voter")

	rr := env.do(http.MethodPost, "/api/voter/vote", token,
		[]byte(`{"pollId":"missing","candidate":"Asha"}`))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d body=%s", rr.Code, rr.Body.String())
	}
}
