package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	analytics "campusvote/contexts/election/analytics-service"
	analyticsports "campusvote/contexts/election/analytics-service/ports"
	"campusvote/contexts/election/eligibility"
	pollregistry "campusvote/contexts/election/poll-registry"
	pollmemory "campusvote/contexts/election/poll-registry/adapters/memory"
	pollcommands "campusvote/contexts/election/poll-registry/application/commands"
	pollerrors "campusvote/contexts/election/poll-registry/domain/errors"
	voteledger "campusvote/contexts/election/vote-ledger"
	ledgermemory "campusvote/contexts/election/vote-ledger/adapters/memory"
	ledgererrors "campusvote/contexts/election/vote-ledger/domain/errors"
	ledgerports "campusvote/contexts/election/vote-ledger/ports"
	voterregistry "campusvote/contexts/election/voter-registry"
	registrymemory "campusvote/contexts/election/voter-registry/adapters/memory"
	registrycommands "campusvote/contexts/election/voter-registry/application/commands"
	registryentities "campusvote/contexts/election/voter-registry/domain/entities"
	registryerrors "campusvote/contexts/election/voter-registry/domain/errors"
	registryports "campusvote/contexts/election/voter-registry/ports"
	authgate "campusvote/contexts/identity-access/auth-gate"
	authapp "campusvote/contexts/identity-access/auth-gate/application"
	autherrors "campusvote/contexts/identity-access/auth-gate/domain/errors"
	authports "campusvote/contexts/identity-access/auth-gate/ports"
)

const testSecret = "httpserver-test-secret"

// testEnv is a full in-memory composition of every module behind one
// server, cross-wired the same way bootstrap wires the real thing.
type testEnv struct {
	server *Server
	auth   authgate.Module
	voters voterregistry.Module
	polls  pollregistry.Module
	ledger voteledger.Module
}

func newTestEnv() *testEnv {
	logger := slog.Default()
	voterStore := registrymemory.NewStore(nil)
	voteStore := ledgermemory.NewStore(nil)

	votersModule := voterregistry.NewModule(voterregistry.Dependencies{
		Voters:      voterStore,
		Votes:       voteStore,
		Clock:       voterStore,
		IDGenerator: voterStore,
		LoginURL:    "http://localhost:3000/login",
		Logger:      logger,
	})
	votersModule.Store = voterStore

	pollsModule := pollregistry.NewInMemoryModule(
		testDirectory{voters: voterStore},
		voteStore,
		logger,
	)

	ledgerModule := voteledger.NewModule(voteledger.Dependencies{
		Votes:       voteStore,
		Polls:       testPollReader{polls: pollsModule.Store},
		Voters:      voterStore,
		Clock:       voteStore,
		IDGenerator: voteStore,
		Logger:      logger,
	})
	ledgerModule.Store = voteStore

	authModule := authgate.NewInMemoryModule(
		testAccounts{voters: voterStore},
		[]byte(testSecret),
		logger,
	)

	sources := testSources{
		voters: voterStore,
		polls:  pollsModule.Store,
		votes:  voteStore,
		ledger: ledgerModule,
	}
	analyticsModule := analytics.NewModule(analytics.Dependencies{
		Voters: sources,
		Polls:  sources,
		Votes:  sources,
		Ledger: sources,
		Logger: logger,
	})

	server := New(authModule, votersModule, pollsModule, ledgerModule, analyticsModule, logger, ":0")
	return &testEnv{
		server: server,
		auth:   authModule,
		voters: votersModule,
		polls:  pollsModule,
		ledger: ledgerModule,
	}
}

type testDirectory struct {
	voters registryports.VoterRepository
}

func (d testDirectory) CountEligible(ctx context.Context, filter eligibility.Filter) (int, error) {
	return d.voters.Count(ctx, registryports.VoterFilter{
		Year:       filter.Year,
		Section:    filter.Section,
		Department: filter.Department,
	})
}

func (d testDirectory) GetPlacement(ctx context.Context, voterID string) (eligibility.Placement, error) {
	voter, err := d.voters.Get(ctx, voterID)
	if err != nil {
		if errors.Is(err, registryerrors.ErrVoterNotFound) {
			return eligibility.Placement{}, pollerrors.ErrVoterNotFound
		}
		return eligibility.Placement{}, err
	}
	return voter.Placement(), nil
}

type testPollReader struct {
	polls *pollmemory.Store
}

func (r testPollReader) GetPoll(ctx context.Context, pollID string) (ledgerports.PollSnapshot, error) {
	poll, err := r.polls.Get(ctx, pollID)
	if err != nil {
		return ledgerports.PollSnapshot{}, ledgererrors.ErrPollNotFound
	}
	return ledgerports.PollSnapshot{
		ID:               poll.ID,
		Title:            poll.Title,
		TargetYear:       poll.TargetYear,
		TargetSection:    poll.TargetSection,
		TargetDepartment: poll.TargetDepartment,
		Candidates:       poll.Candidates,
		IsActive:         poll.IsActive,
	}, nil
}

func (r testPollReader) ListPolls(ctx context.Context) ([]ledgerports.PollSnapshot, error) {
	polls, err := r.polls.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ledgerports.PollSnapshot, 0, len(polls))
	for _, poll := range polls {
		snapshot, _ := r.GetPoll(ctx, poll.ID)
		out = append(out, snapshot)
	}
	return out, nil
}

type testAccounts struct {
	voters registryports.VoterRepository
}

func (a testAccounts) GetByEmail(ctx context.Context, email string) (authports.VoterAccount, error) {
	matches, err := a.voters.List(ctx, registryports.VoterFilter{Email: email})
	if err != nil || len(matches) == 0 {
		return authports.VoterAccount{}, autherrors.ErrVoterNotFound
	}
	return toAccount(matches[0]), nil
}

func (a testAccounts) Get(ctx context.Context, voterID string) (authports.VoterAccount, error) {
	voter, err := a.voters.Get(ctx, voterID)
	if err != nil {
		return authports.VoterAccount{}, autherrors.ErrVoterNotFound
	}
	return toAccount(voter), nil
}

func toAccount(voter registryentities.Voter) authports.VoterAccount {
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

type testSources struct {
	voters registryports.VoterRepository
	polls  *pollmemory.Store
	votes  ledgerports.VoteRepository
	ledger voteledger.Module
}

func (s testSources) ListVoters(ctx context.Context) ([]analyticsports.VoterSnapshot, error) {
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

func (s testSources) ListPolls(ctx context.Context) ([]analyticsports.PollSnapshot, error) {
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

func (s testSources) ListVotes(ctx context.Context) ([]analyticsports.VoteRecord, error) {
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

func (s testSources) CountVotes(ctx context.Context) (int, error) {
	return s.votes.CountAll(ctx)
}

func (s testSources) VotingTrend(ctx context.Context, days int) ([]analyticsports.TrendPoint, error) {
	points, err := s.ledger.Results.VotingTrend(ctx, days)
	if err != nil {
		return nil, err
	}
	out := make([]analyticsports.TrendPoint, 0, len(points))
	for _, point := range points {
		out = append(out, analyticsports.TrendPoint{Date: point.Date, Votes: point.Votes})
	}
	return out, nil
}

func (s testSources) MostActivePolls(ctx context.Context, limit int) ([]analyticsports.PollActivity, error) {
	activity, err := s.ledger.Results.MostActivePolls(ctx, limit)
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

func (e *testEnv) seedAdmin(t *testing.T) {
	t.Helper()
	_, err := e.auth.Auth.CreateAdmin(context.Background(), authapp.CreateAdminCommand{
		Email:    "chair@example.edu",
		Name:     "Election Chair",
		Password: "chair-secret",
	})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
}

func (e *testEnv) seedVoter(t *testing.T, regNo string, email string, year string, section string, department string) registryentities.Voter {
	t.Helper()
	voter, err := e.voters.Voters.CreateVoter(context.Background(), registrycommands.CreateVoterCommand{
		RegNo:      regNo,
		Name:       "Voter " + regNo,
		Email:      email,
		Year:       year,
		Section:    section,
		Department: department,
		Password:   "pw-" + regNo,
	})
	if err != nil {
		t.Fatalf("seed voter %s: %v", regNo, err)
	}
	return voter
}

func (e *testEnv) seedActivePoll(t *testing.T, title string, year string, department string, candidates []string) string {
	t.Helper()
	poll, err := e.polls.Polls.CreatePoll(context.Background(), pollcommands.CreatePollCommand{
		Title:            title,
		TargetYear:       year,
		TargetSection:    "ALL",
		TargetDepartment: department,
		Candidates:       candidates,
		CreatedBy:        "test",
	})
	if err != nil {
		t.Fatalf("seed poll %s: %v", title, err)
	}
	if _, err := e.polls.Polls.TogglePoll(context.Background(), poll.ID, true); err != nil {
		t.Fatalf("activate poll %s: %v", title, err)
	}
	return poll.ID
}

func (e *testEnv) login(t *testing.T, email string, password string, role string) string {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": password, "type": role})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	e.server.mux.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("login %s as %s: expected 200, got %d body=%s", email, role, rr.Code, rr.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatalf("login %s: empty token in %s", email, rr.Body.String())
	}
	return resp.Token
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	e.seedAdmin(t)
	return e.login(t, "chair@example.edu", "chair-secret", "admin")
}

func (e *testEnv) do(method string, target string, token string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.server.mux.ServeHTTP(rr, req)
	return rr
}
