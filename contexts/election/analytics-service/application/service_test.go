package application

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerrors "campusvote/contexts/election/analytics-service/domain/errors"
	"campusvote/contexts/election/analytics-service/ports"
)

type fakeVoters struct {
	voters []ports.VoterSnapshot
}

func (f fakeVoters) ListVoters(ctx context.Context) ([]ports.VoterSnapshot, error) {
	return f.voters, nil
}

type fakePolls struct {
	polls []ports.PollSnapshot
}

func (f fakePolls) ListPolls(ctx context.Context) ([]ports.PollSnapshot, error) {
	return f.polls, nil
}

type fakeVotes struct {
	votes []ports.VoteRecord
}

func (f fakeVotes) ListVotes(ctx context.Context) ([]ports.VoteRecord, error) {
	return f.votes, nil
}

func (f fakeVotes) CountVotes(ctx context.Context) (int, error) {
	return len(f.votes), nil
}

type fakeLedger struct {
	trend    []ports.TrendPoint
	activity []ports.PollActivity
}

func (f fakeLedger) VotingTrend(ctx context.Context, days int) ([]ports.TrendPoint, error) {
	return f.trend, nil
}

func (f fakeLedger) MostActivePolls(ctx context.Context, limit int) ([]ports.PollActivity, error) {
	return f.activity, nil
}

func voter(regNo, year, section, department string, voted bool) ports.VoterSnapshot {
	return ports.VoterSnapshot{
		RegNo:      regNo,
		Name:       "Student " + regNo,
		Email:      regNo + "@example.edu",
		Year:       year,
		Section:    section,
		Department: department,
		Password:   "pw-" + regNo,
		HasVoted:   voted,
		CreatedAt:  time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func newService() Service {
	return Service{
		Voters: fakeVoters{voters: []ports.VoterSnapshot{
			voter("21ADS001", "2", "A", "ADS", true),
			voter("21ADS002", "2", "A", "ADS", false),
			voter("21ADS003", "2", "B", "ADS", true),
			voter("22IT001", "3", "A", "IT", false),
			voter("22IT002", "3", "A", "IT", false),
		}},
		Polls: fakePolls{polls: []ports.PollSnapshot{
			{
				ID:                  "p1",
				Title:               "Class Representative",
				TargetYear:          "2",
				TargetDepartment:    "ADS",
				Candidates:          []string{"Asha", "Ravi"},
				IsActive:            true,
				EligibleVotersCount: 3,
			},
			{
				ID:                  "p2",
				Title:               "Sports Captain",
				TargetYear:          "3",
				TargetDepartment:    "IT",
				Candidates:          []string{"Kiran"},
				IsActive:            false,
				EligibleVotersCount: 2,
			},
		}},
		Votes: fakeVotes{votes: []ports.VoteRecord{
			{PollID: "p1", VoterID: "v1", VoterRef: "21ADS001", Candidate: "Asha", CastAt: time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)},
			{PollID: "p1", VoterID: "v3", VoterRef: "21ADS003", Candidate: "Ravi", CastAt: time.Date(2026, time.March, 2, 11, 0, 0, 0, time.UTC)},
		}},
		Ledger: fakeLedger{
			trend:    []ports.TrendPoint{{Date: "2026-03-02", Votes: 2}},
			activity: []ports.PollActivity{{PollID: "p1", Title: "Class Representative", TargetYear: "2", TargetDepartment: "ADS", Votes: 2}},
		},
	}
}

func TestGetOverviewCountsParticipation(t *testing.T) {
	service := newService()

	overview, err := service.GetOverview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overview.TotalVoters != 5 {
		t.Fatalf("expected 5 voters, got %d", overview.TotalVoters)
	}
	if overview.VotedCount != 2 || overview.NotVotedCount != 3 {
		t.Fatalf("expected 2 voted / 3 pending, got %d / %d", overview.VotedCount, overview.NotVotedCount)
	}
	if overview.VotingPercentage != 40 {
		t.Fatalf("expected 40%% turnout, got %d", overview.VotingPercentage)
	}
	if overview.TotalPolls != 2 || overview.ActivePolls != 1 {
		t.Fatalf("expected 2 polls with 1 active, got %d / %d", overview.TotalPolls, overview.ActivePolls)
	}
	if overview.TotalVotes != 2 {
		t.Fatalf("expected 2 votes, got %d", overview.TotalVotes)
	}
}

func TestGetOverviewEmptyRegistryAvoidsDivisionByZero(t *testing.T) {
	service := newService()
	service.Voters = fakeVoters{}

	overview, err := service.GetOverview(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overview.VotingPercentage != 0 {
		t.Fatalf("expected 0%% for empty registry, got %d", overview.VotingPercentage)
	}
}

func TestVotersByYearGroupsAndSorts(t *testing.T) {
	service := newService()

	rows, err := service.VotersByYear(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 year groups, got %d", len(rows))
	}
	if rows[0].Key != "2" || rows[0].Total != 3 || rows[0].Voted != 2 {
		t.Fatalf("unexpected year 2 row: %+v", rows[0])
	}
	if rows[1].Key != "3" || rows[1].Total != 2 || rows[1].Voted != 0 {
		t.Fatalf("unexpected year 3 row: %+v", rows[1])
	}
}

func TestVotersByDepartmentOrdersByGroupSize(t *testing.T) {
	service := newService()

	rows, err := service.VotersByDepartment(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 departments, got %d", len(rows))
	}
	if rows[0].Key != "ADS" || rows[0].Total != 3 {
		t.Fatalf("expected ADS first with 3 voters, got %+v", rows[0])
	}
	if rows[1].Key != "IT" || rows[1].Total != 2 {
		t.Fatalf("expected IT second with 2 voters, got %+v", rows[1])
	}
}

func TestVotersByYearSectionUsesCompositeKey(t *testing.T) {
	service := newService()

	rows, err := service.VotersByYearSection(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 year-section groups, got %d", len(rows))
	}
	if rows[0].Key != "2-A" || rows[0].Total != 2 || rows[0].Voted != 1 {
		t.Fatalf("unexpected 2-A row: %+v", rows[0])
	}
	if rows[1].Key != "2-B" || rows[2].Key != "3-A" {
		t.Fatalf("unexpected group order: %q, %q", rows[1].Key, rows[2].Key)
	}
}

func TestGetDashboardDelegatesTrendAndActivity(t *testing.T) {
	service := newService()

	dashboard, err := service.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dashboard.Overview.TotalVoters != 5 {
		t.Fatalf("expected overview embedded, got %+v", dashboard.Overview)
	}
	if len(dashboard.Trends) != 1 || dashboard.Trends[0].Date != "2026-03-02" {
		t.Fatalf("unexpected trend payload: %+v", dashboard.Trends)
	}
	if len(dashboard.TopPolls) != 1 || dashboard.TopPolls[0].PollID != "p1" {
		t.Fatalf("unexpected top polls payload: %+v", dashboard.TopPolls)
	}
}

func TestExportVotersCarriesCredentials(t *testing.T) {
	service := newService()

	data, err := service.Export(context.Background(), "voters")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Type != ExportVoters {
		t.Fatalf("expected voters export type, got %q", data.Type)
	}
	if len(data.Rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(data.Rows))
	}
	first := data.Rows[0]
	if first[0].Label != "Registration Number" || first[0].Value != "21ADS001" {
		t.Fatalf("unexpected first cell: %+v", first[0])
	}
	if first[6].Label != "Password" || first[6].Value != "pw-21ADS001" {
		t.Fatalf("expected issued credential in export, got %+v", first[6])
	}
	if first[7].Value != "Yes" {
		t.Fatalf("expected voted flag rendered as Yes, got %q", first[7].Value)
	}
}

func TestExportResultsAddsPerCandidateColumns(t *testing.T) {
	service := newService()

	data, err := service.Export(context.Background(), "results")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Rows) != 2 {
		t.Fatalf("expected one row per poll, got %d", len(data.Rows))
	}
	row := data.Rows[0]
	if row[0].Value != "Class Representative" {
		t.Fatalf("unexpected poll title: %q", row[0].Value)
	}
	if row[5].Label != "Total Votes" || row[5].Value != "2" {
		t.Fatalf("unexpected total votes cell: %+v", row[5])
	}
	if row[7].Label != "Turnout %" || row[7].Value != "66.7" {
		t.Fatalf("unexpected turnout cell: %+v", row[7])
	}
	if row[8].Label != "Votes: Asha" || row[8].Value != "1" {
		t.Fatalf("unexpected candidate column: %+v", row[8])
	}
	if row[9].Label != "Votes: Ravi" || row[9].Value != "1" {
		t.Fatalf("unexpected candidate column: %+v", row[9])
	}

	closed := data.Rows[1]
	if closed[7].Value != "0.0" {
		t.Fatalf("expected zero turnout for unvoted poll, got %q", closed[7].Value)
	}
}

func TestExportDetailedVotesJoinsVoterIdentity(t *testing.T) {
	service := newService()

	data, err := service.Export(context.Background(), "detailed-votes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data.Rows) != 2 {
		t.Fatalf("expected one row per ballot, got %d", len(data.Rows))
	}
	row := data.Rows[0]
	if row[0].Value != "Class Representative" {
		t.Fatalf("expected poll title resolved, got %q", row[0].Value)
	}
	if row[1].Value != "21ADS001" || row[2].Value != "Student 21ADS001" {
		t.Fatalf("expected voter identity joined, got %+v", row[1:3])
	}
	if row[7].Value != "2026-03-02 10:00:00" {
		t.Fatalf("unexpected cast timestamp: %q", row[7].Value)
	}
}

func TestExportRejectsUnknownType(t *testing.T) {
	service := newService()

	_, err := service.Export(context.Background(), "ballots")
	if !errors.Is(err, domainerrors.ErrInvalidExportType) {
		t.Fatalf("expected ErrInvalidExportType, got %v", err)
	}
}

func TestExportFailsOnEmptyData(t *testing.T) {
	service := newService()
	service.Voters = fakeVoters{}
	service.Polls = fakePolls{}
	service.Votes = fakeVotes{}

	for _, exportType := range []string{"voters", "results", "detailed-votes"} {
		if _, err := service.Export(context.Background(), exportType); !errors.Is(err, domainerrors.ErrNoData) {
			t.Fatalf("expected ErrNoData for %s export, got %v", exportType, err)
		}
	}
}
