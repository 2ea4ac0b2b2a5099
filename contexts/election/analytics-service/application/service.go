package application

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	domainerrors "campusvote/contexts/election/analytics-service/domain/errors"
	"campusvote/contexts/election/analytics-service/ports"
)

// Export set identifiers accepted by Export.
const (
	ExportVoters        = "voters"
	ExportResults       = "results"
	ExportDetailedVotes = "detailed-votes"
)

const (
	trendWindowDays = 30
	topActivePolls  = 10
	timestampLayout = "2006-01-02 15:04:05"
)

type Service struct {
	Voters ports.VoterReader
	Polls  ports.PollReader
	Votes  ports.VoteReader
	Ledger ports.LedgerAnalytics
	Logger *slog.Logger
}

// Overview is the headline participation summary.
type Overview struct {
	TotalVoters      int
	VotedCount       int
	NotVotedCount    int
	VotingPercentage int
	TotalPolls       int
	ActivePolls      int
	TotalVotes       int
}

// Breakdown is one grouped participation row.
type Breakdown struct {
	Key   string
	Total int
	Voted int
}

// Dashboard is the full admin analytics payload.
type Dashboard struct {
	Overview      Overview
	ByYear        []Breakdown
	ByDepartment  []Breakdown
	ByYearSection []Breakdown
	Trends        []ports.TrendPoint
	TopPolls      []ports.PollActivity
}

func (s Service) GetOverview(ctx context.Context) (Overview, error) {
	voters, err := s.Voters.ListVoters(ctx)
	if err != nil {
		return Overview{}, err
	}
	polls, err := s.Polls.ListPolls(ctx)
	if err != nil {
		return Overview{}, err
	}
	totalVotes, err := s.Votes.CountVotes(ctx)
	if err != nil {
		return Overview{}, err
	}

	overview := Overview{
		TotalVoters: len(voters),
		TotalPolls:  len(polls),
		TotalVotes:  totalVotes,
	}
	for _, voter := range voters {
		if voter.HasVoted {
			overview.VotedCount++
		}
	}
	overview.NotVotedCount = overview.TotalVoters - overview.VotedCount
	if overview.TotalVoters > 0 {
		overview.VotingPercentage = int(math.Round(float64(overview.VotedCount) / float64(overview.TotalVoters) * 100))
	}
	for _, poll := range polls {
		if poll.IsActive {
			overview.ActivePolls++
		}
	}
	return overview, nil
}

func (s Service) VotersByYear(ctx context.Context) ([]Breakdown, error) {
	voters, err := s.Voters.ListVoters(ctx)
	if err != nil {
		return nil, err
	}
	rows := breakdown(voters, func(v ports.VoterSnapshot) string { return v.Year })
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows, nil
}

// VotersByDepartment sorts by group size, largest first, so the busiest
// departments lead the dashboard chart.
func (s Service) VotersByDepartment(ctx context.Context) ([]Breakdown, error) {
	voters, err := s.Voters.ListVoters(ctx)
	if err != nil {
		return nil, err
	}
	rows := breakdown(voters, func(v ports.VoterSnapshot) string { return v.Department })
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Key < rows[j].Key
	})
	return rows, nil
}

func (s Service) VotersByYearSection(ctx context.Context) ([]Breakdown, error) {
	voters, err := s.Voters.ListVoters(ctx)
	if err != nil {
		return nil, err
	}
	rows := breakdown(voters, func(v ports.VoterSnapshot) string {
		return v.Year + "-" + v.Section
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows, nil
}

// GetDashboard assembles the complete analytics payload served on the
// admin analytics route.
func (s Service) GetDashboard(ctx context.Context) (Dashboard, error) {
	overview, err := s.GetOverview(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	byYear, err := s.VotersByYear(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	byDepartment, err := s.VotersByDepartment(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	byYearSection, err := s.VotersByYearSection(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	trends, err := s.Ledger.VotingTrend(ctx, trendWindowDays)
	if err != nil {
		return Dashboard{}, err
	}
	topPolls, err := s.Ledger.MostActivePolls(ctx, topActivePolls)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{
		Overview:      overview,
		ByYear:        byYear,
		ByDepartment:  byDepartment,
		ByYearSection: byYearSection,
		Trends:        trends,
		TopPolls:      topPolls,
	}, nil
}

// Field is one labelled cell of an export row. Rows keep field order so
// the CSV encoder can derive columns without a schema.
type Field struct {
	Label string
	Value string
}

// ExportData is a complete export set: the type tag plus ordered rows.
type ExportData struct {
	Type string
	Rows [][]Field
}

// Export produces one of the three tabular export sets. An unknown set
// name fails with ErrInvalidExportType; an empty result set fails with
// ErrNoData so callers never stream an empty file.
func (s Service) Export(ctx context.Context, exportType string) (ExportData, error) {
	var (
		data ExportData
		err  error
	)
	switch strings.TrimSpace(exportType) {
	case ExportVoters:
		data, err = s.exportVoters(ctx)
	case ExportResults:
		data, err = s.exportResults(ctx)
	case ExportDetailedVotes:
		data, err = s.exportDetailedVotes(ctx)
	default:
		return ExportData{}, domainerrors.ErrInvalidExportType
	}
	if err != nil {
		return ExportData{}, err
	}
	resolveLogger(s.Logger).Debug("analytics export prepared",
		"event", "analytics_export_prepared",
		"module", "election/analytics-service",
		"layer", "application",
		"export_type", data.Type,
		"rows", len(data.Rows),
	)
	return data, nil
}

func (s Service) exportVoters(ctx context.Context) (ExportData, error) {
	voters, err := s.Voters.ListVoters(ctx)
	if err != nil {
		return ExportData{}, err
	}
	if len(voters) == 0 {
		return ExportData{}, domainerrors.ErrNoData
	}
	data := ExportData{Type: ExportVoters, Rows: make([][]Field, 0, len(voters))}
	for _, voter := range voters {
		data.Rows = append(data.Rows, []Field{
			{Label: "Registration Number", Value: voter.RegNo},
			{Label: "Name", Value: voter.Name},
			{Label: "Email", Value: voter.Email},
			{Label: "Year", Value: voter.Year},
			{Label: "Section", Value: voter.Section},
			{Label: "Department", Value: voter.Department},
			{Label: "Password", Value: voter.Password},
			{Label: "Has Voted", Value: yesNo(voter.HasVoted)},
			{Label: "Created At", Value: formatTimestamp(voter.CreatedAt)},
		})
	}
	return data, nil
}

func (s Service) exportResults(ctx context.Context) (ExportData, error) {
	polls, err := s.Polls.ListPolls(ctx)
	if err != nil {
		return ExportData{}, err
	}
	if len(polls) == 0 {
		return ExportData{}, domainerrors.ErrNoData
	}
	votes, err := s.Votes.ListVotes(ctx)
	if err != nil {
		return ExportData{}, err
	}
	counts := make(map[string]map[string]int, len(polls))
	totals := make(map[string]int, len(polls))
	for _, vote := range votes {
		if counts[vote.PollID] == nil {
			counts[vote.PollID] = make(map[string]int)
		}
		counts[vote.PollID][vote.Candidate]++
		totals[vote.PollID]++
	}

	data := ExportData{Type: ExportResults, Rows: make([][]Field, 0, len(polls))}
	for _, poll := range polls {
		row := []Field{
			{Label: "Poll Title", Value: poll.Title},
			{Label: "Target Year", Value: poll.TargetYear},
			{Label: "Target Section", Value: poll.TargetSection},
			{Label: "Target Department", Value: poll.TargetDepartment},
			{Label: "Status", Value: pollStatus(poll.IsActive)},
			{Label: "Total Votes", Value: fmt.Sprintf("%d", totals[poll.ID])},
			{Label: "Eligible Voters", Value: fmt.Sprintf("%d", poll.EligibleVotersCount)},
			{Label: "Turnout %", Value: turnout(totals[poll.ID], poll.EligibleVotersCount)},
		}
		for _, candidate := range poll.Candidates {
			row = append(row, Field{
				Label: "Votes: " + candidate,
				Value: fmt.Sprintf("%d", counts[poll.ID][candidate]),
			})
		}
		data.Rows = append(data.Rows, row)
	}
	return data, nil
}

func (s Service) exportDetailedVotes(ctx context.Context) (ExportData, error) {
	votes, err := s.Votes.ListVotes(ctx)
	if err != nil {
		return ExportData{}, err
	}
	if len(votes) == 0 {
		return ExportData{}, domainerrors.ErrNoData
	}
	polls, err := s.Polls.ListPolls(ctx)
	if err != nil {
		return ExportData{}, err
	}
	titles := make(map[string]string, len(polls))
	for _, poll := range polls {
		titles[poll.ID] = poll.Title
	}
	voters, err := s.Voters.ListVoters(ctx)
	if err != nil {
		return ExportData{}, err
	}
	voterByRef := make(map[string]ports.VoterSnapshot, len(voters))
	for _, voter := range voters {
		voterByRef[voter.RegNo] = voter
	}

	data := ExportData{Type: ExportDetailedVotes, Rows: make([][]Field, 0, len(votes))}
	for _, vote := range votes {
		voter := voterByRef[vote.VoterRef]
		data.Rows = append(data.Rows, []Field{
			{Label: "Poll Title", Value: titles[vote.PollID]},
			{Label: "Registration Number", Value: vote.VoterRef},
			{Label: "Name", Value: voter.Name},
			{Label: "Year", Value: voter.Year},
			{Label: "Section", Value: voter.Section},
			{Label: "Department", Value: voter.Department},
			{Label: "Candidate", Value: vote.Candidate},
			{Label: "Cast At", Value: formatTimestamp(vote.CastAt)},
		})
	}
	return data, nil
}

func breakdown(voters []ports.VoterSnapshot, key func(ports.VoterSnapshot) string) []Breakdown {
	index := make(map[string]*Breakdown)
	order := make([]string, 0)
	for _, voter := range voters {
		k := key(voter)
		row, ok := index[k]
		if !ok {
			row = &Breakdown{Key: k}
			index[k] = row
			order = append(order, k)
		}
		row.Total++
		if voter.HasVoted {
			row.Voted++
		}
	}
	out := make([]Breakdown, 0, len(order))
	for _, k := range order {
		out = append(out, *index[k])
	}
	return out
}

func turnout(votes int, eligible int) string {
	if eligible <= 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(votes)/float64(eligible)*100)
}

func pollStatus(active bool) string {
	if active {
		return "Active"
	}
	return "Inactive"
}

func yesNo(value bool) string {
	if value {
		return "Yes"
	}
	return "No"
}

func formatTimestamp(at time.Time) string {
	if at.IsZero() {
		return ""
	}
	return at.UTC().Format(timestampLayout)
}
