package httpadapter

import (
	"context"
	"log/slog"

	"campusvote/contexts/election/analytics-service/application"
	httptransport "campusvote/contexts/election/analytics-service/transport/http"
)

type Handler struct {
	Analytics application.Service
	Logger    *slog.Logger
}

func (h Handler) DashboardHandler(ctx context.Context) (httptransport.DashboardResponse, error) {
	dashboard, err := h.Analytics.GetDashboard(ctx)
	if err != nil {
		return httptransport.DashboardResponse{}, err
	}
	resp := httptransport.DashboardResponse{
		Success: true,
		Overview: httptransport.OverviewResponse{
			TotalVoters:      dashboard.Overview.TotalVoters,
			VotedCount:       dashboard.Overview.VotedCount,
			NotVotedCount:    dashboard.Overview.NotVotedCount,
			VotingPercentage: dashboard.Overview.VotingPercentage,
			TotalPolls:       dashboard.Overview.TotalPolls,
			ActivePolls:      dashboard.Overview.ActivePolls,
			TotalVotes:       dashboard.Overview.TotalVotes,
		},
		ByYear:        mapBreakdowns(dashboard.ByYear),
		ByDepartment:  mapBreakdowns(dashboard.ByDepartment),
		ByYearSection: mapBreakdowns(dashboard.ByYearSection),
		Trends:        make([]httptransport.TrendPointResponse, 0, len(dashboard.Trends)),
		TopPolls:      make([]httptransport.PollActivityResponse, 0, len(dashboard.TopPolls)),
	}
	for _, point := range dashboard.Trends {
		resp.Trends = append(resp.Trends, httptransport.TrendPointResponse{
			Date:  point.Date,
			Votes: point.Votes,
		})
	}
	for _, row := range dashboard.TopPolls {
		resp.TopPolls = append(resp.TopPolls, httptransport.PollActivityResponse{
			PollID:           row.PollID,
			Title:            row.Title,
			TargetYear:       row.TargetYear,
			TargetSection:    row.TargetSection,
			TargetDepartment: row.TargetDepartment,
			Votes:            row.Votes,
		})
	}
	return resp, nil
}

// ExportHandler returns the raw export set. The outer server encodes it
// as CSV since the column set varies per poll.
func (h Handler) ExportHandler(ctx context.Context, exportType string) (application.ExportData, error) {
	return h.Analytics.Export(ctx, exportType)
}

func mapBreakdowns(rows []application.Breakdown) []httptransport.BreakdownResponse {
	out := make([]httptransport.BreakdownResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, httptransport.BreakdownResponse{
			Key:   row.Key,
			Total: row.Total,
			Voted: row.Voted,
		})
	}
	return out
}
