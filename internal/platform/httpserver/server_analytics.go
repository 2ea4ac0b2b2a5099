package httpserver

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"

	"campusvote/contexts/election/analytics-service/application"
	analyticserrors "campusvote/contexts/election/analytics-service/domain/errors"
)

func writeAnalyticsDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, analyticserrors.ErrInvalidExportType):
		writeError(w, http.StatusBadRequest, "invalid_export_type", err.Error())
	case errors.Is(err, analyticserrors.ErrNoData):
		writeError(w, http.StatusNotFound, "no_data", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleAnalyticsDashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	resp, err := s.analytics.Handler.DashboardHandler(r.Context())
	if err != nil {
		writeAnalyticsDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requireAdmin(w, r); !ok {
		return
	}
	data, err := s.analytics.Handler.ExportHandler(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		writeAnalyticsDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", data.Type+"-export.csv"))
	if err := writeExportCSV(w, data); err != nil {
		s.logger.Error("export stream failed",
			"event", "http_export_stream_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"export_type", data.Type,
			"error", err.Error(),
		)
	}
}

// writeExportCSV derives the column set from the union of row labels in
// first-appearance order; per-poll candidate columns make the set vary
// between exports.
func writeExportCSV(w http.ResponseWriter, data application.ExportData) error {
	var columns []string
	seen := make(map[string]bool)
	for _, row := range data.Rows {
		for _, field := range row {
			if !seen[field.Label] {
				seen[field.Label] = true
				columns = append(columns, field.Label)
			}
		}
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(columns); err != nil {
		return err
	}
	record := make([]string, len(columns))
	index := make(map[string]int, len(columns))
	for i, column := range columns {
		index[column] = i
	}
	for _, row := range data.Rows {
		for i := range record {
			record[i] = ""
		}
		for _, field := range row {
			record[index[field.Label]] = field.Value
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
