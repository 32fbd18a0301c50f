package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/report"
	"github.com/cmrl-attendance/attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	Monthly(w http.ResponseWriter, r *http.Request)
}

type ReportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &ReportHandlerImpl{reportService: reportService}
}

// Monthly implements ReportHandler. Month is zero-based in the query
// string, matching the admin UI's JavaScript date handling.
func (h *ReportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	month, err := strconv.Atoi(query.Get("month"))
	if err != nil {
		response.BadRequest(w, "month must be an integer between 0 and 11", nil)
		return
	}
	year, err := strconv.Atoi(query.Get("year"))
	if err != nil {
		response.BadRequest(w, "year must be an integer", nil)
		return
	}

	req := report.MonthlyReportRequest{Month: month, Year: year}
	if v := query.Get("employeeIdString"); v != "" {
		req.EmployeeID = &v
	}

	reports, err := h.reportService.Monthly(r.Context(), req)
	if err != nil {
		slog.Error("Monthly report service error", "month", month, "year", year, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}
