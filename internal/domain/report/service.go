package report

import "context"

type ReportService interface {
	// Monthly aggregates the requested month into one report entry per
	// employee that had at least one work shift in range; employees with
	// zero qualifying events are omitted.
	Monthly(ctx context.Context, req MonthlyReportRequest) ([]EmployeeReport, error)
}
