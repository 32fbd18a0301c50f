package report

import (
	"fmt"
	"time"

	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/attendance"
	"github.com/cmrl-attendance/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// MONTHLY ATTENDANCE REPORT
// ========================================

// MonthlyReportRequest selects one calendar month (UTC). Month is
// zero-based (0 = January), matching the client wire format.
type MonthlyReportRequest struct {
	EmployeeID *string `json:"employeeIdString,omitempty"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
}

func (r *MonthlyReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 0 || r.Month > 11 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 0 and 11",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2000 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2000 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Window returns the UTC half-open interval [start, end) of the
// requested month.
func (r *MonthlyReportRequest) Window() (time.Time, time.Time) {
	start := time.Date(r.Year, time.Month(r.Month+1), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// EmployeeReport is one employee's slice of the monthly report. Counts
// are per distinct calendar day: a day is present when it has at least
// one clock-in, and late when its first clock-in was flagged late.
type EmployeeReport struct {
	EmployeeID  string                 `json:"employeeId"`
	Name        string                 `json:"userName"`
	PresentDays int                    `json:"presentDaysCount"`
	LateDays    int                    `json:"lateDaysCount"`
	Records     []attendance.EventView `json:"records"`
}
