package report

import (
	"context"
	"sort"

	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/attendance"
	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/report"
)

type ReportServiceImpl struct {
	attendance.EventRepository
}

func NewReportService(eventRepo attendance.EventRepository) report.ReportService {
	return &ReportServiceImpl{EventRepository: eventRepo}
}

// Monthly implements report.ReportService. Present and late days are
// counted per distinct calendar day (UTC): a day is present when it has
// any clock-in and late only when the day's first clock-in was late, so
// a late morning followed by a second on-time shift still counts one
// late day and one present day.
func (s *ReportServiceImpl) Monthly(ctx context.Context, req report.MonthlyReportRequest) ([]report.EmployeeReport, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	from, to := req.Window()
	events, err := s.EventRepository.ListWorkShiftsInRange(ctx, from, to, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	type accumulator struct {
		name    string
		events  []attendance.Event
		firstIn map[string]attendance.Event // by calendar date
	}

	byEmployee := make(map[string]*accumulator)
	for _, e := range events {
		acc, ok := byEmployee[e.EmployeeID]
		if !ok {
			acc = &accumulator{firstIn: make(map[string]attendance.Event)}
			byEmployee[e.EmployeeID] = acc
		}
		// The newest snapshot name wins so renamed employees show their
		// latest recorded name.
		acc.name = e.Name
		acc.events = append(acc.events, e)

		date := e.CheckInTime.UTC().Format("2006-01-02")
		if first, seen := acc.firstIn[date]; !seen || e.CheckInTime.Before(first.CheckInTime) {
			acc.firstIn[date] = e
		}
	}

	reports := make([]report.EmployeeReport, 0, len(byEmployee))
	for employeeID, acc := range byEmployee {
		presentDays := len(acc.firstIn)
		lateDays := 0
		for _, first := range acc.firstIn {
			if first.IsLate {
				lateDays++
			}
		}

		sort.Slice(acc.events, func(i, j int) bool {
			return acc.events[i].CheckInTime.Before(acc.events[j].CheckInTime)
		})

		reports = append(reports, report.EmployeeReport{
			EmployeeID:  employeeID,
			Name:        acc.name,
			PresentDays: presentDays,
			LateDays:    lateDays,
			Records:     attendance.ClassifyAll(acc.events),
		})
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].EmployeeID < reports[j].EmployeeID
	})

	return reports, nil
}
