package attendance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/attendance"
	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/employee"
)

// recentRowLimit and recentDayLimit bound the recent-activity view:
// newest rows first, grouped into at most five distinct calendar days.
const (
	recentRowLimit = 50
	recentDayLimit = 5
)

type AttendanceServiceImpl struct {
	attendance.EventRepository
	employee.EmployeeRepository
}

func NewAttendanceService(
	eventRepo attendance.EventRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		EventRepository:    eventRepo,
		EmployeeRepository: employeeRepo,
	}
}

// ClockIn implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.ClockInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockInResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.ClockInResponse{}, err
	}

	// Cheap pre-check for the common case. The unique index on open
	// shifts is what actually keeps concurrent clock-ins out.
	open, err := s.EventRepository.GetOpenShift(ctx, emp.ID)
	if err != nil {
		return attendance.ClockInResponse{}, fmt.Errorf("failed to check open shift: %w", err)
	}
	if open != nil {
		return attendance.ClockInResponse{}, attendance.ErrAlreadyClockedIn
	}

	created, err := s.EventRepository.Create(ctx, attendance.Event{
		EmployeePK:       emp.ID,
		EmployeeID:       emp.EmployeeID,
		Name:             req.Name,
		Department:       req.Department,
		CheckInTime:      req.ParsedTimestamp(),
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		IsLate:           req.Late,
	})
	if err != nil {
		return attendance.ClockInResponse{}, err
	}

	return attendance.ClockInResponse{
		ID:         created.ID,
		EmployeeID: created.EmployeeID,
		Timestamp:  created.CheckInTime.Format(time.RFC3339),
	}, nil
}

// ClockOut implements attendance.AttendanceService. The close itself is
// one conditional update; when it affects nothing the row is re-read to
// tell a missing record, a marker and an already-closed shift apart.
func (s *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.ClockOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockOutResponse{}, err
	}

	eventID, err := strconv.ParseInt(req.ClockInRefID, 10, 64)
	if err != nil {
		return attendance.ClockOutResponse{}, attendance.ErrEventNotFound
	}

	emp, err := s.EmployeeRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}

	closeReq := attendance.CloseShift{
		EventID:      eventID,
		EmployeePK:   emp.ID,
		CheckOutTime: req.ParsedTimestamp(),
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Reason:       req.EarlyCheckoutReason,
	}

	closed, err := s.EventRepository.CloseOpenShift(ctx, closeReq)
	if err != nil {
		return attendance.ClockOutResponse{}, err
	}
	if !closed {
		return attendance.ClockOutResponse{}, s.diagnoseFailedClose(ctx, eventID, emp.ID)
	}

	return attendance.ClockOutResponse{
		ID:        eventID,
		Timestamp: closeReq.CheckOutTime.Format(time.RFC3339),
	}, nil
}

func (s *AttendanceServiceImpl) diagnoseFailedClose(ctx context.Context, eventID, employeePK int64) error {
	e, err := s.EventRepository.GetByIDForEmployee(ctx, eventID, employeePK)
	if err != nil {
		return err
	}

	if e.Kind() != attendance.KindWorkShift {
		return attendance.ErrNotWorkShift
	}
	// Either the shift was already closed or a concurrent close won.
	return attendance.ErrAlreadyClockedOut
}

// Status implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Status(ctx context.Context, employeeID string) (attendance.StatusResponse, error) {
	clockedOut := attendance.StatusResponse{Type: attendance.TypeClockOut}

	emp, err := s.EmployeeRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			// Unknown ids report clocked-out rather than an error; the
			// mobile client polls status before the employee record may
			// exist.
			return clockedOut, nil
		}
		return attendance.StatusResponse{}, err
	}

	open, err := s.EventRepository.GetOpenShift(ctx, emp.ID)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to get open shift: %w", err)
	}
	if open == nil {
		return clockedOut, nil
	}

	late := open.IsLate
	checkIn := open.CheckInTime
	return attendance.StatusResponse{
		Type:      attendance.TypeClockIn,
		ID:        &open.ID,
		Timestamp: &checkIn,
		Latitude:  open.CheckInLatitude,
		Longitude: open.CheckInLongitude,
		Late:      &late,
	}, nil
}

// Recent implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Recent(ctx context.Context, employeeID string) ([]attendance.DayGroup, error) {
	emp, err := s.EmployeeRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	events, err := s.EventRepository.ListRecentWorkShifts(ctx, emp.ID, recentRowLimit)
	if err != nil {
		return nil, err
	}

	// Events arrive newest first; keep the first five distinct check-in
	// dates and regroup.
	byDate := make(map[string][]attendance.Event)
	var dates []string
	for _, e := range events {
		date := e.CheckInTime.UTC().Format("2006-01-02")
		if _, seen := byDate[date]; !seen {
			if len(dates) == recentDayLimit {
				continue
			}
			dates = append(dates, date)
		}
		byDate[date] = append(byDate[date], e)
	}

	groups := make([]attendance.DayGroup, 0, len(dates))
	for _, date := range dates {
		dayEvents := byDate[date]
		// Within a day records run oldest first.
		sort.Slice(dayEvents, func(i, j int) bool {
			return dayEvents[i].CheckInTime.Before(dayEvents[j].CheckInTime)
		})
		groups = append(groups, attendance.DayGroup{
			Date:    date,
			Records: attendance.ClassifyAll(dayEvents),
		})
	}

	return groups, nil
}

// History implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) History(ctx context.Context, employeeID string) ([]attendance.EventView, error) {
	emp, err := s.EmployeeRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	events, err := s.EventRepository.ListAllForEmployee(ctx, emp.ID)
	if err != nil {
		return nil, err
	}

	// A closed shift expands to an in view and a later out view, so the
	// row ordering alone is not enough; order the views themselves.
	views := attendance.ClassifyAll(events)
	sort.Slice(views, func(i, j int) bool {
		return views[i].Timestamp.After(views[j].Timestamp)
	})
	return views, nil
}
