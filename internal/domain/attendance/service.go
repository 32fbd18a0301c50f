package attendance

import "context"

// AttendanceService covers the clock-in/clock-out transition guard, the
// live status evaluation, and the per-employee history views.
type AttendanceService interface {
	// ClockIn opens a new work shift. Fails with employee.ErrEmployeeNotFound
	// for an unknown employee and ErrAlreadyClockedIn when a shift is
	// already open.
	ClockIn(ctx context.Context, req ClockInRequest) (ClockInResponse, error)

	// ClockOut closes the referenced open shift. Fails with
	// ErrEventNotFound, ErrNotWorkShift, or ErrAlreadyClockedOut.
	ClockOut(ctx context.Context, req ClockOutRequest) (ClockOutResponse, error)

	// Status derives the employee's live status from the event log.
	// Unknown employee ids yield the clocked-out status, not an error.
	Status(ctx context.Context, employeeID string) (StatusResponse, error)

	// Recent returns the employee's work-shift records grouped into at
	// most the five most recent distinct calendar days.
	Recent(ctx context.Context, employeeID string) ([]DayGroup, error)

	// History returns every classified record for the employee, markers
	// included, newest first.
	History(ctx context.Context, employeeID string) ([]EventView, error)
}
