package attendance

import (
	"context"
	"time"
)

// CloseShift carries the out-triple and close reason applied to an open
// work shift by a clock-out.
type CloseShift struct {
	EventID      int64
	EmployeePK   int64
	CheckOutTime time.Time
	Latitude     *float64
	Longitude    *float64
	Reason       *string
}

// EventRepository defines data access over the single ordered attendance
// event log. Open-shift uniqueness is enforced by the store (partial
// unique index), not by application-level locking, so concurrent writers
// for the same employee stay correct.
type EventRepository interface {
	// Create appends a new event (work clock-in or system marker).
	// Returns ErrAlreadyClockedIn when the open-shift uniqueness
	// constraint rejects a second open work shift.
	Create(ctx context.Context, e Event) (Event, error)

	// GetOpenShift returns the employee's open work shift, or nil when
	// the employee is clocked out. System markers never qualify.
	GetOpenShift(ctx context.Context, employeePK int64) (*Event, error)

	// GetByIDForEmployee retrieves one event scoped to an employee.
	// Used to diagnose a failed conditional close.
	GetByIDForEmployee(ctx context.Context, id, employeePK int64) (Event, error)

	// CloseOpenShift fills the out-triple with a single conditional
	// update and reports whether a row was affected. The WHERE clause is
	// the atomicity boundary: it only matches an open, non-marker row.
	CloseOpenShift(ctx context.Context, req CloseShift) (bool, error)

	// ListWorkShiftsInRange returns work-shift events whose check-in
	// falls in [from, to), ordered by employee string id then check-in
	// ascending, optionally filtered to one employee string id.
	ListWorkShiftsInRange(ctx context.Context, from, to time.Time, employeeID *string) ([]Event, error)

	// ListRecentWorkShifts returns the newest work-shift events for an
	// employee, check-in descending, capped at limit rows.
	ListRecentWorkShifts(ctx context.Context, employeePK int64, limit int) ([]Event, error)

	// ListAllForEmployee returns every stored event for an employee,
	// markers included, check-in descending.
	ListAllForEmployee(ctx context.Context, employeePK int64) ([]Event, error)

	// DeleteForEmployee removes all events for an employee. Only used
	// when an admin deletes the employee record itself.
	DeleteForEmployee(ctx context.Context, employeePK int64) error
}
