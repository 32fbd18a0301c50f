package attendance

import (
	"time"
)

// Close reason markers for instantaneous system access events. Any other
// close reason (or nil) marks a work shift.
const (
	CloseReasonSystemLogin  = "SYSTEM_LOGIN"
	CloseReasonSystemLogout = "SYSTEM_LOGOUT"
)

// Event is one stored attendance row. Employee identity fields are
// snapshots copied at creation time so historical reports stay stable
// when the employee master record is edited later.
type Event struct {
	ID         int64
	EmployeePK int64

	EmployeeID string
	Name       string
	Department string

	CheckInTime      time.Time
	CheckInLatitude  *float64
	CheckInLongitude *float64
	IsLate           bool

	CheckOutTime      *time.Time
	CheckOutLatitude  *float64
	CheckOutLongitude *float64

	CloseReason *string

	CreatedAt time.Time
}

type Kind int

const (
	KindWorkShift Kind = iota
	KindSystemLogin
	KindSystemLogout
)

// Kind classifies the stored row as a work shift or a system marker.
func (e Event) Kind() Kind {
	if e.CloseReason == nil {
		return KindWorkShift
	}
	switch *e.CloseReason {
	case CloseReasonSystemLogin:
		return KindSystemLogin
	case CloseReasonSystemLogout:
		return KindSystemLogout
	default:
		return KindWorkShift
	}
}

// IsOpen reports whether the event is a work shift that has not been
// closed yet. At most one open shift may exist per employee.
func (e Event) IsOpen() bool {
	return e.Kind() == KindWorkShift && e.CheckOutTime == nil
}
