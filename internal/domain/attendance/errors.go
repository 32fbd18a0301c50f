package attendance

import "errors"

// Attendance domain errors
var (
	// Clock-in errors
	ErrAlreadyClockedIn = errors.New("employee is already actively clocked in for a work shift")

	// Clock-out errors
	ErrAlreadyClockedOut = errors.New("this attendance record is already checked out")
	ErrNotWorkShift      = errors.New("cannot perform work clock-out on a system login/logout event")

	// General errors
	ErrEventNotFound = errors.New("attendance record not found for this employee")
)
