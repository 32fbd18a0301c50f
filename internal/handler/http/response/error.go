package response

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/attendance"
	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/auth"
	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/employee"
	"github.com/cmrl-attendance/attendance-backend-go/internal/pkg/validator"
	"github.com/jackc/pgx/v5/pgconn"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	if isTransient(err) {
		ServiceUnavailable(w, "Service temporarily unavailable, please retry")
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyClockedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrAlreadyClockedOut):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotWorkShift):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrEventNotFound):
		NotFound(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeExists):
		Conflict(w, "Employee with this ID or email already exists")
	case errors.Is(err, employee.ErrPasswordAlreadySet):
		Conflict(w, "Password has already been set")
	case errors.Is(err, employee.ErrNoFieldsToUpdate):
		BadRequest(w, "No fields provided for update", nil)

	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid credentials")
	case errors.Is(err, auth.ErrPasswordRequired):
		Unauthorized(w, "Password is required")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrAdminRequired):
		Forbidden(w, "Admin privilege required")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

// isTransient reports whether the failure is worth retrying: timeouts,
// cancelled contexts and connection-level database errors.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	return pgconn.Timeout(err)
}
