package auth

import (
	"github.com/cmrl-attendance/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// EMPLOYEE AUTH DTOs
// ========================================

// ActionSetPassword tells the client to route the employee into the
// first-time password setup flow.
const ActionSetPassword = "SET_PASSWORD"

type EmployeeLoginRequest struct {
	EmployeeID string   `json:"employeeId"`
	Password   string   `json:"password,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

func (r *EmployeeLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeProfile struct {
	EmployeeID    string `json:"employeeId"`
	Name          string `json:"name"`
	Email         string `json:"email,omitempty"`
	Department    string `json:"department"`
	Role          string `json:"role"`
	DateOfJoining string `json:"dateOfJoining,omitempty"`
}

type EmployeeLoginResponse struct {
	Message         string          `json:"message"`
	EmployeeProfile EmployeeProfile `json:"employeeProfile"`
	ActionRequired  string          `json:"actionRequired,omitempty"`
	Token           string          `json:"token,omitempty"`
}

type SetPasswordRequest struct {
	EmployeeID  string `json:"employeeId"`
	NewPassword string `json:"newPassword"`
}

func (r *SetPasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}

	if len(r.NewPassword) < 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "newPassword",
			Message: "password must be at least 6 characters long",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeLogoutRequest struct {
	EmployeeID string `json:"employeeId"`
}

// ========================================
// ADMIN AUTH DTOs
// ========================================

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *AdminLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdminProfile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AdminLoginResponse struct {
	Token string       `json:"token"`
	Admin AdminProfile `json:"admin"`
}
