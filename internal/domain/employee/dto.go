package employee

import (
	"github.com/cmrl-attendance/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// EMPLOYEE DTOs
// ========================================

type CreateEmployeeRequest struct {
	EmployeeID    string `json:"employeeId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	Role          string `json:"role"`
	DateOfJoining string `json:"dateOfJoining"` // YYYY-MM-DD
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

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

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	}

	if _, valid := validator.IsValidDate(r.DateOfJoining); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "dateOfJoining",
			Message: "dateOfJoining must be a valid date in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	EmployeeID    *string `json:"employeeId,omitempty"`
	Name          *string `json:"name,omitempty"`
	Email         *string `json:"email,omitempty"`
	Department    *string `json:"department,omitempty"`
	Role          *string `json:"role,omitempty"`
	DateOfJoining *string `json:"dateOfJoining,omitempty"` // YYYY-MM-DD
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == nil && r.Name == nil && r.Email == nil &&
		r.Department == nil && r.Role == nil && r.DateOfJoining == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "no fields provided for update",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "invalid email format",
		})
	}

	if r.DateOfJoining != nil {
		if _, valid := validator.IsValidDate(*r.DateOfJoining); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "dateOfJoining",
				Message: "dateOfJoining must be a valid date in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID            int64  `json:"id"`
	EmployeeID    string `json:"employeeId"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	Role          string `json:"role"`
	DateOfJoining string `json:"dateOfJoining"`
	CreatedAt     string `json:"createdAt"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            e.ID,
		EmployeeID:    e.EmployeeID,
		Name:          e.Name,
		Email:         e.Email,
		Department:    e.Department,
		Role:          e.Role,
		DateOfJoining: e.DateOfJoining.Format("2006-01-02"),
		CreatedAt:     e.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
