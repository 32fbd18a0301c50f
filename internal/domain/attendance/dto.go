package attendance

import (
	"time"

	"github.com/cmrl-attendance/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	EmployeeID string   `json:"employeeId"`
	Name       string   `json:"userName"`
	Department string   `json:"department"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Timestamp  string   `json:"timestamp"`
	Late       bool     `json:"late"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "userName",
			Message: "userName is required",
		})
	}

	if validator.IsEmpty(r.Department) {
		errs = append(errs, validator.ValidationError{
			Field:   "department",
			Message: "department is required",
		})
	}

	errs = append(errs, validateCoordinates(r.Latitude, r.Longitude)...)

	if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be a valid ISO8601 datetime",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// validateCoordinates requires both coordinates to be present. A pointer
// field distinguishes an omitted coordinate from a real 0 reading.
func validateCoordinates(lat, lon *float64) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if lat == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude is required",
		})
	} else if *lat < -90 || *lat > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if lon == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude is required",
		})
	} else if *lon < -180 || *lon > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	return errs
}

// ParsedTimestamp returns the request timestamp as time.Time. Only valid
// after Validate has passed.
func (r *ClockInRequest) ParsedTimestamp() time.Time {
	t, _ := validator.IsValidDateTime(r.Timestamp)
	return t
}

type ClockOutRequest struct {
	EmployeeID          string   `json:"employeeId"`
	ClockInRefID        string   `json:"clockInRefId"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	Timestamp           string   `json:"timestamp"`
	EarlyCheckoutReason *string  `json:"earlyCheckoutReason,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employeeId",
			Message: "employeeId is required",
		})
	}

	if validator.IsEmpty(r.ClockInRefID) {
		errs = append(errs, validator.ValidationError{
			Field:   "clockInRefId",
			Message: "clockInRefId is required",
		})
	} else if !validator.IsNumeric(r.ClockInRefID) {
		errs = append(errs, validator.ValidationError{
			Field:   "clockInRefId",
			Message: "clockInRefId must be a numeric event id",
		})
	}

	errs = append(errs, validateCoordinates(r.Latitude, r.Longitude)...)

	if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be a valid ISO8601 datetime",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

func (r *ClockOutRequest) ParsedTimestamp() time.Time {
	t, _ := validator.IsValidDateTime(r.Timestamp)
	return t
}

type ClockInResponse struct {
	ID         int64  `json:"id"`
	EmployeeID string `json:"employeeId"`
	Timestamp  string `json:"timestamp"`
}

type ClockOutResponse struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
}

// StatusResponse reflects the employee's live status, derived from the
// event log on every call and never cached. A clocked-out employee (or
// an unknown employee id, kept for client compatibility) gets a bare
// clock_out record.
type StatusResponse struct {
	Type      string     `json:"type"`
	ID        *int64     `json:"id,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Latitude  *float64   `json:"latitude,omitempty"`
	Longitude *float64   `json:"longitude,omitempty"`
	Late      *bool      `json:"late,omitempty"`
}

// DayGroup bundles one calendar day's classified records for the
// recent-activity view.
type DayGroup struct {
	Date    string      `json:"date"`
	Records []EventView `json:"records"`
}
