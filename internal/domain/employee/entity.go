package employee

import (
	"time"
)

type Employee struct {
	ID            int64
	EmployeeID    string
	Name          string
	Email         string
	Department    string
	Role          string
	DateOfJoining time.Time
	PasswordHash  *string
	IsPasswordSet bool
	CreatedAt     time.Time
}
