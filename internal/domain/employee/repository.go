package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, id int64, req UpdateEmployeeRequest) error
	Delete(ctx context.Context, id int64) error

	// SetPassword stores the hash only while is_password_set is still
	// false; the conditional update makes first-time setup race-safe.
	SetPassword(ctx context.Context, employeeID string, passwordHash string) (bool, error)
}
