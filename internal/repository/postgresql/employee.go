package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/employee"
	"github.com/cmrl-attendance/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const employeeColumns = `
	id, employee_id, name, email, department, role,
	date_of_joining, password_hash, is_password_set, created_at`

type employeeRepository struct {
	db *database.DB
}

// NewEmployeeRepository creates a PostgreSQL-backed employee repository.
func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func scanEmployee(row rowScanner) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.Name, &e.Email, &e.Department, &e.Role,
		&e.DateOfJoining, &e.PasswordHash, &e.IsPasswordSet, &e.CreatedAt,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			employee_id, name, email, department, role, date_of_joining
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, is_password_set, created_at
	`

	err := q.QueryRow(ctx, query,
		newEmployee.EmployeeID,
		newEmployee.Name,
		newEmployee.Email,
		newEmployee.Department,
		newEmployee.Role,
		newEmployee.DateOfJoining,
	).Scan(&newEmployee.ID, &newEmployee.IsPasswordSet, &newEmployee.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.Employee{}, employee.ErrEmployeeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return newEmployee, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByID(ctx context.Context, id int64) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// GetByEmployeeID implements employee.EmployeeRepository.
func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepository) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY employee_id ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	return employees, nil
}

// Update implements employee.EmployeeRepository. Only provided fields are
// written; the SET clause is built from the non-nil request fields.
func (r *employeeRepository) Update(ctx context.Context, id int64, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, r.db)

	var sets []string
	var args []any

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.EmployeeID != nil {
		add("employee_id", *req.EmployeeID)
	}
	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Email != nil {
		add("email", *req.Email)
	}
	if req.Department != nil {
		add("department", *req.Department)
	}
	if req.Role != nil {
		add("role", *req.Role)
	}
	if req.DateOfJoining != nil {
		date, err := time.Parse("2006-01-02", *req.DateOfJoining)
		if err != nil {
			return fmt.Errorf("invalid dateOfJoining: %w", err)
		}
		add("date_of_joining", date)
	}

	if len(sets) == 0 {
		return employee.ErrNoFieldsToUpdate
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE employees SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return employee.ErrEmployeeExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// SetPassword implements employee.EmployeeRepository. The is_password_set
// guard in the WHERE clause means a concurrent first-time setup can win
// for at most one caller.
func (r *employeeRepository) SetPassword(ctx context.Context, employeeID string, passwordHash string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET password_hash = $1, is_password_set = TRUE
		WHERE employee_id = $2
		  AND is_password_set = FALSE
	`

	tag, err := q.Exec(ctx, query, passwordHash, employeeID)
	if err != nil {
		return false, fmt.Errorf("failed to set password: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}
