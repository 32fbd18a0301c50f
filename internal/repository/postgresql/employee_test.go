package postgresql

import (
	"context"
	"errors"
	"testing"

	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/employee"
	"github.com/cmrl-attendance/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

func TestEmployeeRepository_Create_Duplicate(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(&database.DB{Pool: mock})

	mock.ExpectQuery("INSERT INTO employees").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err = repo.Create(context.Background(), employee.Employee{EmployeeID: "E1001"})
	if !errors.Is(err, employee.ErrEmployeeExists) {
		t.Fatalf("expected ErrEmployeeExists, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEmployeeRepository_Update_NoFields(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(&database.DB{Pool: mock})

	err = repo.Update(context.Background(), 7, employee.UpdateEmployeeRequest{})
	if !errors.Is(err, employee.ErrNoFieldsToUpdate) {
		t.Fatalf("expected ErrNoFieldsToUpdate, got %v", err)
	}
}

func TestEmployeeRepository_SetPassword_AlreadySet(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	repo := NewEmployeeRepository(&database.DB{Pool: mock})

	mock.ExpectExec("UPDATE employees").
		WithArgs("hash", "E1001").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	updated, err := repo.SetPassword(context.Background(), "E1001", "hash")
	if err != nil {
		t.Fatalf("SetPassword returned error: %v", err)
	}
	if updated {
		t.Fatalf("expected no row to match once the password is set")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
