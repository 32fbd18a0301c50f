package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/attendance"
	"github.com/cmrl-attendance/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// eventColumns is the canonical select list; every scanEvent call site
// must select exactly these columns in this order.
const eventColumns = `
	id, employee_pk, employee_id, name, department,
	check_in_time, check_in_latitude, check_in_longitude, is_late,
	check_out_time, check_out_latitude, check_out_longitude,
	close_reason, created_at`

// workShiftCondition excludes system access markers so queries over work
// shifts never pick up SYSTEM_LOGIN or SYSTEM_LOGOUT rows.
const workShiftCondition = `(close_reason IS NULL OR close_reason NOT IN ('SYSTEM_LOGIN', 'SYSTEM_LOGOUT'))`

type eventRepository struct {
	db *database.DB
}

// NewEventRepository creates a PostgreSQL-backed attendance event repository.
func NewEventRepository(db *database.DB) attendance.EventRepository {
	return &eventRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (attendance.Event, error) {
	var e attendance.Event
	err := row.Scan(
		&e.ID, &e.EmployeePK, &e.EmployeeID, &e.Name, &e.Department,
		&e.CheckInTime, &e.CheckInLatitude, &e.CheckInLongitude, &e.IsLate,
		&e.CheckOutTime, &e.CheckOutLatitude, &e.CheckOutLongitude,
		&e.CloseReason, &e.CreatedAt,
	)
	return e, err
}

// Create implements attendance.EventRepository.
func (r *eventRepository) Create(ctx context.Context, e attendance.Event) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_events (
			employee_pk, employee_id, name, department,
			check_in_time, check_in_latitude, check_in_longitude, is_late,
			check_out_time, check_out_latitude, check_out_longitude, close_reason
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		e.EmployeePK,
		e.EmployeeID,
		e.Name,
		e.Department,
		e.CheckInTime,
		e.CheckInLatitude,
		e.CheckInLongitude,
		e.IsLate,
		e.CheckOutTime,
		e.CheckOutLatitude,
		e.CheckOutLongitude,
		e.CloseReason,
	).Scan(&e.ID, &e.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// The partial unique index rejected a second open work shift.
			return attendance.Event{}, attendance.ErrAlreadyClockedIn
		}
		return attendance.Event{}, fmt.Errorf("failed to create attendance event: %w", err)
	}

	return e, nil
}

// GetOpenShift implements attendance.EventRepository.
func (r *eventRepository) GetOpenShift(ctx context.Context, employeePK int64) (*attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE employee_pk = $1
		  AND check_out_time IS NULL
		  AND ` + workShiftCondition + `
		ORDER BY check_in_time DESC
		LIMIT 1
	`

	e, err := scanEvent(q.QueryRow(ctx, query, employeePK))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // employee is clocked out
		}
		return nil, fmt.Errorf("failed to get open shift: %w", err)
	}

	return &e, nil
}

// GetByIDForEmployee implements attendance.EventRepository.
func (r *eventRepository) GetByIDForEmployee(ctx context.Context, id, employeePK int64) (attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE id = $1
		  AND employee_pk = $2
	`

	e, err := scanEvent(q.QueryRow(ctx, query, id, employeePK))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Event{}, attendance.ErrEventNotFound
		}
		return attendance.Event{}, fmt.Errorf("failed to get event by id: %w", err)
	}

	return e, nil
}

// CloseOpenShift implements attendance.EventRepository. The WHERE clause
// only matches an open work shift, so concurrent closes of the same row
// resolve to exactly one affected update.
func (r *eventRepository) CloseOpenShift(ctx context.Context, req attendance.CloseShift) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance_events
		SET check_out_time = $1,
		    check_out_latitude = $2,
		    check_out_longitude = $3,
		    close_reason = $4
		WHERE id = $5
		  AND employee_pk = $6
		  AND check_out_time IS NULL
		  AND ` + workShiftCondition + `
	`

	tag, err := q.Exec(ctx, query,
		req.CheckOutTime,
		req.Latitude,
		req.Longitude,
		req.Reason,
		req.EventID,
		req.EmployeePK,
	)
	if err != nil {
		return false, fmt.Errorf("failed to close shift: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// ListWorkShiftsInRange implements attendance.EventRepository.
func (r *eventRepository) ListWorkShiftsInRange(ctx context.Context, from, to time.Time, employeeID *string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE check_in_time >= $1
		  AND check_in_time < $2
		  AND ` + workShiftCondition + `
	`
	args := []any{from, to}
	if employeeID != nil {
		query += ` AND employee_id = $3`
		args = append(args, *employeeID)
	}
	query += ` ORDER BY employee_id ASC, check_in_time ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list work shifts: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListRecentWorkShifts implements attendance.EventRepository.
func (r *eventRepository) ListRecentWorkShifts(ctx context.Context, employeePK int64, limit int) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE employee_pk = $1
		  AND ` + workShiftCondition + `
		ORDER BY check_in_time DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeePK, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent work shifts: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// ListAllForEmployee implements attendance.EventRepository.
func (r *eventRepository) ListAllForEmployee(ctx context.Context, employeePK int64) ([]attendance.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + eventColumns + `
		FROM attendance_events
		WHERE employee_pk = $1
		ORDER BY check_in_time DESC
	`

	rows, err := q.Query(ctx, query, employeePK)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	return collectEvents(rows)
}

// DeleteForEmployee implements attendance.EventRepository.
func (r *eventRepository) DeleteForEmployee(ctx context.Context, employeePK int64) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM attendance_events WHERE employee_pk = $1`, employeePK); err != nil {
		return fmt.Errorf("failed to delete events: %w", err)
	}

	return nil
}

func collectEvents(rows pgx.Rows) ([]attendance.Event, error) {
	var events []attendance.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read events: %w", err)
	}
	return events, nil
}
