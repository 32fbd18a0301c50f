package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/auth"
	"github.com/cmrl-attendance/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type adminRepository struct {
	db *database.DB
}

// NewAdminRepository creates a PostgreSQL-backed admin account repository.
func NewAdminRepository(db *database.DB) auth.AdminRepository {
	return &adminRepository{db: db}
}

// GetByEmail implements auth.AdminRepository.
func (r *adminRepository) GetByEmail(ctx context.Context, email string) (auth.AdminUser, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, email, password_hash, created_at
		FROM admin_users
		WHERE email = $1
	`

	var a auth.AdminUser
	err := q.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.AdminUser{}, auth.ErrInvalidCredentials
		}
		return auth.AdminUser{}, fmt.Errorf("failed to get admin by email: %w", err)
	}

	return a, nil
}
