package auth

import (
	"context"
	"time"
)

// AdminUser is a back-office account. Admins authenticate with email and
// password and receive a JWT; they never appear in the attendance log.
type AdminUser struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (AdminUser, error)
}
