package auth

import "context"

type AuthService interface {
	// EmployeeLogin validates credentials and, on a successful password
	// login, appends a SYSTEM_LOGIN marker to the attendance log. When
	// the employee has no password yet the response carries the
	// SET_PASSWORD action instead of a token.
	EmployeeLogin(ctx context.Context, req EmployeeLoginRequest) (EmployeeLoginResponse, error)

	// SetEmployeePassword completes first-time password setup.
	SetEmployeePassword(ctx context.Context, req SetPasswordRequest) error

	// EmployeeLogout records a SYSTEM_LOGOUT marker. Best effort: an
	// unknown employee id is not an error.
	EmployeeLogout(ctx context.Context, req EmployeeLogoutRequest) error

	AdminLogin(ctx context.Context, req AdminLoginRequest) (AdminLoginResponse, error)
}
