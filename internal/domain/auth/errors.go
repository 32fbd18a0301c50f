package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPasswordRequired   = errors.New("password is required for login")
	ErrInvalidToken       = errors.New("token is not valid")
	ErrAdminRequired      = errors.New("admin privilege required")
)
