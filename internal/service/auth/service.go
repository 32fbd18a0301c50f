package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/attendance"
	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/auth"
	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/employee"
	"github.com/cmrl-attendance/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	auth.AdminRepository
	eventRepo  attendance.EventRepository
	jwtService jwt.Service
}

func NewAuthService(
	employeeRepo employee.EmployeeRepository,
	adminRepo auth.AdminRepository,
	eventRepo attendance.EventRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepo,
		AdminRepository:    adminRepo,
		eventRepo:          eventRepo,
		jwtService:         jwtService,
	}
}

func toProfile(e employee.Employee) auth.EmployeeProfile {
	return auth.EmployeeProfile{
		EmployeeID:    e.EmployeeID,
		Name:          e.Name,
		Email:         e.Email,
		Department:    e.Department,
		Role:          e.Role,
		DateOfJoining: e.DateOfJoining.Format("2006-01-02"),
	}
}

// EmployeeLogin implements auth.AuthService.
func (s *AuthServiceImpl) EmployeeLogin(ctx context.Context, req auth.EmployeeLoginRequest) (auth.EmployeeLoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.EmployeeLoginResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return auth.EmployeeLoginResponse{}, err
	}

	if !emp.IsPasswordSet {
		return auth.EmployeeLoginResponse{
			Message:         "Password setup required",
			EmployeeProfile: toProfile(emp),
			ActionRequired:  auth.ActionSetPassword,
		}, nil
	}

	if req.Password == "" {
		return auth.EmployeeLoginResponse{}, auth.ErrPasswordRequired
	}
	if emp.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*emp.PasswordHash), []byte(req.Password)) != nil {
		return auth.EmployeeLoginResponse{}, auth.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateEmployeeToken(emp.EmployeeID, emp.Name)
	if err != nil {
		return auth.EmployeeLoginResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	s.recordMarker(ctx, emp, attendance.CloseReasonSystemLogin, req.Latitude, req.Longitude)

	return auth.EmployeeLoginResponse{
		Message:         "Login successful",
		EmployeeProfile: toProfile(emp),
		Token:           token,
	}, nil
}

// recordMarker appends a system access marker to the attendance log.
// Markers carry only an in-time; the close reason alone tags them, and
// the open-shift index excludes marker reasons so they never block a
// clock-in.
func (s *AuthServiceImpl) recordMarker(ctx context.Context, emp employee.Employee, reason string, lat, lon *float64) {
	_, err := s.eventRepo.Create(ctx, attendance.Event{
		EmployeePK:       emp.ID,
		EmployeeID:       emp.EmployeeID,
		Name:             emp.Name,
		Department:       emp.Department,
		CheckInTime:      time.Now().UTC(),
		CheckInLatitude:  lat,
		CheckInLongitude: lon,
		CloseReason:      &reason,
	})
	if err != nil {
		// Access markers are best effort; a failed insert must not fail
		// the login itself.
		slog.Warn("Failed to record access marker", "employeeId", emp.EmployeeID, "reason", reason, "error", err)
	}
}

// SetEmployeePassword implements auth.AuthService.
func (s *AuthServiceImpl) SetEmployeePassword(ctx context.Context, req auth.SetPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	// Confirm the employee exists so a missing record reports NotFound
	// rather than the already-set conflict.
	if _, err := s.EmployeeRepository.GetByEmployeeID(ctx, req.EmployeeID); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	updated, err := s.EmployeeRepository.SetPassword(ctx, req.EmployeeID, string(hash))
	if err != nil {
		return err
	}
	if !updated {
		return employee.ErrPasswordAlreadySet
	}

	return nil
}

// EmployeeLogout implements auth.AuthService.
func (s *AuthServiceImpl) EmployeeLogout(ctx context.Context, req auth.EmployeeLogoutRequest) error {
	if req.EmployeeID == "" {
		return nil
	}

	emp, err := s.EmployeeRepository.GetByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil
		}
		return err
	}

	s.recordMarker(ctx, emp, attendance.CloseReasonSystemLogout, nil, nil)
	return nil
}

// AdminLogin implements auth.AuthService.
func (s *AuthServiceImpl) AdminLogin(ctx context.Context, req auth.AdminLoginRequest) (auth.AdminLoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AdminLoginResponse{}, err
	}

	admin, err := s.AdminRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		return auth.AdminLoginResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
		return auth.AdminLoginResponse{}, auth.ErrInvalidCredentials
	}

	token, _, err := s.jwtService.GenerateAdminToken(admin.ID, admin.Email, admin.Name)
	if err != nil {
		return auth.AdminLoginResponse{}, fmt.Errorf("failed to generate token: %w", err)
	}

	return auth.AdminLoginResponse{
		Token: token,
		Admin: auth.AdminProfile{
			ID:    admin.ID,
			Name:  admin.Name,
			Email: admin.Email,
		},
	}, nil
}
