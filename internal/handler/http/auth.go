package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmrl-attendance/attendance-backend-go/internal/domain/auth"
	"github.com/cmrl-attendance/attendance-backend-go/internal/handler/http/response"
)

type AuthHandler interface {
	EmployeeLogin(w http.ResponseWriter, r *http.Request)
	SetEmployeePassword(w http.ResponseWriter, r *http.Request)
	EmployeeLogout(w http.ResponseWriter, r *http.Request)
	AdminLogin(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

// EmployeeLogin implements AuthHandler.
func (h *AuthHandlerImpl) EmployeeLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.EmployeeLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("EmployeeLogin decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.authService.EmployeeLogin(r.Context(), req)
	if err != nil {
		slog.Error("EmployeeLogin service error", "employeeId", req.EmployeeID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// SetEmployeePassword implements AuthHandler.
func (h *AuthHandlerImpl) SetEmployeePassword(w http.ResponseWriter, r *http.Request) {
	var req auth.SetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetEmployeePassword decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.authService.SetEmployeePassword(r.Context(), req); err != nil {
		slog.Error("SetEmployeePassword service error", "employeeId", req.EmployeeID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password set successfully", nil)
}

// EmployeeLogout implements AuthHandler.
func (h *AuthHandlerImpl) EmployeeLogout(w http.ResponseWriter, r *http.Request) {
	var req auth.EmployeeLogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("EmployeeLogout decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.authService.EmployeeLogout(r.Context(), req); err != nil {
		slog.Error("EmployeeLogout service error", "employeeId", req.EmployeeID, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out", nil)
}

// AdminLogin implements AuthHandler.
func (h *AuthHandlerImpl) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req auth.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AdminLogin decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	resp, err := h.authService.AdminLogin(r.Context(), req)
	if err != nil {
		slog.Error("AdminLogin service error", "email", req.Email, "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
