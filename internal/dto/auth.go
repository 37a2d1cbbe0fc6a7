// Package dto defines the request and response shapes of the HTTP API.
// Validation failures here are reported to the client without any call
// to the backend.
package dto

import (
	"fmt"

	"github.com/internmatch/portal/internal/domain"
)

// LoginRequest is the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignupRequest is the registration payload. Only student and company
// accounts can self-register; admin accounts are provisioned out of band.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required"`
}

// Validate normalizes and checks the requested role
func (r *SignupRequest) Validate() (domain.Role, error) {
	role, err := domain.ParseRole(r.Role)
	if err != nil {
		return "", fmt.Errorf("%w: role must be student or company", domain.ErrValidation)
	}
	if role == domain.RoleAdmin {
		return "", fmt.Errorf("%w: admin accounts cannot self-register", domain.ErrValidation)
	}
	return role, nil
}

// RequestPasswordResetRequest starts the password reset flow
type RequestPasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes the password reset flow
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// SessionResponse is returned by login and signup. The session id is the
// client's handle for all subsequent requests; the backend credential
// itself never leaves the server.
type SessionResponse struct {
	SessionID string      `json:"session_id"`
	User      domain.User `json:"user"`
}
