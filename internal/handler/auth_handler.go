package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/internmatch/portal/internal/auth"
	"github.com/internmatch/portal/internal/dto"
	"github.com/internmatch/portal/internal/service"
	"github.com/internmatch/portal/pkg/response"
)

// AuthHandler exposes the authentication endpoints
type AuthHandler struct {
	svc service.AuthService
}

// NewAuthHandler creates the auth handler
func NewAuthHandler(svc service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sessionID, user, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, dto.SessionResponse{SessionID: sessionID, User: *user})
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	role, err := req.Validate()
	if err != nil {
		handleError(c, err)
		return
	}

	sessionID, user, err := h.svc.Signup(c.Request.Context(), req.Email, req.Password, role)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, dto.SessionResponse{SessionID: sessionID, User: *user})
}

// Logout handles POST /api/v1/auth/logout. It succeeds whether or not a
// usable session exists.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), auth.SessionIDFrom(c)); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"logged_out": true})
}

// Me handles GET /api/v1/auth/me. The identity is re-resolved with the
// backend, not read from the decoded claims.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.svc.Me(c.Request.Context(), auth.SessionIDFrom(c), auth.BearerFrom(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, user)
}

// RequestPasswordReset handles POST /api/v1/auth/password-reset/request
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req dto.RequestPasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		handleError(c, err)
		return
	}
	// The answer does not reveal whether the email exists
	response.Accepted(c, gin.H{"message": "If the email exists, a reset link has been sent"})
}

// ResetPassword handles POST /api/v1/auth/password-reset/confirm
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if err := h.svc.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Password updated, please log in"})
}
