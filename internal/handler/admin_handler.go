package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/internmatch/portal/internal/auth"
	"github.com/internmatch/portal/internal/service"
	"github.com/internmatch/portal/pkg/response"
)

// AdminHandler exposes the admin console endpoints
type AdminHandler struct {
	svc service.AdminService
}

// NewAdminHandler creates the admin handler
func NewAdminHandler(svc service.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

// ListUsers handles GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context(), auth.BearerFrom(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, users)
}

// DeleteUser handles DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.svc.DeleteUser(c.Request.Context(), auth.BearerFrom(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// ListCompanyProfiles handles GET /api/v1/admin/companies. Unverified
// profiles are included so the verification queue is visible.
func (h *AdminHandler) ListCompanyProfiles(c *gin.Context) {
	profiles, err := h.svc.ListCompanyProfiles(c.Request.Context(), auth.BearerFrom(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profiles)
}

// ListStudentProfiles handles GET /api/v1/admin/students
func (h *AdminHandler) ListStudentProfiles(c *gin.Context) {
	profiles, err := h.svc.ListStudentProfiles(c.Request.Context(), auth.BearerFrom(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profiles)
}

// VerifyCompany handles POST /api/v1/admin/companies/:id/verify
func (h *AdminHandler) VerifyCompany(c *gin.Context) {
	profile, err := h.svc.VerifyCompany(c.Request.Context(), auth.BearerFrom(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

// RejectVerification handles POST /api/v1/admin/companies/:id/reject.
// The decision is recorded but nothing changes on the profile, so the
// response is 202 rather than 200.
func (h *AdminHandler) RejectVerification(c *gin.Context) {
	if err := h.svc.RejectVerification(c.Request.Context(), auth.BearerFrom(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Accepted(c, gin.H{"message": "Verification rejected, the profile remains unverified"})
}
