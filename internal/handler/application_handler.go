package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/internmatch/portal/internal/auth"
	"github.com/internmatch/portal/internal/dto"
	"github.com/internmatch/portal/internal/service"
	"github.com/internmatch/portal/pkg/response"
)

// ApplicationHandler exposes the application endpoints
type ApplicationHandler struct {
	svc service.ApplicationService
}

// NewApplicationHandler creates the application handler
func NewApplicationHandler(svc service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

// List handles GET /api/v1/applications. The backend scopes the result
// to the caller: students see their own, companies see their jobs'.
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.svc.List(c.Request.Context(), auth.BearerFrom(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, apps)
}

// Apply handles POST /api/v1/student/applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dto.CreateApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	app, err := h.svc.Apply(c.Request.Context(), auth.BearerFrom(c), req.JobID, req.CoverLetter)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, app)
}

// UpdateStatus handles PATCH /api/v1/company/applications/:id/status
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	status, err := req.Validate()
	if err != nil {
		handleError(c, err)
		return
	}

	app, err := h.svc.UpdateStatus(c.Request.Context(), auth.BearerFrom(c), c.Param("id"), status)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, app)
}
