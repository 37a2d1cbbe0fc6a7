package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/internmatch/portal/internal/auth"
	"github.com/internmatch/portal/internal/dto"
	"github.com/internmatch/portal/internal/gateway"
	"github.com/internmatch/portal/internal/service"
	"github.com/internmatch/portal/pkg/response"
)

// JobHandler exposes the job endpoints
type JobHandler struct {
	svc service.JobService
}

// NewJobHandler creates the job handler
func NewJobHandler(svc service.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

// List handles GET /api/v1/jobs
func (h *JobHandler) List(c *gin.Context) {
	var query dto.JobListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	status, err := query.Validate()
	if err != nil {
		handleError(c, err)
		return
	}

	jobs, err := h.svc.List(c.Request.Context(), auth.BearerFrom(c), gateway.JobFilter{
		Status:           status,
		CompanyProfileID: query.CompanyProfileID,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, jobs)
}

// Create handles POST /api/v1/company/jobs
func (h *JobHandler) Create(c *gin.Context) {
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	jobType, err := req.Validate()
	if err != nil {
		handleError(c, err)
		return
	}

	job, err := h.svc.Create(c.Request.Context(), auth.BearerFrom(c), gateway.CreateJobInput{
		Title:          req.Title,
		Description:    req.Description,
		Type:           jobType,
		RequiredSkills: req.RequiredSkills,
		Location:       req.Location,
		SalaryRange:    req.SalaryRange,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, job)
}

// Close handles POST /api/v1/company/jobs/:id/close
func (h *JobHandler) Close(c *gin.Context) {
	job, err := h.svc.Close(c.Request.Context(), auth.BearerFrom(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, job)
}
