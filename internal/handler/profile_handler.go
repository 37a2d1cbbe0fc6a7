package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/internmatch/portal/internal/auth"
	"github.com/internmatch/portal/internal/dto"
	"github.com/internmatch/portal/internal/gateway"
	"github.com/internmatch/portal/internal/service"
	"github.com/internmatch/portal/pkg/response"
)

// ProfileHandler exposes the student and company profile endpoints
type ProfileHandler struct {
	svc service.ProfileService
}

// NewProfileHandler creates the profile handler
func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// GetStudent handles GET /api/v1/student/profile
func (h *ProfileHandler) GetStudent(c *gin.Context) {
	profile, err := h.svc.GetStudent(c.Request.Context(), auth.BearerFrom(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

// CreateStudent handles POST /api/v1/student/profile
func (h *ProfileHandler) CreateStudent(c *gin.Context) {
	input, err := h.bindStudent(c)
	if err != nil {
		return
	}
	profile, err := h.svc.CreateStudent(c.Request.Context(), auth.BearerFrom(c), *input)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, profile)
}

// UpdateStudent handles PUT /api/v1/student/profile
func (h *ProfileHandler) UpdateStudent(c *gin.Context) {
	input, err := h.bindStudent(c)
	if err != nil {
		return
	}
	profile, err := h.svc.UpdateStudent(c.Request.Context(), auth.BearerFrom(c), *input)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

// bindStudent binds and validates the student profile payload. On failure
// the response has already been written.
func (h *ProfileHandler) bindStudent(c *gin.Context) (*gateway.StudentProfileInput, error) {
	var req dto.StudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return nil, err
	}
	level, err := req.Validate()
	if err != nil {
		handleError(c, err)
		return nil, err
	}
	return &gateway.StudentProfileInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Skills:          req.Skills,
		CVURL:           req.CVURL,
		Bio:             req.Bio,
		ExperienceLevel: level,
		Education:       req.ToEducation(),
	}, nil
}

// GetCompany handles GET /api/v1/company/profile
func (h *ProfileHandler) GetCompany(c *gin.Context) {
	profile, err := h.svc.GetCompany(c.Request.Context(), auth.BearerFrom(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

// CreateCompany handles POST /api/v1/company/profile
func (h *ProfileHandler) CreateCompany(c *gin.Context) {
	input, err := h.bindCompany(c)
	if err != nil {
		return
	}
	profile, err := h.svc.CreateCompany(c.Request.Context(), auth.BearerFrom(c), *input)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, profile)
}

// UpdateCompany handles PUT /api/v1/company/profile
func (h *ProfileHandler) UpdateCompany(c *gin.Context) {
	input, err := h.bindCompany(c)
	if err != nil {
		return
	}
	profile, err := h.svc.UpdateCompany(c.Request.Context(), auth.BearerFrom(c), *input)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profile)
}

func (h *ProfileHandler) bindCompany(c *gin.Context) (*gateway.CompanyProfileInput, error) {
	var req dto.CompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return nil, err
	}
	return &gateway.CompanyProfileInput{
		CompanyName: req.CompanyName,
		Description: req.Description,
		Industry:    req.Industry,
		Location:    req.Location,
		LogoURL:     req.LogoURL,
		Website:     req.Website,
	}, nil
}

// ListCompanies handles GET /api/v1/companies. Only verified companies
// are shown outside the admin console.
func (h *ProfileHandler) ListCompanies(c *gin.Context) {
	profiles, err := h.svc.ListCompanies(c.Request.Context(), auth.BearerFrom(c), true)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, profiles)
}
