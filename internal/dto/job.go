package dto

import (
	"fmt"

	"github.com/internmatch/portal/internal/domain"
)

// CreateJobRequest is the payload for posting a job
type CreateJobRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	Type           string   `json:"type" binding:"required"`
	RequiredSkills []string `json:"required_skills"`
	Location       string   `json:"location"`
	SalaryRange    string   `json:"salary_range"`
}

// Validate normalizes and checks the job type
func (r *CreateJobRequest) Validate() (domain.JobType, error) {
	jobType, err := domain.ParseJobType(r.Type)
	if err != nil {
		return "", fmt.Errorf("%w: type must be intern or junior", domain.ErrValidation)
	}
	return jobType, nil
}

// JobListQuery carries the optional job listing filters
type JobListQuery struct {
	Status           string `form:"status"`
	CompanyProfileID string `form:"company_profile_id"`
}

// Validate normalizes the status filter when present
func (q *JobListQuery) Validate() (domain.JobStatus, error) {
	if q.Status == "" {
		return "", nil
	}
	status, err := domain.ParseJobStatus(q.Status)
	if err != nil {
		return "", fmt.Errorf("%w: status must be open or closed", domain.ErrValidation)
	}
	return status, nil
}
