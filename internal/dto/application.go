package dto

import (
	"fmt"

	"github.com/internmatch/portal/internal/domain"
)

// CreateApplicationRequest is the payload for applying to a job
type CreateApplicationRequest struct {
	JobID       string `json:"job_id" binding:"required"`
	CoverLetter string `json:"cover_letter"`
}

// UpdateApplicationStatusRequest requests a status transition
type UpdateApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Validate normalizes and checks the target status. "applied" is the
// creation status and is never a legal transition target.
func (r *UpdateApplicationStatusRequest) Validate() (domain.ApplicationStatus, error) {
	status, err := domain.ParseApplicationStatus(r.Status)
	if err != nil {
		return "", fmt.Errorf("%w: unknown application status", domain.ErrValidation)
	}
	if status == domain.ApplicationStatusApplied {
		return "", fmt.Errorf("%w: applications cannot return to applied", domain.ErrValidation)
	}
	return status, nil
}
