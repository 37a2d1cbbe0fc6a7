package domain

import (
	"strings"
	"time"
)

// JobStatus represents the status of a job posting
type JobStatus string

const (
	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"
)

// ParseJobStatus normalizes a raw job status string
func ParseJobStatus(raw string) (JobStatus, error) {
	switch JobStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case JobStatusOpen:
		return JobStatusOpen, nil
	case JobStatusClosed:
		return JobStatusClosed, nil
	default:
		return "", ErrValidation
	}
}

// JobType represents the seniority of a posting
type JobType string

const (
	JobTypeIntern JobType = "intern"
	JobTypeJunior JobType = "junior"
)

// ParseJobType normalizes a raw job type string
func ParseJobType(raw string) (JobType, error) {
	switch JobType(strings.ToLower(strings.TrimSpace(raw))) {
	case JobTypeIntern:
		return JobTypeIntern, nil
	case JobTypeJunior:
		return JobTypeJunior, nil
	default:
		return "", ErrValidation
	}
}

// Job represents a job posting owned by a company profile.
// Jobs are created open; the only modeled transition is open -> closed.
type Job struct {
	ID               string    `json:"id"`
	CompanyProfileID string    `json:"company_profile_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description,omitempty"`
	Type             JobType   `json:"type"`
	RequiredSkills   []string  `json:"required_skills"`
	Location         string    `json:"location,omitempty"`
	SalaryRange      string    `json:"salary_range,omitempty"`
	Status           JobStatus `json:"status"`
	PostedAt         time.Time `json:"posted_at"`
}

// Close marks the job as closed. Closed is terminal: there is no
// transition back to open.
func (j *Job) Close() error {
	if j.Status != JobStatusOpen {
		return ErrInvalidTransition
	}
	j.Status = JobStatusClosed
	return nil
}

// IsOpen reports whether the job accepts applications
func (j *Job) IsOpen() bool {
	return j.Status == JobStatusOpen
}
