package dto

import (
	"fmt"

	"github.com/internmatch/portal/internal/domain"
)

// CompanyProfileRequest is the payload for creating or updating a
// company profile. Verification status is not part of the payload;
// only admins move it, through the verification endpoint.
type CompanyProfileRequest struct {
	CompanyName string `json:"company_name" binding:"required"`
	Description string `json:"description"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	LogoURL     string `json:"logo_url" binding:"omitempty,url"`
	Website     string `json:"website" binding:"omitempty,url"`
}

// EducationEntry is one education record on a student profile
type EducationEntry struct {
	School    string `json:"school" binding:"required"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year"`
}

// StudentProfileRequest is the payload for creating or updating a
// student profile
type StudentProfileRequest struct {
	FirstName       string           `json:"first_name" binding:"required"`
	LastName        string           `json:"last_name" binding:"required"`
	Skills          []string         `json:"skills"`
	CVURL           string           `json:"cv_url" binding:"omitempty,url"`
	Bio             string           `json:"bio"`
	ExperienceLevel string           `json:"experience_level"`
	Education       []EducationEntry `json:"education" binding:"omitempty,dive"`
}

// Validate normalizes the optional experience level
func (r *StudentProfileRequest) Validate() (domain.JobType, error) {
	if r.ExperienceLevel == "" {
		return "", nil
	}
	level, err := domain.ParseJobType(r.ExperienceLevel)
	if err != nil {
		return "", fmt.Errorf("%w: experience level must be intern or junior", domain.ErrValidation)
	}
	return level, nil
}

// ToEducation converts the request entries to domain records
func (r *StudentProfileRequest) ToEducation() []domain.Education {
	out := make([]domain.Education, 0, len(r.Education))
	for _, e := range r.Education {
		out = append(out, domain.Education{
			School:    e.School,
			Degree:    e.Degree,
			Field:     e.Field,
			StartYear: e.StartYear,
			EndYear:   e.EndYear,
		})
	}
	return out
}
