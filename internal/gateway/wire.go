package gateway

import (
	"fmt"
	"time"

	"github.com/internmatch/portal/internal/domain"
)

// Wire types mirror the GraphQL schema's camelCase field names. Role and
// status strings are normalized exactly once, here, so the rest of the
// portal only ever sees canonical lowercase values.

type userWire struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (w userWire) toDomain() (domain.User, error) {
	role, err := domain.ParseRole(w.Role)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: unexpected role %q", domain.ErrTransport, w.Role)
	}
	return domain.User{
		ID:        w.ID,
		Email:     w.Email,
		Role:      role,
		CreatedAt: w.CreatedAt,
	}, nil
}

type jobWire struct {
	ID               string    `json:"id"`
	CompanyProfileID string    `json:"companyProfileId"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Type             string    `json:"type"`
	RequiredSkills   []string  `json:"requiredSkills"`
	Location         string    `json:"location"`
	SalaryRange      string    `json:"salaryRange"`
	Status           string    `json:"status"`
	PostedAt         time.Time `json:"postedAt"`
}

func (w jobWire) toDomain() (domain.Job, error) {
	status, err := domain.ParseJobStatus(w.Status)
	if err != nil {
		return domain.Job{}, fmt.Errorf("%w: unexpected job status %q", domain.ErrTransport, w.Status)
	}
	jobType, err := domain.ParseJobType(w.Type)
	if err != nil {
		return domain.Job{}, fmt.Errorf("%w: unexpected job type %q", domain.ErrTransport, w.Type)
	}
	return domain.Job{
		ID:               w.ID,
		CompanyProfileID: w.CompanyProfileID,
		Title:            w.Title,
		Description:      w.Description,
		Type:             jobType,
		RequiredSkills:   w.RequiredSkills,
		Location:         w.Location,
		SalaryRange:      w.SalaryRange,
		Status:           status,
		PostedAt:         w.PostedAt,
	}, nil
}

type applicationWire struct {
	ID               string    `json:"id"`
	JobID            string    `json:"jobId"`
	StudentProfileID string    `json:"studentProfileId"`
	Status           string    `json:"status"`
	CoverLetter      string    `json:"coverLetter"`
	MatchScore       float64   `json:"matchScore"`
	AppliedAt        time.Time `json:"appliedAt"`
}

func (w applicationWire) toDomain() (domain.Application, error) {
	status, err := domain.ParseApplicationStatus(w.Status)
	if err != nil {
		return domain.Application{}, fmt.Errorf("%w: unexpected application status %q", domain.ErrTransport, w.Status)
	}
	return domain.Application{
		ID:               w.ID,
		JobID:            w.JobID,
		StudentProfileID: w.StudentProfileID,
		Status:           status,
		CoverLetter:      w.CoverLetter,
		MatchScore:       w.MatchScore,
		AppliedAt:        w.AppliedAt,
	}, nil
}

type companyProfileWire struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"companyName"`
	Description string    `json:"description"`
	Industry    string    `json:"industry"`
	Location    string    `json:"location"`
	LogoURL     string    `json:"logoUrl"`
	Website     string    `json:"website"`
	IsVerified  bool      `json:"isVerified"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (w companyProfileWire) toDomain() domain.CompanyProfile {
	return domain.CompanyProfile{
		ID:          w.ID,
		CompanyName: w.CompanyName,
		Description: w.Description,
		Industry:    w.Industry,
		Location:    w.Location,
		LogoURL:     w.LogoURL,
		Website:     w.Website,
		IsVerified:  w.IsVerified,
		UpdatedAt:   w.UpdatedAt,
	}
}

type educationWire struct {
	School    string `json:"school"`
	Degree    string `json:"degree"`
	Field     string `json:"field"`
	StartYear int    `json:"startYear"`
	EndYear   int    `json:"endYear"`
}

type studentProfileWire struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	Skills          []string        `json:"skills"`
	CVURL           string          `json:"cvUrl"`
	Bio             string          `json:"bio"`
	ExperienceLevel string          `json:"experienceLevel"`
	Education       []educationWire `json:"education"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (w studentProfileWire) toDomain() (domain.StudentProfile, error) {
	var level domain.JobType
	if w.ExperienceLevel != "" {
		parsed, err := domain.ParseJobType(w.ExperienceLevel)
		if err != nil {
			return domain.StudentProfile{}, fmt.Errorf("%w: unexpected experience level %q", domain.ErrTransport, w.ExperienceLevel)
		}
		level = parsed
	}
	education := make([]domain.Education, 0, len(w.Education))
	for _, e := range w.Education {
		education = append(education, domain.Education{
			School:    e.School,
			Degree:    e.Degree,
			Field:     e.Field,
			StartYear: e.StartYear,
			EndYear:   e.EndYear,
		})
	}
	return domain.StudentProfile{
		ID:              w.ID,
		UserID:          w.UserID,
		FirstName:       w.FirstName,
		LastName:        w.LastName,
		Skills:          w.Skills,
		CVURL:           w.CVURL,
		Bio:             w.Bio,
		ExperienceLevel: level,
		Education:       education,
		UpdatedAt:       w.UpdatedAt,
	}, nil
}

type authPayloadWire struct {
	Token string   `json:"token"`
	User  userWire `json:"user"`
}

func (w authPayloadWire) toDomain() (*AuthPayload, error) {
	user, err := w.User.toDomain()
	if err != nil {
		return nil, err
	}
	return &AuthPayload{Token: w.Token, User: user}, nil
}

func educationToWire(in []domain.Education) []educationWire {
	out := make([]educationWire, 0, len(in))
	for _, e := range in {
		out = append(out, educationWire{
			School:    e.School,
			Degree:    e.Degree,
			Field:     e.Field,
			StartYear: e.StartYear,
			EndYear:   e.EndYear,
		})
	}
	return out
}
