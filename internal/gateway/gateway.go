// Package gateway is the portal's only channel to authoritative state.
// Every read and write of users, profiles, jobs, and applications goes
// through the external GraphQL backend; the portal never persists any of
// these entities itself.
package gateway

import (
	"context"

	"github.com/internmatch/portal/internal/domain"
)

// AuthPayload is returned by login and signup
type AuthPayload struct {
	Token string
	User  domain.User
}

// JobFilter narrows job listings. Zero values mean "no filter".
type JobFilter struct {
	Status           domain.JobStatus
	CompanyProfileID string
}

// CreateJobInput carries the fields of a new job posting
type CreateJobInput struct {
	Title          string
	Description    string
	Type           domain.JobType
	RequiredSkills []string
	Location       string
	SalaryRange    string
}

// CompanyProfileInput carries company profile fields for create/update
type CompanyProfileInput struct {
	CompanyName string
	Description string
	Industry    string
	Location    string
	LogoURL     string
	Website     string
}

// StudentProfileInput carries student profile fields for create/update
type StudentProfileInput struct {
	FirstName       string
	LastName        string
	Skills          []string
	CVURL           string
	Bio             string
	ExperienceLevel domain.JobType
	Education       []domain.Education
}

// Gateway executes operations against the GraphQL backend. The bearer
// credential accompanies every authenticated operation; the backend is
// the sole authority on whether it is accepted.
//
// Error contract: authentication failures map to domain.ErrUnauthorized,
// domain-state rejections map to domain.ErrConflict carrying the backend's
// message verbatim, and network or server failures map to
// domain.ErrTransport. Callers never retry automatically.
type Gateway interface {
	// Authentication
	Login(ctx context.Context, email, password string) (*AuthPayload, error)
	Signup(ctx context.Context, email, password string, role domain.Role) (*AuthPayload, error)
	Me(ctx context.Context, token string) (*domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) (bool, error)
	ResetPassword(ctx context.Context, resetToken, newPassword string) (bool, error)

	// Jobs
	GetAllJobs(ctx context.Context, token string, filter JobFilter) ([]domain.Job, error)
	CreateJob(ctx context.Context, token string, input CreateJobInput) (*domain.Job, error)
	CloseJob(ctx context.Context, token, jobID string) (*domain.Job, error)

	// Applications
	GetAllApplications(ctx context.Context, token string) ([]domain.Application, error)
	CreateApplication(ctx context.Context, token, jobID, coverLetter string) (*domain.Application, error)
	UpdateApplicationStatus(ctx context.Context, token, id string, status domain.ApplicationStatus) (*domain.Application, error)

	// Company profiles
	GetCompanyProfile(ctx context.Context, token string) (*domain.CompanyProfile, error)
	CreateCompanyProfile(ctx context.Context, token string, input CompanyProfileInput) (*domain.CompanyProfile, error)
	UpdateCompanyProfile(ctx context.Context, token string, input CompanyProfileInput) (*domain.CompanyProfile, error)
	GetAllCompanyProfiles(ctx context.Context, token string, verifiedOnly bool) ([]domain.CompanyProfile, error)
	VerifyCompany(ctx context.Context, token, companyProfileID string) (*domain.CompanyProfile, error)

	// Student profiles
	GetStudentProfile(ctx context.Context, token string) (*domain.StudentProfile, error)
	CreateStudentProfile(ctx context.Context, token string, input StudentProfileInput) (*domain.StudentProfile, error)
	UpdateStudentProfile(ctx context.Context, token string, input StudentProfileInput) (*domain.StudentProfile, error)
	GetAllStudentProfiles(ctx context.Context, token string) ([]domain.StudentProfile, error)

	// Administration
	GetAllUsers(ctx context.Context, token string) ([]domain.User, error)
	DeleteUser(ctx context.Context, token, userID string) (bool, error)
}
