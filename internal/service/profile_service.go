package service

import (
	"context"

	"github.com/internmatch/portal/internal/domain"
	"github.com/internmatch/portal/internal/gateway"
	"github.com/internmatch/portal/pkg/logger"
)

// ProfileService owns the student and company profile flows
type ProfileService interface {
	GetStudent(ctx context.Context, bearer string) (*domain.StudentProfile, error)
	CreateStudent(ctx context.Context, bearer string, input gateway.StudentProfileInput) (*domain.StudentProfile, error)
	UpdateStudent(ctx context.Context, bearer string, input gateway.StudentProfileInput) (*domain.StudentProfile, error)

	GetCompany(ctx context.Context, bearer string) (*domain.CompanyProfile, error)
	CreateCompany(ctx context.Context, bearer string, input gateway.CompanyProfileInput) (*domain.CompanyProfile, error)
	UpdateCompany(ctx context.Context, bearer string, input gateway.CompanyProfileInput) (*domain.CompanyProfile, error)

	ListCompanies(ctx context.Context, bearer string, verifiedOnly bool) ([]domain.CompanyProfile, error)
}

type profileService struct {
	gw  gateway.Gateway
	log *logger.Logger
}

// NewProfileService creates the profile service
func NewProfileService(gw gateway.Gateway, log *logger.Logger) ProfileService {
	return &profileService{gw: gw, log: log}
}

func (s *profileService) GetStudent(ctx context.Context, bearer string) (*domain.StudentProfile, error) {
	return s.gw.GetStudentProfile(ctx, bearer)
}

func (s *profileService) CreateStudent(ctx context.Context, bearer string, input gateway.StudentProfileInput) (*domain.StudentProfile, error) {
	return s.gw.CreateStudentProfile(ctx, bearer, input)
}

func (s *profileService) UpdateStudent(ctx context.Context, bearer string, input gateway.StudentProfileInput) (*domain.StudentProfile, error) {
	return s.gw.UpdateStudentProfile(ctx, bearer, input)
}

func (s *profileService) GetCompany(ctx context.Context, bearer string) (*domain.CompanyProfile, error) {
	return s.gw.GetCompanyProfile(ctx, bearer)
}

func (s *profileService) CreateCompany(ctx context.Context, bearer string, input gateway.CompanyProfileInput) (*domain.CompanyProfile, error) {
	return s.gw.CreateCompanyProfile(ctx, bearer, input)
}

func (s *profileService) UpdateCompany(ctx context.Context, bearer string, input gateway.CompanyProfileInput) (*domain.CompanyProfile, error) {
	return s.gw.UpdateCompanyProfile(ctx, bearer, input)
}

// ListCompanies lists company profiles, optionally only verified ones.
// Students browsing companies see the verified set.
func (s *profileService) ListCompanies(ctx context.Context, bearer string, verifiedOnly bool) ([]domain.CompanyProfile, error) {
	return s.gw.GetAllCompanyProfiles(ctx, bearer, verifiedOnly)
}
