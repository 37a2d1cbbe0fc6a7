package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/internmatch/portal/internal/domain"
	"github.com/internmatch/portal/internal/gateway"
	"github.com/internmatch/portal/pkg/logger"
)

// AdminService owns the admin console operations
type AdminService interface {
	ListUsers(ctx context.Context, bearer string) ([]domain.User, error)
	DeleteUser(ctx context.Context, bearer, userID string) error
	ListCompanyProfiles(ctx context.Context, bearer string) ([]domain.CompanyProfile, error)
	ListStudentProfiles(ctx context.Context, bearer string) ([]domain.StudentProfile, error)
	VerifyCompany(ctx context.Context, bearer, companyProfileID string) (*domain.CompanyProfile, error)
	RejectVerification(ctx context.Context, bearer, companyProfileID string) error
}

type adminService struct {
	gw  gateway.Gateway
	log *logger.Logger
}

// NewAdminService creates the admin service
func NewAdminService(gw gateway.Gateway, log *logger.Logger) AdminService {
	return &adminService{gw: gw, log: log}
}

func (s *adminService) ListUsers(ctx context.Context, bearer string) ([]domain.User, error) {
	return s.gw.GetAllUsers(ctx, bearer)
}

func (s *adminService) DeleteUser(ctx context.Context, bearer, userID string) error {
	if _, err := s.gw.DeleteUser(ctx, bearer, userID); err != nil {
		return err
	}
	s.log.Info("user deleted", zap.String("user_id", userID))
	return nil
}

// ListCompanyProfiles returns every company profile, verified or not,
// so the console can show the pending verification queue.
func (s *adminService) ListCompanyProfiles(ctx context.Context, bearer string) ([]domain.CompanyProfile, error) {
	return s.gw.GetAllCompanyProfiles(ctx, bearer, false)
}

func (s *adminService) ListStudentProfiles(ctx context.Context, bearer string) ([]domain.StudentProfile, error) {
	return s.gw.GetAllStudentProfiles(ctx, bearer)
}

func (s *adminService) VerifyCompany(ctx context.Context, bearer, companyProfileID string) (*domain.CompanyProfile, error) {
	profile, err := s.gw.VerifyCompany(ctx, bearer, companyProfileID)
	if err != nil {
		return nil, err
	}
	s.log.Info("company verified", zap.String("company_profile_id", profile.ID))
	return profile, nil
}

// RejectVerification records the decision without changing any state.
// There is no rejected flag in the model; the profile simply stays
// unverified and the company may amend it and re-apply.
func (s *adminService) RejectVerification(ctx context.Context, bearer, companyProfileID string) error {
	s.log.Info("company verification rejected",
		zap.String("company_profile_id", companyProfileID),
	)
	return nil
}
