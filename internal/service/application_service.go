package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/internmatch/portal/internal/domain"
	"github.com/internmatch/portal/internal/gateway"
	"github.com/internmatch/portal/pkg/logger"
)

// ApplicationService owns the student application flow and the
// company-side review pipeline
type ApplicationService interface {
	List(ctx context.Context, bearer string) ([]domain.Application, error)
	Apply(ctx context.Context, bearer, jobID, coverLetter string) (*domain.Application, error)
	UpdateStatus(ctx context.Context, bearer, id string, status domain.ApplicationStatus) (*domain.Application, error)
}

type applicationService struct {
	gw  gateway.Gateway
	log *logger.Logger
}

// NewApplicationService creates the application service
func NewApplicationService(gw gateway.Gateway, log *logger.Logger) ApplicationService {
	return &applicationService{gw: gw, log: log}
}

// List fetches the applications visible to the caller
func (s *applicationService) List(ctx context.Context, bearer string) ([]domain.Application, error) {
	return s.gw.GetAllApplications(ctx, bearer)
}

// Apply submits an application. The caller's existing applications are
// scanned first so a duplicate is rejected without a create request;
// the backend enforces the same uniqueness rule as the authority.
func (s *applicationService) Apply(ctx context.Context, bearer, jobID, coverLetter string) (*domain.Application, error) {
	existing, err := s.gw.GetAllApplications(ctx, bearer)
	if err != nil {
		return nil, err
	}
	for _, app := range existing {
		if app.JobID == jobID {
			return nil, domain.ErrAlreadyApplied
		}
	}

	app, err := s.gw.CreateApplication(ctx, bearer, jobID, coverLetter)
	if err != nil {
		return nil, err
	}
	s.log.Info("application submitted",
		zap.String("application_id", app.ID),
		zap.String("job_id", app.JobID),
		zap.Float64("match_score", app.MatchScore),
	)
	return app, nil
}

// UpdateStatus requests a status transition. Illegal transitions are
// rejected locally against the transition table; the backend re-checks.
func (s *applicationService) UpdateStatus(ctx context.Context, bearer, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	existing, err := s.gw.GetAllApplications(ctx, bearer)
	if err != nil {
		return nil, err
	}

	var current *domain.Application
	for i := range existing {
		if existing[i].ID == id {
			current = &existing[i]
			break
		}
	}
	if current == nil {
		return nil, domain.ErrApplicationNotFound
	}
	if !domain.CanTransition(current.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, current.Status, status)
	}

	app, err := s.gw.UpdateApplicationStatus(ctx, bearer, id, status)
	if err != nil {
		return nil, err
	}
	s.log.Info("application status updated",
		zap.String("application_id", app.ID),
		zap.String("status", string(app.Status)),
	)
	return app, nil
}
