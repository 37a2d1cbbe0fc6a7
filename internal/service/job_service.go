package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/internmatch/portal/internal/domain"
	"github.com/internmatch/portal/internal/gateway"
	"github.com/internmatch/portal/pkg/logger"
)

// JobService owns job browsing and the company-side posting flows
type JobService interface {
	List(ctx context.Context, bearer string, filter gateway.JobFilter) ([]domain.Job, error)
	Create(ctx context.Context, bearer string, input gateway.CreateJobInput) (*domain.Job, error)
	Close(ctx context.Context, bearer, jobID string) (*domain.Job, error)
}

type jobService struct {
	gw  gateway.Gateway
	log *logger.Logger
}

// NewJobService creates the job service
func NewJobService(gw gateway.Gateway, log *logger.Logger) JobService {
	return &jobService{gw: gw, log: log}
}

// List fetches job postings with optional status and company filters
func (s *jobService) List(ctx context.Context, bearer string, filter gateway.JobFilter) ([]domain.Job, error) {
	return s.gw.GetAllJobs(ctx, bearer, filter)
}

// Create posts a job. The verification gate runs here first: an
// unverified company gets ErrCompanyNotVerified without any create
// request reaching the backend, which enforces the same rule again.
func (s *jobService) Create(ctx context.Context, bearer string, input gateway.CreateJobInput) (*domain.Job, error) {
	profile, err := s.gw.GetCompanyProfile(ctx, bearer)
	if err != nil {
		return nil, err
	}
	if !profile.CanPostJobs() {
		return nil, domain.ErrCompanyNotVerified
	}

	job, err := s.gw.CreateJob(ctx, bearer, input)
	if err != nil {
		return nil, err
	}
	s.log.Info("job posted",
		zap.String("job_id", job.ID),
		zap.String("company_profile_id", job.CompanyProfileID),
	)
	return job, nil
}

// Close moves a job from open to closed. The transition is checked
// locally against the company's own postings before the backend is asked.
func (s *jobService) Close(ctx context.Context, bearer, jobID string) (*domain.Job, error) {
	profile, err := s.gw.GetCompanyProfile(ctx, bearer)
	if err != nil {
		return nil, err
	}
	jobs, err := s.gw.GetAllJobs(ctx, bearer, gateway.JobFilter{CompanyProfileID: profile.ID})
	if err != nil {
		return nil, err
	}

	var current *domain.Job
	for i := range jobs {
		if jobs[i].ID == jobID {
			current = &jobs[i]
			break
		}
	}
	if current == nil {
		return nil, domain.ErrJobNotFound
	}
	if !current.IsOpen() {
		return nil, fmt.Errorf("%w: job is already closed", domain.ErrInvalidTransition)
	}

	job, err := s.gw.CloseJob(ctx, bearer, jobID)
	if err != nil {
		return nil, err
	}
	s.log.Info("job closed", zap.String("job_id", job.ID))
	return job, nil
}
