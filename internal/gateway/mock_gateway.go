package gateway

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/internmatch/portal/internal/domain"
)

// MockGateway is an in-memory backend used in tests and local development.
// It enforces the same domain rules the real backend does, so portal code
// exercised against it sees realistic conflicts: duplicate applications,
// unverified companies posting jobs, illegal status transitions.
type MockGateway struct {
	mu     sync.Mutex
	secret []byte

	users           map[string]*mockAccount
	resetTokens     map[string]string
	companyProfiles map[string]*domain.CompanyProfile
	companyOwner    map[string]string
	studentProfiles map[string]*domain.StudentProfile
	studentOwner    map[string]string
	jobs            map[string]*domain.Job
	applications    map[string]*domain.Application

	failure error
}

type mockAccount struct {
	user     domain.User
	password string
}

// NewMockGateway creates an empty in-memory backend
func NewMockGateway() *MockGateway {
	return &MockGateway{
		secret:          []byte(uuid.NewString()),
		users:           make(map[string]*mockAccount),
		resetTokens:     make(map[string]string),
		companyProfiles: make(map[string]*domain.CompanyProfile),
		companyOwner:    make(map[string]string),
		studentProfiles: make(map[string]*domain.StudentProfile),
		studentOwner:    make(map[string]string),
		jobs:            make(map[string]*domain.Job),
		applications:    make(map[string]*domain.Application),
	}
}

// SetFailure makes every subsequent operation return err until cleared
// with SetFailure(nil). Used to simulate backend outages.
func (m *MockGateway) SetFailure(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = err
}

// SeedUser registers an account directly, bypassing signup's role
// restrictions. Returns the created user.
func (m *MockGateway) SeedUser(email, password string, role domain.Role) domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	user := domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	m.users[user.ID] = &mockAccount{user: user, password: password}
	return user
}

// MintToken issues a signed credential for a seeded user
func (m *MockGateway) MintToken(userID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.users[userID]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return m.mintLocked(account.user)
}

// ResetTokenFor returns the pending reset token for an email, if any.
// Test helper for the password reset flow.
func (m *MockGateway) ResetTokenFor(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for token, userID := range m.resetTokens {
		if account, ok := m.users[userID]; ok && strings.EqualFold(account.user.Email, email) {
			return token
		}
	}
	return ""
}

func (m *MockGateway) mintLocked(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// authenticateLocked resolves the account behind a bearer credential
func (m *MockGateway) authenticateLocked(token string) (*mockAccount, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, domain.ErrUnauthorized
	}
	account, ok := m.users[sub]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return account, nil
}

func (m *MockGateway) companyProfileOfLocked(userID string) *domain.CompanyProfile {
	if id, ok := m.companyOwner[userID]; ok {
		return m.companyProfiles[id]
	}
	return nil
}

func (m *MockGateway) studentProfileOfLocked(userID string) *domain.StudentProfile {
	if id, ok := m.studentOwner[userID]; ok {
		return m.studentProfiles[id]
	}
	return nil
}

// matchScore is the share of required skills the student lists.
// Skill comparison is case-sensitive.
func matchScore(studentSkills, requiredSkills []string) float64 {
	if len(requiredSkills) == 0 {
		return 0
	}
	have := make(map[string]bool, len(studentSkills))
	for _, s := range studentSkills {
		have[s] = true
	}
	matched := 0
	for _, s := range requiredSkills {
		if have[s] {
			matched++
		}
	}
	return float64(matched) / float64(len(requiredSkills))
}

// Login authenticates with email and password
func (m *MockGateway) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	for _, account := range m.users {
		if strings.EqualFold(account.user.Email, email) {
			if account.password != password {
				return nil, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
			}
			token, err := m.mintLocked(account.user)
			if err != nil {
				return nil, err
			}
			return &AuthPayload{Token: token, User: account.user}, nil
		}
	}
	return nil, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
}

// Signup registers a new student or company account
func (m *MockGateway) Signup(ctx context.Context, email, password string, role domain.Role) (*AuthPayload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	if role != domain.RoleStudent && role != domain.RoleCompany {
		return nil, fmt.Errorf("%w: role must be student or company", domain.ErrConflict)
	}
	for _, account := range m.users {
		if strings.EqualFold(account.user.Email, email) {
			return nil, fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
	}
	user := domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	m.users[user.ID] = &mockAccount{user: user, password: password}
	token, err := m.mintLocked(user)
	if err != nil {
		return nil, err
	}
	return &AuthPayload{Token: token, User: user}, nil
}

// Me resolves the identity behind the bearer credential
func (m *MockGateway) Me(ctx context.Context, token string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	user := account.user
	return &user, nil
}

// RequestPasswordReset starts the reset flow. Always reports success so
// callers cannot probe which emails exist.
func (m *MockGateway) RequestPasswordReset(ctx context.Context, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return false, m.failure
	}
	for id, account := range m.users {
		if strings.EqualFold(account.user.Email, email) {
			m.resetTokens[uuid.NewString()] = id
			break
		}
	}
	return true, nil
}

// ResetPassword completes the reset flow
func (m *MockGateway) ResetPassword(ctx context.Context, resetToken, newPassword string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return false, m.failure
	}
	userID, ok := m.resetTokens[resetToken]
	if !ok {
		return false, fmt.Errorf("%w: invalid or expired reset token", domain.ErrConflict)
	}
	delete(m.resetTokens, resetToken)
	if account, ok := m.users[userID]; ok {
		account.password = newPassword
	}
	return true, nil
}

// GetAllJobs lists job postings, optionally filtered
func (m *MockGateway) GetAllJobs(ctx context.Context, token string, filter JobFilter) ([]domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	if _, err := m.authenticateLocked(token); err != nil {
		return nil, err
	}
	jobs := make([]domain.Job, 0, len(m.jobs))
	for _, job := range m.jobs {
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		if filter.CompanyProfileID != "" && job.CompanyProfileID != filter.CompanyProfileID {
			continue
		}
		jobs = append(jobs, *job)
	}
	return jobs, nil
}

// CreateJob creates a posting for the caller's verified company profile
func (m *MockGateway) CreateJob(ctx context.Context, token string, input CreateJobInput) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	if account.user.Role != domain.RoleCompany {
		return nil, fmt.Errorf("%w: company role required", domain.ErrConflict)
	}
	profile := m.companyProfileOfLocked(account.user.ID)
	if profile == nil {
		return nil, fmt.Errorf("%w: create a company profile first", domain.ErrConflict)
	}
	if !profile.CanPostJobs() {
		return nil, fmt.Errorf("%w: company registration is not verified", domain.ErrConflict)
	}
	job := &domain.Job{
		ID:               uuid.NewString(),
		CompanyProfileID: profile.ID,
		Title:            input.Title,
		Description:      input.Description,
		Type:             input.Type,
		RequiredSkills:   input.RequiredSkills,
		Location:         input.Location,
		SalaryRange:      input.SalaryRange,
		Status:           domain.JobStatusOpen,
		PostedAt:         time.Now().UTC(),
	}
	m.jobs[job.ID] = job
	result := *job
	return &result, nil
}

// CloseJob moves a posting from open to closed
func (m *MockGateway) CloseJob(ctx context.Context, token, jobID string) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	if account.user.Role != domain.RoleAdmin {
		profile := m.companyProfileOfLocked(account.user.ID)
		if profile == nil || profile.ID != job.CompanyProfileID {
			return nil, fmt.Errorf("%w: job belongs to another company", domain.ErrConflict)
		}
	}
	if err := job.Close(); err != nil {
		return nil, fmt.Errorf("%w: job is already closed", domain.ErrConflict)
	}
	result := *job
	return &result, nil
}

// GetAllApplications lists applications scoped to the caller: students see
// their own, companies see applications to their jobs, admins see all.
func (m *MockGateway) GetAllApplications(ctx context.Context, token string) ([]domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	apps := make([]domain.Application, 0)
	switch account.user.Role {
	case domain.RoleStudent:
		profile := m.studentProfileOfLocked(account.user.ID)
		if profile == nil {
			return apps, nil
		}
		for _, app := range m.applications {
			if app.StudentProfileID == profile.ID {
				apps = append(apps, *app)
			}
		}
	case domain.RoleCompany:
		profile := m.companyProfileOfLocked(account.user.ID)
		if profile == nil {
			return apps, nil
		}
		for _, app := range m.applications {
			if job, ok := m.jobs[app.JobID]; ok && job.CompanyProfileID == profile.ID {
				apps = append(apps, *app)
			}
		}
	default:
		for _, app := range m.applications {
			apps = append(apps, *app)
		}
	}
	return apps, nil
}

// CreateApplication submits an application. One application per student
// per job; the job must be open.
func (m *MockGateway) CreateApplication(ctx context.Context, token, jobID, coverLetter string) (*domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	if account.user.Role != domain.RoleStudent {
		return nil, fmt.Errorf("%w: student role required", domain.ErrConflict)
	}
	profile := m.studentProfileOfLocked(account.user.ID)
	if profile == nil {
		return nil, fmt.Errorf("%w: create a student profile before applying", domain.ErrConflict)
	}
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	if !job.IsOpen() {
		return nil, fmt.Errorf("%w: job is no longer accepting applications", domain.ErrConflict)
	}
	for _, app := range m.applications {
		if app.JobID == jobID && app.StudentProfileID == profile.ID {
			return nil, fmt.Errorf("%w: already applied to this job", domain.ErrConflict)
		}
	}
	app := &domain.Application{
		ID:               uuid.NewString(),
		JobID:            jobID,
		StudentProfileID: profile.ID,
		Status:           domain.ApplicationStatusApplied,
		CoverLetter:      coverLetter,
		MatchScore:       matchScore(profile.Skills, job.RequiredSkills),
		AppliedAt:        time.Now().UTC(),
	}
	m.applications[app.ID] = app
	result := *app
	return &result, nil
}

// UpdateApplicationStatus requests a status transition
func (m *MockGateway) UpdateApplicationStatus(ctx context.Context, token, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	app, ok := m.applications[id]
	if !ok {
		return nil, domain.ErrApplicationNotFound
	}
	if account.user.Role != domain.RoleAdmin {
		if account.user.Role != domain.RoleCompany {
			return nil, fmt.Errorf("%w: company role required", domain.ErrConflict)
		}
		profile := m.companyProfileOfLocked(account.user.ID)
		job, jobOK := m.jobs[app.JobID]
		if profile == nil || !jobOK || job.CompanyProfileID != profile.ID {
			return nil, fmt.Errorf("%w: application belongs to another company", domain.ErrConflict)
		}
	}
	if !domain.CanTransition(app.Status, status) {
		return nil, fmt.Errorf("%w: invalid status transition from %s to %s", domain.ErrConflict, app.Status, status)
	}
	app.Status = status
	result := *app
	return &result, nil
}

// GetCompanyProfile fetches the caller's own company profile
func (m *MockGateway) GetCompanyProfile(ctx context.Context, token string) (*domain.CompanyProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	profile := m.companyProfileOfLocked(account.user.ID)
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	result := *profile
	return &result, nil
}

// CreateCompanyProfile creates the caller's company profile, unverified
func (m *MockGateway) CreateCompanyProfile(ctx context.Context, token string, input CompanyProfileInput) (*domain.CompanyProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	if account.user.Role != domain.RoleCompany {
		return nil, fmt.Errorf("%w: company role required", domain.ErrConflict)
	}
	if m.companyProfileOfLocked(account.user.ID) != nil {
		return nil, fmt.Errorf("%w: company profile already exists", domain.ErrConflict)
	}
	profile := &domain.CompanyProfile{
		ID:          uuid.NewString(),
		CompanyName: input.CompanyName,
		Description: input.Description,
		Industry:    input.Industry,
		Location:    input.Location,
		LogoURL:     input.LogoURL,
		Website:     input.Website,
		IsVerified:  false,
		UpdatedAt:   time.Now().UTC(),
	}
	m.companyProfiles[profile.ID] = profile
	m.companyOwner[account.user.ID] = profile.ID
	result := *profile
	return &result, nil
}

// UpdateCompanyProfile updates the caller's company profile. Verification
// status is untouched by updates.
func (m *MockGateway) UpdateCompanyProfile(ctx context.Context, token string, input CompanyProfileInput) (*domain.CompanyProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	profile := m.companyProfileOfLocked(account.user.ID)
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	profile.CompanyName = input.CompanyName
	profile.Description = input.Description
	profile.Industry = input.Industry
	profile.Location = input.Location
	profile.LogoURL = input.LogoURL
	profile.Website = input.Website
	profile.UpdatedAt = time.Now().UTC()
	result := *profile
	return &result, nil
}

// GetAllCompanyProfiles lists company profiles
func (m *MockGateway) GetAllCompanyProfiles(ctx context.Context, token string, verifiedOnly bool) ([]domain.CompanyProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	if _, err := m.authenticateLocked(token); err != nil {
		return nil, err
	}
	profiles := make([]domain.CompanyProfile, 0, len(m.companyProfiles))
	for _, profile := range m.companyProfiles {
		if verifiedOnly && !profile.IsVerified {
			continue
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

// VerifyCompany marks a company profile as verified. Verifying twice is
// a no-op, not an error.
func (m *MockGateway) VerifyCompany(ctx context.Context, token, companyProfileID string) (*domain.CompanyProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	if account.user.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: admin role required", domain.ErrConflict)
	}
	profile, ok := m.companyProfiles[companyProfileID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	profile.Verify()
	result := *profile
	return &result, nil
}

// GetStudentProfile fetches the caller's own student profile
func (m *MockGateway) GetStudentProfile(ctx context.Context, token string) (*domain.StudentProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	profile := m.studentProfileOfLocked(account.user.ID)
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	result := *profile
	return &result, nil
}

// CreateStudentProfile creates the caller's student profile
func (m *MockGateway) CreateStudentProfile(ctx context.Context, token string, input StudentProfileInput) (*domain.StudentProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	if account.user.Role != domain.RoleStudent {
		return nil, fmt.Errorf("%w: student role required", domain.ErrConflict)
	}
	if m.studentProfileOfLocked(account.user.ID) != nil {
		return nil, fmt.Errorf("%w: student profile already exists", domain.ErrConflict)
	}
	profile := &domain.StudentProfile{
		ID:              uuid.NewString(),
		UserID:          account.user.ID,
		FirstName:       input.FirstName,
		LastName:        input.LastName,
		Skills:          input.Skills,
		CVURL:           input.CVURL,
		Bio:             input.Bio,
		ExperienceLevel: input.ExperienceLevel,
		Education:       input.Education,
		UpdatedAt:       time.Now().UTC(),
	}
	m.studentProfiles[profile.ID] = profile
	m.studentOwner[account.user.ID] = profile.ID
	result := *profile
	return &result, nil
}

// UpdateStudentProfile updates the caller's student profile
func (m *MockGateway) UpdateStudentProfile(ctx context.Context, token string, input StudentProfileInput) (*domain.StudentProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	profile := m.studentProfileOfLocked(account.user.ID)
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	profile.FirstName = input.FirstName
	profile.LastName = input.LastName
	profile.Skills = input.Skills
	profile.CVURL = input.CVURL
	profile.Bio = input.Bio
	profile.ExperienceLevel = input.ExperienceLevel
	profile.Education = input.Education
	profile.UpdatedAt = time.Now().UTC()
	result := *profile
	return &result, nil
}

// GetAllStudentProfiles lists student profiles, admin only
func (m *MockGateway) GetAllStudentProfiles(ctx context.Context, token string) ([]domain.StudentProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	if account.user.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: admin role required", domain.ErrConflict)
	}
	profiles := make([]domain.StudentProfile, 0, len(m.studentProfiles))
	for _, profile := range m.studentProfiles {
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

// GetAllUsers lists every account, admin only
func (m *MockGateway) GetAllUsers(ctx context.Context, token string) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return nil, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return nil, err
	}
	if account.user.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: admin role required", domain.ErrConflict)
	}
	users := make([]domain.User, 0, len(m.users))
	for _, a := range m.users {
		users = append(users, a.user)
	}
	return users, nil
}

// DeleteUser removes an account and everything it owns, admin only
func (m *MockGateway) DeleteUser(ctx context.Context, token, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failure != nil {
		return false, m.failure
	}
	account, err := m.authenticateLocked(token)
	if err != nil {
		return false, err
	}
	if account.user.Role != domain.RoleAdmin {
		return false, fmt.Errorf("%w: admin role required", domain.ErrConflict)
	}
	target, ok := m.users[userID]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	if profileID, ok := m.studentOwner[userID]; ok {
		for id, app := range m.applications {
			if app.StudentProfileID == profileID {
				delete(m.applications, id)
			}
		}
		delete(m.studentProfiles, profileID)
		delete(m.studentOwner, userID)
	}
	if profileID, ok := m.companyOwner[userID]; ok {
		for id, job := range m.jobs {
			if job.CompanyProfileID == profileID {
				for appID, app := range m.applications {
					if app.JobID == id {
						delete(m.applications, appID)
					}
				}
				delete(m.jobs, id)
			}
		}
		delete(m.companyProfiles, profileID)
		delete(m.companyOwner, userID)
	}
	delete(m.users, target.user.ID)
	return true, nil
}

var _ Gateway = (*MockGateway)(nil)
var _ Gateway = (*HTTPGateway)(nil)
