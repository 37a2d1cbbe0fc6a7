package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/internmatch/portal/internal/domain"
	"github.com/internmatch/portal/pkg/logger"
	"github.com/internmatch/portal/pkg/telemetry"
)

// HTTPGateway talks GraphQL-over-HTTP to the backend. One POST per
// operation, no batching, no automatic retries: a failed operation is
// reported to the caller exactly once.
type HTTPGateway struct {
	endpoint string
	client   *http.Client
	log      *logger.Logger
}

// NewHTTPGateway creates a gateway client for the given GraphQL endpoint
func NewHTTPGateway(endpoint string, timeout time.Duration, log *logger.Logger) *HTTPGateway {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPGateway{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		log:      log,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// do executes one GraphQL operation and decodes the data payload into out.
// token may be empty for public operations.
func (g *HTTPGateway) do(ctx context.Context, opName, token, query string, variables map[string]any, out any) error {
	ctx, span := telemetry.StartSpan(ctx, "gateway."+opName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("graphql.operation", opName)),
	)
	defer span.End()

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("%w: encode request: %v", domain.ErrTransport, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		span.RecordError(err)
		g.log.Warn("gateway request failed",
			zap.String("operation", opName),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrUnauthorized
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: backend returned status %d", domain.ErrTransport, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrTransport, err)
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrTransport, err)
	}

	if len(envelope.Errors) > 0 {
		return g.classify(opName, envelope.Errors[0])
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("%w: decode data: %v", domain.ErrTransport, err)
		}
	}
	return nil
}

// classify maps a GraphQL error to the portal's error taxonomy. Domain
// rejections keep the backend's message verbatim so handlers can surface
// it unchanged.
func (g *HTTPGateway) classify(opName string, gqlErr graphqlError) error {
	switch gqlErr.Extensions.Code {
	case "UNAUTHENTICATED":
		return domain.ErrUnauthorized
	case "INTERNAL_SERVER_ERROR":
		g.log.Error("gateway operation failed on backend",
			zap.String("operation", opName),
			zap.String("message", gqlErr.Message),
		)
		return fmt.Errorf("%w: %s", domain.ErrTransport, gqlErr.Message)
	default:
		return fmt.Errorf("%w: %s", domain.ErrConflict, gqlErr.Message)
	}
}

const userFields = `id email role createdAt`

const jobFields = `id companyProfileId title description type requiredSkills location salaryRange status postedAt`

const applicationFields = `id jobId studentProfileId status coverLetter matchScore appliedAt`

const companyProfileFields = `id companyName description industry location logoUrl website isVerified updatedAt`

const studentProfileFields = `id userId firstName lastName skills cvUrl bio experienceLevel education { school degree field startYear endYear } updatedAt`

// Login authenticates with email and password
func (g *HTTPGateway) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	query := fmt.Sprintf(`mutation Login($email: String!, $password: String!) {
		login(email: $email, password: $password) { token user { %s } }
	}`, userFields)
	var resp struct {
		Login authPayloadWire `json:"login"`
	}
	if err := g.do(ctx, "login", "", query, map[string]any{"email": email, "password": password}, &resp); err != nil {
		return nil, err
	}
	return resp.Login.toDomain()
}

// Signup registers a new account and returns its first credential
func (g *HTTPGateway) Signup(ctx context.Context, email, password string, role domain.Role) (*AuthPayload, error) {
	query := fmt.Sprintf(`mutation Signup($email: String!, $password: String!, $role: String!) {
		signup(email: $email, password: $password, role: $role) { token user { %s } }
	}`, userFields)
	vars := map[string]any{"email": email, "password": password, "role": string(role)}
	var resp struct {
		Signup authPayloadWire `json:"signup"`
	}
	if err := g.do(ctx, "signup", "", query, vars, &resp); err != nil {
		return nil, err
	}
	return resp.Signup.toDomain()
}

// Me resolves the identity behind the bearer credential
func (g *HTTPGateway) Me(ctx context.Context, token string) (*domain.User, error) {
	query := fmt.Sprintf(`query Me { me { %s } }`, userFields)
	var resp struct {
		Me userWire `json:"me"`
	}
	if err := g.do(ctx, "me", token, query, nil, &resp); err != nil {
		return nil, err
	}
	user, err := resp.Me.toDomain()
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RequestPasswordReset starts the password reset flow for an email
func (g *HTTPGateway) RequestPasswordReset(ctx context.Context, email string) (bool, error) {
	query := `mutation RequestPasswordReset($email: String!) {
		requestPasswordReset(email: $email)
	}`
	var resp struct {
		RequestPasswordReset bool `json:"requestPasswordReset"`
	}
	if err := g.do(ctx, "requestPasswordReset", "", query, map[string]any{"email": email}, &resp); err != nil {
		return false, err
	}
	return resp.RequestPasswordReset, nil
}

// ResetPassword completes the password reset flow
func (g *HTTPGateway) ResetPassword(ctx context.Context, resetToken, newPassword string) (bool, error) {
	query := `mutation ResetPassword($token: String!, $newPassword: String!) {
		resetPassword(token: $token, newPassword: $newPassword)
	}`
	vars := map[string]any{"token": resetToken, "newPassword": newPassword}
	var resp struct {
		ResetPassword bool `json:"resetPassword"`
	}
	if err := g.do(ctx, "resetPassword", "", query, vars, &resp); err != nil {
		return false, err
	}
	return resp.ResetPassword, nil
}

// GetAllJobs lists job postings, optionally filtered
func (g *HTTPGateway) GetAllJobs(ctx context.Context, token string, filter JobFilter) ([]domain.Job, error) {
	query := fmt.Sprintf(`query GetAllJobs($status: String, $companyProfileId: ID) {
		getAllJobs(status: $status, companyProfileId: $companyProfileId) { %s }
	}`, jobFields)
	vars := map[string]any{}
	if filter.Status != "" {
		vars["status"] = string(filter.Status)
	}
	if filter.CompanyProfileID != "" {
		vars["companyProfileId"] = filter.CompanyProfileID
	}
	var resp struct {
		GetAllJobs []jobWire `json:"getAllJobs"`
	}
	if err := g.do(ctx, "getAllJobs", token, query, vars, &resp); err != nil {
		return nil, err
	}
	jobs := make([]domain.Job, 0, len(resp.GetAllJobs))
	for _, w := range resp.GetAllJobs {
		job, err := w.toDomain()
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// CreateJob creates a job posting for the caller's company profile
func (g *HTTPGateway) CreateJob(ctx context.Context, token string, input CreateJobInput) (*domain.Job, error) {
	query := fmt.Sprintf(`mutation CreateJob($input: CreateJobInput!) {
		createJob(input: $input) { %s }
	}`, jobFields)
	vars := map[string]any{"input": map[string]any{
		"title":          input.Title,
		"description":    input.Description,
		"type":           string(input.Type),
		"requiredSkills": input.RequiredSkills,
		"location":       input.Location,
		"salaryRange":    input.SalaryRange,
	}}
	var resp struct {
		CreateJob jobWire `json:"createJob"`
	}
	if err := g.do(ctx, "createJob", token, query, vars, &resp); err != nil {
		return nil, err
	}
	job, err := resp.CreateJob.toDomain()
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// CloseJob moves a job posting from open to closed
func (g *HTTPGateway) CloseJob(ctx context.Context, token, jobID string) (*domain.Job, error) {
	query := fmt.Sprintf(`mutation CloseJob($id: ID!) {
		updateJobStatus(id: $id, status: "closed") { %s }
	}`, jobFields)
	var resp struct {
		UpdateJobStatus jobWire `json:"updateJobStatus"`
	}
	if err := g.do(ctx, "closeJob", token, query, map[string]any{"id": jobID}, &resp); err != nil {
		return nil, err
	}
	job, err := resp.UpdateJobStatus.toDomain()
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// GetAllApplications lists the applications visible to the caller
func (g *HTTPGateway) GetAllApplications(ctx context.Context, token string) ([]domain.Application, error) {
	query := fmt.Sprintf(`query GetAllApplications { getAllApplications { %s } }`, applicationFields)
	var resp struct {
		GetAllApplications []applicationWire `json:"getAllApplications"`
	}
	if err := g.do(ctx, "getAllApplications", token, query, nil, &resp); err != nil {
		return nil, err
	}
	apps := make([]domain.Application, 0, len(resp.GetAllApplications))
	for _, w := range resp.GetAllApplications {
		app, err := w.toDomain()
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// CreateApplication submits an application to a job
func (g *HTTPGateway) CreateApplication(ctx context.Context, token, jobID, coverLetter string) (*domain.Application, error) {
	query := fmt.Sprintf(`mutation CreateApplication($jobId: ID!, $coverLetter: String) {
		createApplication(jobId: $jobId, coverLetter: $coverLetter) { %s }
	}`, applicationFields)
	vars := map[string]any{"jobId": jobID, "coverLetter": coverLetter}
	var resp struct {
		CreateApplication applicationWire `json:"createApplication"`
	}
	if err := g.do(ctx, "createApplication", token, query, vars, &resp); err != nil {
		return nil, err
	}
	app, err := resp.CreateApplication.toDomain()
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateApplicationStatus requests a status transition for an application
func (g *HTTPGateway) UpdateApplicationStatus(ctx context.Context, token, id string, status domain.ApplicationStatus) (*domain.Application, error) {
	query := fmt.Sprintf(`mutation UpdateApplicationStatus($id: ID!, $status: String!) {
		updateApplicationStatus(id: $id, status: $status) { %s }
	}`, applicationFields)
	vars := map[string]any{"id": id, "status": string(status)}
	var resp struct {
		UpdateApplicationStatus applicationWire `json:"updateApplicationStatus"`
	}
	if err := g.do(ctx, "updateApplicationStatus", token, query, vars, &resp); err != nil {
		return nil, err
	}
	app, err := resp.UpdateApplicationStatus.toDomain()
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// GetCompanyProfile fetches the caller's own company profile
func (g *HTTPGateway) GetCompanyProfile(ctx context.Context, token string) (*domain.CompanyProfile, error) {
	query := fmt.Sprintf(`query GetCompanyProfile { getCompanyProfile { %s } }`, companyProfileFields)
	var resp struct {
		GetCompanyProfile *companyProfileWire `json:"getCompanyProfile"`
	}
	if err := g.do(ctx, "getCompanyProfile", token, query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.GetCompanyProfile == nil {
		return nil, domain.ErrProfileNotFound
	}
	profile := resp.GetCompanyProfile.toDomain()
	return &profile, nil
}

func companyProfileVars(input CompanyProfileInput) map[string]any {
	return map[string]any{"input": map[string]any{
		"companyName": input.CompanyName,
		"description": input.Description,
		"industry":    input.Industry,
		"location":    input.Location,
		"logoUrl":     input.LogoURL,
		"website":     input.Website,
	}}
}

// CreateCompanyProfile creates the caller's company profile
func (g *HTTPGateway) CreateCompanyProfile(ctx context.Context, token string, input CompanyProfileInput) (*domain.CompanyProfile, error) {
	query := fmt.Sprintf(`mutation CreateCompanyProfile($input: CompanyProfileInput!) {
		createCompanyProfile(input: $input) { %s }
	}`, companyProfileFields)
	var resp struct {
		CreateCompanyProfile companyProfileWire `json:"createCompanyProfile"`
	}
	if err := g.do(ctx, "createCompanyProfile", token, query, companyProfileVars(input), &resp); err != nil {
		return nil, err
	}
	profile := resp.CreateCompanyProfile.toDomain()
	return &profile, nil
}

// UpdateCompanyProfile updates the caller's company profile
func (g *HTTPGateway) UpdateCompanyProfile(ctx context.Context, token string, input CompanyProfileInput) (*domain.CompanyProfile, error) {
	query := fmt.Sprintf(`mutation UpdateCompanyProfile($input: CompanyProfileInput!) {
		updateCompanyProfile(input: $input) { %s }
	}`, companyProfileFields)
	var resp struct {
		UpdateCompanyProfile companyProfileWire `json:"updateCompanyProfile"`
	}
	if err := g.do(ctx, "updateCompanyProfile", token, query, companyProfileVars(input), &resp); err != nil {
		return nil, err
	}
	profile := resp.UpdateCompanyProfile.toDomain()
	return &profile, nil
}

// GetAllCompanyProfiles lists company profiles
func (g *HTTPGateway) GetAllCompanyProfiles(ctx context.Context, token string, verifiedOnly bool) ([]domain.CompanyProfile, error) {
	query := fmt.Sprintf(`query GetAllCompanyProfiles($verifiedOnly: Boolean) {
		getAllCompanyProfiles(verifiedOnly: $verifiedOnly) { %s }
	}`, companyProfileFields)
	var resp struct {
		GetAllCompanyProfiles []companyProfileWire `json:"getAllCompanyProfiles"`
	}
	if err := g.do(ctx, "getAllCompanyProfiles", token, query, map[string]any{"verifiedOnly": verifiedOnly}, &resp); err != nil {
		return nil, err
	}
	profiles := make([]domain.CompanyProfile, 0, len(resp.GetAllCompanyProfiles))
	for _, w := range resp.GetAllCompanyProfiles {
		profiles = append(profiles, w.toDomain())
	}
	return profiles, nil
}

// VerifyCompany marks a company profile as verified
func (g *HTTPGateway) VerifyCompany(ctx context.Context, token, companyProfileID string) (*domain.CompanyProfile, error) {
	query := fmt.Sprintf(`mutation VerifyCompany($id: ID!) {
		verifyCompany(id: $id) { %s }
	}`, companyProfileFields)
	var resp struct {
		VerifyCompany companyProfileWire `json:"verifyCompany"`
	}
	if err := g.do(ctx, "verifyCompany", token, query, map[string]any{"id": companyProfileID}, &resp); err != nil {
		return nil, err
	}
	profile := resp.VerifyCompany.toDomain()
	return &profile, nil
}

// GetStudentProfile fetches the caller's own student profile
func (g *HTTPGateway) GetStudentProfile(ctx context.Context, token string) (*domain.StudentProfile, error) {
	query := fmt.Sprintf(`query GetStudentProfile { getStudentProfile { %s } }`, studentProfileFields)
	var resp struct {
		GetStudentProfile *studentProfileWire `json:"getStudentProfile"`
	}
	if err := g.do(ctx, "getStudentProfile", token, query, nil, &resp); err != nil {
		return nil, err
	}
	if resp.GetStudentProfile == nil {
		return nil, domain.ErrProfileNotFound
	}
	profile, err := resp.GetStudentProfile.toDomain()
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func studentProfileVars(input StudentProfileInput) map[string]any {
	return map[string]any{"input": map[string]any{
		"firstName":       input.FirstName,
		"lastName":        input.LastName,
		"skills":          input.Skills,
		"cvUrl":           input.CVURL,
		"bio":             input.Bio,
		"experienceLevel": string(input.ExperienceLevel),
		"education":       educationToWire(input.Education),
	}}
}

// CreateStudentProfile creates the caller's student profile
func (g *HTTPGateway) CreateStudentProfile(ctx context.Context, token string, input StudentProfileInput) (*domain.StudentProfile, error) {
	query := fmt.Sprintf(`mutation CreateStudentProfile($input: StudentProfileInput!) {
		createStudentProfile(input: $input) { %s }
	}`, studentProfileFields)
	var resp struct {
		CreateStudentProfile studentProfileWire `json:"createStudentProfile"`
	}
	if err := g.do(ctx, "createStudentProfile", token, query, studentProfileVars(input), &resp); err != nil {
		return nil, err
	}
	profile, err := resp.CreateStudentProfile.toDomain()
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateStudentProfile updates the caller's student profile
func (g *HTTPGateway) UpdateStudentProfile(ctx context.Context, token string, input StudentProfileInput) (*domain.StudentProfile, error) {
	query := fmt.Sprintf(`mutation UpdateStudentProfile($input: StudentProfileInput!) {
		updateStudentProfile(input: $input) { %s }
	}`, studentProfileFields)
	var resp struct {
		UpdateStudentProfile studentProfileWire `json:"updateStudentProfile"`
	}
	if err := g.do(ctx, "updateStudentProfile", token, query, studentProfileVars(input), &resp); err != nil {
		return nil, err
	}
	profile, err := resp.UpdateStudentProfile.toDomain()
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetAllStudentProfiles lists student profiles
func (g *HTTPGateway) GetAllStudentProfiles(ctx context.Context, token string) ([]domain.StudentProfile, error) {
	query := fmt.Sprintf(`query GetAllStudentProfiles { getAllStudentProfiles { %s } }`, studentProfileFields)
	var resp struct {
		GetAllStudentProfiles []studentProfileWire `json:"getAllStudentProfiles"`
	}
	if err := g.do(ctx, "getAllStudentProfiles", token, query, nil, &resp); err != nil {
		return nil, err
	}
	profiles := make([]domain.StudentProfile, 0, len(resp.GetAllStudentProfiles))
	for _, w := range resp.GetAllStudentProfiles {
		profile, err := w.toDomain()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// GetAllUsers lists every account
func (g *HTTPGateway) GetAllUsers(ctx context.Context, token string) ([]domain.User, error) {
	query := fmt.Sprintf(`query GetAllUsers { getAllUsers { %s } }`, userFields)
	var resp struct {
		GetAllUsers []userWire `json:"getAllUsers"`
	}
	if err := g.do(ctx, "getAllUsers", token, query, nil, &resp); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(resp.GetAllUsers))
	for _, w := range resp.GetAllUsers {
		user, err := w.toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// DeleteUser removes an account
func (g *HTTPGateway) DeleteUser(ctx context.Context, token, userID string) (bool, error) {
	query := `mutation DeleteUser($id: ID!) { deleteUser(id: $id) }`
	var resp struct {
		DeleteUser bool `json:"deleteUser"`
	}
	if err := g.do(ctx, "deleteUser", token, query, map[string]any{"id": userID}, &resp); err != nil {
		return false, err
	}
	return resp.DeleteUser, nil
}
