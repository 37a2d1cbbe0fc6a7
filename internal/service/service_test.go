package service

import (
	"context"
	"errors"
	"testing"

	"github.com/internmatch/portal/internal/domain"
	"github.com/internmatch/portal/internal/gateway"
	"github.com/internmatch/portal/internal/session"
	"github.com/internmatch/portal/pkg/logger"
)

type testEnv struct {
	gw           *gateway.MockGateway
	store        *session.MemoryStore
	auth         AuthService
	jobs         JobService
	applications ApplicationService
	profiles     ProfileService
	admin        AdminService
}

func newTestEnv() *testEnv {
	gw := gateway.NewMockGateway()
	store := session.NewMemoryStore()
	log := logger.NewNop()
	return &testEnv{
		gw:           gw,
		store:        store,
		auth:         NewAuthService(gw, store, log),
		jobs:         NewJobService(gw, log),
		applications: NewApplicationService(gw, log),
		profiles:     NewProfileService(gw, log),
		admin:        NewAdminService(gw, log),
	}
}

// adminBearer seeds an admin account and returns its credential
func (e *testEnv) adminBearer(t *testing.T) string {
	t.Helper()
	admin := e.gw.SeedUser("admin@internmatch.io", "password123", domain.RoleAdmin)
	bearer, err := e.gw.MintToken(admin.ID)
	if err != nil {
		t.Fatalf("MintToken() error = %v", err)
	}
	return bearer
}

// verifiedCompany signs up a company, creates its profile, and verifies it
func (e *testEnv) verifiedCompany(t *testing.T, email string) (bearer string, profileID string) {
	t.Helper()
	ctx := context.Background()

	_, _, err := e.auth.Signup(ctx, email, "password123", domain.RoleCompany)
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	payload, err := e.gw.Login(ctx, email, "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	bearer = payload.Token

	profile, err := e.profiles.CreateCompany(ctx, bearer, gateway.CompanyProfileInput{CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}
	if _, err := e.admin.VerifyCompany(ctx, e.adminBearer(t), profile.ID); err != nil {
		t.Fatalf("VerifyCompany() error = %v", err)
	}
	return bearer, profile.ID
}

// studentWithProfile signs up a student with a profile and returns its credential
func (e *testEnv) studentWithProfile(t *testing.T, email string, skills []string) string {
	t.Helper()
	ctx := context.Background()

	_, _, err := e.auth.Signup(ctx, email, "password123", domain.RoleStudent)
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	payload, err := e.gw.Login(ctx, email, "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if _, err := e.profiles.CreateStudent(ctx, payload.Token, gateway.StudentProfileInput{
		FirstName: "Alex",
		LastName:  "Kim",
		Skills:    skills,
	}); err != nil {
		t.Fatalf("CreateStudent() error = %v", err)
	}
	return payload.Token
}

func TestLoginOpensSession(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.gw.SeedUser("stu@example.com", "password123", domain.RoleStudent)

	sessionID, user, err := env.auth.Login(ctx, "stu@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if sessionID == "" {
		t.Fatal("empty session id")
	}
	if user.Role != domain.RoleStudent {
		t.Errorf("Role = %q", user.Role)
	}

	// The stored credential resolves back to the same identity
	bearer, err := env.store.Get(ctx, sessionID)
	if err != nil || bearer == "" {
		t.Fatalf("stored credential = %q, err = %v", bearer, err)
	}
	me, err := env.auth.Me(ctx, sessionID, bearer)
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if me.ID != user.ID {
		t.Errorf("Me() id = %q, want %q", me.ID, user.ID)
	}
}

func TestLoginBadPassword(t *testing.T) {
	env := newTestEnv()
	env.gw.SeedUser("stu@example.com", "password123", domain.RoleStudent)

	_, _, err := env.auth.Login(context.Background(), "stu@example.com", "wrong")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Login() error = %v, want ErrUnauthorized", err)
	}
}

func TestLogoutDestroysSession(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.gw.SeedUser("stu@example.com", "password123", domain.RoleStudent)
	sessionID, _, err := env.auth.Login(ctx, "stu@example.com", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if err := env.auth.Logout(ctx, sessionID); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	bearer, _ := env.store.Get(ctx, sessionID)
	if bearer != "" {
		t.Errorf("credential survived logout: %q", bearer)
	}

	// Logging out again, or with no session at all, succeeds
	if err := env.auth.Logout(ctx, sessionID); err != nil {
		t.Errorf("repeat Logout() error = %v", err)
	}
	if err := env.auth.Logout(ctx, ""); err != nil {
		t.Errorf("anonymous Logout() error = %v", err)
	}
}

func TestMeClearsRejectedSession(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// A credential the backend will not accept
	env.store.Set(ctx, "sess-1", "header.payload.signature")

	_, err := env.auth.Me(ctx, "sess-1", "header.payload.signature")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Me() error = %v, want ErrUnauthorized", err)
	}
	bearer, _ := env.store.Get(ctx, "sess-1")
	if bearer != "" {
		t.Errorf("rejected credential still stored: %q", bearer)
	}
}

func TestStudentApplicationJourney(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	companyBearer, _ := env.verifiedCompany(t, "co@example.com")
	job, err := env.jobs.Create(ctx, companyBearer, gateway.CreateJobInput{
		Title:          "Backend Intern",
		Type:           domain.JobTypeIntern,
		RequiredSkills: []string{"Go", "SQL"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	studentBearer := env.studentWithProfile(t, "stu@example.com", []string{"Go"})

	jobs, err := env.jobs.List(ctx, studentBearer, gateway.JobFilter{Status: domain.JobStatusOpen})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(jobs) != 1 || jobs[0].ID != job.ID {
		t.Fatalf("List() = %v, want the posted job", jobs)
	}

	app, err := env.applications.Apply(ctx, studentBearer, job.ID, "I would love to join")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if app.Status != domain.ApplicationStatusApplied {
		t.Errorf("Status = %q, want applied", app.Status)
	}
	if app.MatchScore != 0.5 {
		t.Errorf("MatchScore = %v, want 0.5", app.MatchScore)
	}

	// Second application to the same job is caught locally
	_, err = env.applications.Apply(ctx, studentBearer, job.ID, "again")
	if !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Fatalf("second Apply() error = %v, want ErrAlreadyApplied", err)
	}

	mine, err := env.applications.List(ctx, studentBearer)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(mine) != 1 {
		t.Errorf("applications = %d, want 1", len(mine))
	}
}

func TestUnverifiedCompanyCannotPost(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, _, err := env.auth.Signup(ctx, "co@example.com", "password123", domain.RoleCompany)
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	payload, _ := env.gw.Login(ctx, "co@example.com", "password123")
	if _, err := env.profiles.CreateCompany(ctx, payload.Token, gateway.CompanyProfileInput{CompanyName: "Acme"}); err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}

	_, err = env.jobs.Create(ctx, payload.Token, gateway.CreateJobInput{Title: "Intern", Type: domain.JobTypeIntern})
	if !errors.Is(err, domain.ErrCompanyNotVerified) {
		t.Fatalf("Create() error = %v, want ErrCompanyNotVerified", err)
	}
}

func TestCompanyReviewPipeline(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	companyBearer, _ := env.verifiedCompany(t, "co@example.com")
	job, err := env.jobs.Create(ctx, companyBearer, gateway.CreateJobInput{Title: "Intern", Type: domain.JobTypeIntern})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	studentBearer := env.studentWithProfile(t, "stu@example.com", nil)
	app, err := env.applications.Apply(ctx, studentBearer, job.ID, "")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	// Skipping the review stage is rejected locally
	_, err = env.applications.UpdateStatus(ctx, companyBearer, app.ID, domain.ApplicationStatusInterviewScheduled)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("skip transition error = %v, want ErrInvalidTransition", err)
	}

	for _, status := range []domain.ApplicationStatus{
		domain.ApplicationStatusReviewing,
		domain.ApplicationStatusInterviewScheduled,
		domain.ApplicationStatusAccepted,
	} {
		updated, err := env.applications.UpdateStatus(ctx, companyBearer, app.ID, status)
		if err != nil {
			t.Fatalf("UpdateStatus(%s) error = %v", status, err)
		}
		if updated.Status != status {
			t.Errorf("Status = %q, want %q", updated.Status, status)
		}
	}

	// Accepted is terminal
	_, err = env.applications.UpdateStatus(ctx, companyBearer, app.ID, domain.ApplicationStatusRejected)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Errorf("terminal transition error = %v, want ErrInvalidTransition", err)
	}
}

func TestJobCloseFlow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	companyBearer, _ := env.verifiedCompany(t, "co@example.com")
	job, err := env.jobs.Create(ctx, companyBearer, gateway.CreateJobInput{Title: "Intern", Type: domain.JobTypeIntern})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	closed, err := env.jobs.Close(ctx, companyBearer, job.ID)
	if err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if closed.Status != domain.JobStatusClosed {
		t.Errorf("Status = %q, want closed", closed.Status)
	}

	// Closing again is rejected locally
	_, err = env.jobs.Close(ctx, companyBearer, job.ID)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("second Close() error = %v, want ErrInvalidTransition", err)
	}

	// Applying to a closed job is a backend conflict
	studentBearer := env.studentWithProfile(t, "stu@example.com", nil)
	_, err = env.applications.Apply(ctx, studentBearer, job.ID, "")
	if !errors.Is(err, domain.ErrConflict) {
		t.Errorf("Apply() on closed job error = %v, want ErrConflict", err)
	}
}

func TestAdminVerificationFlow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, _, err := env.auth.Signup(ctx, "co@example.com", "password123", domain.RoleCompany)
	if err != nil {
		t.Fatalf("Signup() error = %v", err)
	}
	payload, _ := env.gw.Login(ctx, "co@example.com", "password123")
	profile, err := env.profiles.CreateCompany(ctx, payload.Token, gateway.CompanyProfileInput{CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("CreateCompany() error = %v", err)
	}

	adminBearer := env.adminBearer(t)

	// Rejecting leaves the profile untouched
	if err := env.admin.RejectVerification(ctx, adminBearer, profile.ID); err != nil {
		t.Fatalf("RejectVerification() error = %v", err)
	}
	got, err := env.profiles.GetCompany(ctx, payload.Token)
	if err != nil {
		t.Fatalf("GetCompany() error = %v", err)
	}
	if got.IsVerified {
		t.Fatal("rejection must not verify the profile")
	}

	verified, err := env.admin.VerifyCompany(ctx, adminBearer, profile.ID)
	if err != nil {
		t.Fatalf("VerifyCompany() error = %v", err)
	}
	if !verified.IsVerified {
		t.Fatal("profile not verified")
	}

	pending, err := env.admin.ListCompanyProfiles(ctx, adminBearer)
	if err != nil {
		t.Fatalf("ListCompanyProfiles() error = %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("profiles = %d, want 1", len(pending))
	}
}

func TestAdminUserManagement(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	studentBearer := env.studentWithProfile(t, "stu@example.com", nil)
	adminBearer := env.adminBearer(t)

	users, err := env.admin.ListUsers(ctx, adminBearer)
	if err != nil {
		t.Fatalf("ListUsers() error = %v", err)
	}
	var studentID string
	for _, u := range users {
		if u.Role == domain.RoleStudent {
			studentID = u.ID
		}
	}
	if studentID == "" {
		t.Fatal("student missing from user list")
	}

	if err := env.admin.DeleteUser(ctx, adminBearer, studentID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	// The deleted account cannot act anymore
	if _, err := env.profiles.GetStudent(ctx, studentBearer); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("GetStudent() after delete error = %v, want ErrUnauthorized", err)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.gw.SeedUser("stu@example.com", "oldpass123", domain.RoleStudent)

	if err := env.auth.RequestPasswordReset(ctx, "stu@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset() error = %v", err)
	}
	// Unknown emails get the same answer
	if err := env.auth.RequestPasswordReset(ctx, "nobody@example.com"); err != nil {
		t.Fatalf("RequestPasswordReset() for unknown email error = %v", err)
	}

	resetToken := env.gw.ResetTokenFor("stu@example.com")
	if resetToken == "" {
		t.Fatal("no reset token recorded")
	}
	if err := env.auth.ResetPassword(ctx, resetToken, "newpass123"); err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	if _, _, err := env.auth.Login(ctx, "stu@example.com", "newpass123"); err != nil {
		t.Errorf("Login() with new password error = %v", err)
	}
}

func TestTransportFailureSurfacesAsTransport(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.gw.SeedUser("stu@example.com", "password123", domain.RoleStudent)
	env.gw.SetFailure(domain.ErrTransport)

	if _, _, err := env.auth.Login(ctx, "stu@example.com", "password123"); !errors.Is(err, domain.ErrTransport) {
		t.Fatalf("Login() error = %v, want ErrTransport", err)
	}
}
