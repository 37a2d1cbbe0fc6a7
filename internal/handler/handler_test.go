package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/internmatch/portal/internal/auth"
	"github.com/internmatch/portal/internal/domain"
	"github.com/internmatch/portal/internal/gateway"
	"github.com/internmatch/portal/internal/service"
	"github.com/internmatch/portal/internal/session"
	"github.com/internmatch/portal/pkg/logger"
	"github.com/internmatch/portal/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router *gin.Engine
	gw     *gateway.MockGateway
	store  *session.MemoryStore
}

func newTestServer() *testServer {
	gw := gateway.NewMockGateway()
	store := session.NewMemoryStore()
	log := logger.NewNop()

	authSvc := service.NewAuthService(gw, store, log)
	h := &Handlers{
		Auth:        NewAuthHandler(authSvc),
		Job:         NewJobHandler(service.NewJobService(gw, log)),
		Application: NewApplicationHandler(service.NewApplicationService(gw, log)),
		Profile:     NewProfileHandler(service.NewProfileService(gw, log)),
		Admin:       NewAdminHandler(service.NewAdminService(gw, log)),
		Health:      NewHealthHandler(nil),
	}

	r := gin.New()
	RegisterRoutes(r, h, auth.NewMiddleware(store, log))
	return &testServer{router: r, gw: gw, store: store}
}

func (s *testServer) do(t *testing.T, method, path, sessionID string, body any) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set("Authorization", "Bearer "+sessionID)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var envelope response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope from %q: %v", w.Body.String(), err)
	}
	return w, envelope
}

// signup registers an account through the API and returns its session id
func (s *testServer) signup(t *testing.T, email, role string) string {
	t.Helper()
	w, envelope := s.do(t, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"email":    email,
		"password": "password123",
		"role":     role,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup status = %d, body = %s", w.Code, w.Body.String())
	}
	data := envelope.Data.(map[string]any)
	return data["session_id"].(string)
}

// adminSession seeds an admin and opens a session for it
func (s *testServer) adminSession(t *testing.T) string {
	t.Helper()
	s.gw.SeedUser("admin@internmatch.io", "password123", domain.RoleAdmin)
	w, envelope := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "admin@internmatch.io",
		"password": "password123",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("admin login status = %d", w.Code)
	}
	return envelope.Data.(map[string]any)["session_id"].(string)
}

// verifiedCompanySession registers a company, creates its profile, and
// has an admin verify it
func (s *testServer) verifiedCompanySession(t *testing.T, email string) string {
	t.Helper()
	sessionID := s.signup(t, email, "company")
	w, envelope := s.do(t, http.MethodPost, "/api/v1/company/profile", sessionID, map[string]any{
		"company_name": "Acme",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create profile status = %d, body = %s", w.Code, w.Body.String())
	}
	profileID := envelope.Data.(map[string]any)["id"].(string)

	adminID := s.adminSession(t)
	w, _ = s.do(t, http.MethodPost, "/api/v1/admin/companies/"+profileID+"/verify", adminID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("verify status = %d", w.Code)
	}
	return sessionID
}

func TestRouteGating(t *testing.T) {
	s := newTestServer()
	studentID := s.signup(t, "stu@example.com", "student")

	tests := []struct {
		name         string
		method       string
		path         string
		sessionID    string
		wantStatus   int
		wantRedirect string
	}{
		{"no session on gated route", http.MethodGet, "/api/v1/jobs", "", http.StatusUnauthorized, "/login"},
		{"unknown session id", http.MethodGet, "/api/v1/jobs", "sess-bogus", http.StatusUnauthorized, "/login"},
		{"student on admin route", http.MethodGet, "/api/v1/admin/users", studentID, http.StatusForbidden, "/"},
		{"student on company route", http.MethodGet, "/api/v1/company/profile", studentID, http.StatusForbidden, "/"},
		{"student on student route", http.MethodGet, "/api/v1/applications", studentID, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, envelope := s.do(t, tt.method, tt.path, tt.sessionID, nil)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body = %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantRedirect != "" {
				if envelope.Error == nil || envelope.Error.Redirect != tt.wantRedirect {
					t.Errorf("redirect = %+v, want %q", envelope.Error, tt.wantRedirect)
				}
			}
		})
	}
}

func TestSignupValidation(t *testing.T) {
	s := newTestServer()

	tests := []struct {
		name string
		body map[string]any
	}{
		{"admin role rejected", map[string]any{"email": "a@b.co", "password": "password123", "role": "admin"}},
		{"unknown role", map[string]any{"email": "a@b.co", "password": "password123", "role": "wizard"}},
		{"short password", map[string]any{"email": "a@b.co", "password": "short", "role": "student"}},
		{"bad email", map[string]any{"email": "not-an-email", "password": "password123", "role": "student"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := s.do(t, http.MethodPost, "/api/v1/auth/signup", "", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400, body = %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestUnverifiedCompanyJobPost(t *testing.T) {
	s := newTestServer()
	sessionID := s.signup(t, "co@example.com", "company")

	w, _ := s.do(t, http.MethodPost, "/api/v1/company/profile", sessionID, map[string]any{
		"company_name": "Acme",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create profile status = %d", w.Code)
	}

	w, envelope := s.do(t, http.MethodPost, "/api/v1/company/jobs", sessionID, map[string]any{
		"title": "Backend Intern",
		"type":  "intern",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409, body = %s", w.Code, w.Body.String())
	}
	if envelope.Error == nil || !strings.Contains(envelope.Error.Message, "not verified") {
		t.Errorf("message = %+v, want verification conflict", envelope.Error)
	}
}

func TestApplicationLifecycleOverHTTP(t *testing.T) {
	s := newTestServer()

	companyID := s.verifiedCompanySession(t, "co@example.com")
	w, envelope := s.do(t, http.MethodPost, "/api/v1/company/jobs", companyID, map[string]any{
		"title":           "Backend Intern",
		"type":            "intern",
		"required_skills": []string{"Go"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create job status = %d, body = %s", w.Code, w.Body.String())
	}
	jobID := envelope.Data.(map[string]any)["id"].(string)

	studentID := s.signup(t, "stu@example.com", "student")
	w, _ = s.do(t, http.MethodPost, "/api/v1/student/profile", studentID, map[string]any{
		"first_name": "Alex",
		"last_name":  "Kim",
		"skills":     []string{"Go"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create student profile status = %d, body = %s", w.Code, w.Body.String())
	}

	w, envelope = s.do(t, http.MethodPost, "/api/v1/student/applications", studentID, map[string]any{
		"job_id": jobID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("apply status = %d, body = %s", w.Code, w.Body.String())
	}
	appID := envelope.Data.(map[string]any)["id"].(string)
	if score := envelope.Data.(map[string]any)["match_score"].(float64); score != 1.0 {
		t.Errorf("match_score = %v, want 1.0", score)
	}

	// Duplicate application conflicts
	w, envelope = s.do(t, http.MethodPost, "/api/v1/student/applications", studentID, map[string]any{
		"job_id": jobID,
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate apply status = %d, want 409", w.Code)
	}
	if !strings.Contains(envelope.Error.Message, "already applied") {
		t.Errorf("message = %q", envelope.Error.Message)
	}

	// Illegal transition conflicts, legal one succeeds
	w, _ = s.do(t, http.MethodPatch, "/api/v1/company/applications/"+appID+"/status", companyID, map[string]any{
		"status": "interview_scheduled",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("skip transition status = %d, want 409", w.Code)
	}
	w, envelope = s.do(t, http.MethodPatch, "/api/v1/company/applications/"+appID+"/status", companyID, map[string]any{
		"status": "reviewing",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("review transition status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := envelope.Data.(map[string]any)["status"].(string); got != "reviewing" {
		t.Errorf("status = %q, want reviewing", got)
	}

	// Setting the status back to applied is a validation error
	w, _ = s.do(t, http.MethodPatch, "/api/v1/company/applications/"+appID+"/status", companyID, map[string]any{
		"status": "applied",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("applied target status = %d, want 400", w.Code)
	}
}

func TestRejectVerificationIsAccepted(t *testing.T) {
	s := newTestServer()
	sessionID := s.signup(t, "co@example.com", "company")
	w, envelope := s.do(t, http.MethodPost, "/api/v1/company/profile", sessionID, map[string]any{
		"company_name": "Acme",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create profile status = %d", w.Code)
	}
	profileID := envelope.Data.(map[string]any)["id"].(string)

	adminID := s.adminSession(t)
	w, _ = s.do(t, http.MethodPost, "/api/v1/admin/companies/"+profileID+"/reject", adminID, nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("reject status = %d, want 202", w.Code)
	}

	// The profile is still there, still unverified
	w, envelope = s.do(t, http.MethodGet, "/api/v1/company/profile", sessionID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get profile status = %d", w.Code)
	}
	if envelope.Data.(map[string]any)["is_verified"].(bool) {
		t.Error("rejection must not verify the profile")
	}
}

func TestBackendOutageIsBadGateway(t *testing.T) {
	s := newTestServer()
	studentID := s.signup(t, "stu@example.com", "student")

	s.gw.SetFailure(domain.ErrTransport)
	w, _ := s.do(t, http.MethodGet, "/api/v1/jobs", studentID, nil)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502, body = %s", w.Code, w.Body.String())
	}
}

func TestLogoutThenGatedRoute(t *testing.T) {
	s := newTestServer()
	studentID := s.signup(t, "stu@example.com", "student")

	w, _ := s.do(t, http.MethodPost, "/api/v1/auth/logout", studentID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("logout status = %d", w.Code)
	}

	w, envelope := s.do(t, http.MethodGet, "/api/v1/jobs", studentID, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status after logout = %d, want 401", w.Code)
	}
	if envelope.Error == nil || envelope.Error.Redirect != "/login" {
		t.Errorf("redirect = %+v, want /login", envelope.Error)
	}
}

func TestMeReflectsBackendIdentity(t *testing.T) {
	s := newTestServer()
	studentID := s.signup(t, "stu@example.com", "student")

	w, envelope := s.do(t, http.MethodGet, "/api/v1/auth/me", studentID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d", w.Code)
	}
	data := envelope.Data.(map[string]any)
	if data["email"] != "stu@example.com" || data["role"] != "student" {
		t.Errorf("me = %v", data)
	}

	// When the backend stops accepting the credential the session dies
	s.gw.SetFailure(domain.ErrUnauthorized)
	w, _ = s.do(t, http.MethodGet, "/api/v1/auth/me", studentID, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("me status = %d, want 401", w.Code)
	}
	s.gw.SetFailure(nil)
	val, _ := s.store.Get(context.Background(), studentID)
	if val != "" {
		t.Error("rejected credential still stored")
	}
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer()
	w, _ := s.do(t, http.MethodGet, "/health/live", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("live status = %d", w.Code)
	}
	w, _ = s.do(t, http.MethodGet, "/health/ready", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("ready status = %d", w.Code)
	}
}
