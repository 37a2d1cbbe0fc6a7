package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/internmatch/portal/internal/domain"
	"github.com/internmatch/portal/internal/session"
	"github.com/internmatch/portal/pkg/logger"
	"github.com/internmatch/portal/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func mintToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "u-1", "email": "dev@example.com", "role": role}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func newRouter(store session.Store, required domain.Role) *gin.Engine {
	mw := NewMiddleware(store, logger.NewNop())
	r := gin.New()
	r.GET("/probe", mw.Require(required), func(c *gin.Context) {
		claims, _ := ClaimsFrom(c)
		c.JSON(http.StatusOK, gin.H{
			"role":    string(claims.Role),
			"bearer":  BearerFrom(c),
			"session": SessionIDFrom(c),
		})
	})
	return r
}

func request(r *gin.Engine, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if sessionID != "" {
		req.Header.Set("Authorization", "Bearer "+sessionID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMiddlewareAllowsMatchingRole(t *testing.T) {
	store := session.NewMemoryStore()
	bearer := mintToken(t, "student")
	store.Set(context.Background(), "sess-1", bearer)

	w := request(newRouter(store, domain.RoleStudent), "sess-1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["role"] != "student" {
		t.Errorf("role = %q", body["role"])
	}
	if body["bearer"] != bearer {
		t.Errorf("bearer not propagated to handler")
	}
	if body["session"] != "sess-1" {
		t.Errorf("session = %q", body["session"])
	}
}

func TestMiddlewareMissingSessionRedirectsLogin(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
	}{
		{"no header", ""},
		{"unknown session id", "sess-unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(newRouter(session.NewMemoryStore(), domain.RoleStudent), tt.sessionID)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			var body response.Response
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error == nil || body.Error.Redirect != "/login" {
				t.Errorf("redirect = %+v, want /login", body.Error)
			}
		})
	}
}

func TestMiddlewareRoleMismatchRedirectsHome(t *testing.T) {
	store := session.NewMemoryStore()
	store.Set(context.Background(), "sess-1", mintToken(t, "student"))

	w := request(newRouter(store, domain.RoleAdmin), "sess-1")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error == nil || body.Error.Redirect != "/" {
		t.Errorf("redirect = %+v, want /", body.Error)
	}
}

func TestMiddlewareUndecodableCredentialIsNoSession(t *testing.T) {
	store := session.NewMemoryStore()
	store.Set(context.Background(), "sess-1", "not-a-jwt")

	w := request(newRouter(store, domain.RoleStudent), "sess-1")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 treated as no session", w.Code)
	}

	// The garbage credential is dropped from the store
	val, _ := store.Get(context.Background(), "sess-1")
	if val != "" {
		t.Errorf("undecodable credential still stored: %q", val)
	}
}

func TestMiddlewareAnyRoleAcceptsEverySession(t *testing.T) {
	for _, role := range []string{"student", "company", "admin"} {
		store := session.NewMemoryStore()
		store.Set(context.Background(), "sess-1", mintToken(t, role))

		w := request(newRouter(store, RoleAny), "sess-1")
		if w.Code != http.StatusOK {
			t.Errorf("role %s: status = %d, want 200", role, w.Code)
		}
	}
}

func TestIdentifyDoesNotGate(t *testing.T) {
	store := session.NewMemoryStore()
	mw := NewMiddleware(store, logger.NewNop())
	r := gin.New()
	r.GET("/open", mw.Identify(), func(c *gin.Context) {
		_, ok := ClaimsFrom(c)
		c.JSON(http.StatusOK, gin.H{"has_session": ok, "session": SessionIDFrom(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer sess-anon")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["has_session"] != false {
		t.Errorf("has_session = %v, want false", body["has_session"])
	}
	if body["session"] != "sess-anon" {
		t.Errorf("session = %v, want sess-anon", body["session"])
	}
}
