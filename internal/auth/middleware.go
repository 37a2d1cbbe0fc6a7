package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/internmatch/portal/internal/domain"
	"github.com/internmatch/portal/internal/session"
	"github.com/internmatch/portal/internal/token"
	"github.com/internmatch/portal/pkg/logger"
	"github.com/internmatch/portal/pkg/response"
)

// Context keys set by the middleware
const (
	ctxKeyClaims    = "auth_claims"
	ctxKeyBearer    = "auth_bearer"
	ctxKeySessionID = "auth_session_id"
)

// Middleware resolves the browser session on every request before any
// handler runs. The client identifies its session with an opaque id in
// the Authorization header; the middleware maps that id to the stored
// backend credential and decodes it for routing decisions.
type Middleware struct {
	store session.Store
	log   *logger.Logger
}

// NewMiddleware creates the session middleware
func NewMiddleware(store session.Store, log *logger.Logger) *Middleware {
	return &Middleware{store: store, log: log}
}

// resolve extracts the session id, looks up the stored credential, and
// decodes it. Every failure along the way collapses to "no session":
// a missing header, an unknown session id, or an undecodable credential
// all leave claims nil and are never surfaced to the client as errors.
func (m *Middleware) resolve(c *gin.Context) (sessionID, bearer string, claims *token.Claims) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", "", nil
	}
	sessionID = strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if sessionID == "" {
		return "", "", nil
	}

	bearer, err := m.store.Get(c.Request.Context(), sessionID)
	if err != nil {
		m.log.Warn("credential lookup failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return sessionID, "", nil
	}
	if bearer == "" {
		return sessionID, "", nil
	}

	claims, err = token.Decode(bearer)
	if err != nil {
		// An undecodable credential can never authenticate a request,
		// so drop it and let the client re-login.
		m.log.Warn("stored credential is undecodable, clearing session",
			zap.String("session_id", sessionID),
		)
		if clearErr := m.store.Clear(c.Request.Context(), sessionID); clearErr != nil {
			m.log.Error("failed to clear undecodable credential", zap.Error(clearErr))
		}
		return sessionID, "", nil
	}
	return sessionID, bearer, claims
}

// Require gates a route group on the session's claimed role. Pass RoleAny
// for routes that need a session but accept any role.
func (m *Middleware) Require(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, bearer, claims := m.resolve(c)

		switch Evaluate(claims, role) {
		case RedirectLogin:
			response.Unauthorized(c, "Authentication required", "/login")
			c.Abort()
			return
		case RedirectHome:
			m.log.Info("role mismatch",
				zap.String("claimed_role", string(claims.Role)),
				zap.String("required_role", string(role)),
				zap.String("path", c.FullPath()),
			)
			response.Forbidden(c, "You do not have access to this page", "/")
			c.Abort()
			return
		}

		c.Set(ctxKeyClaims, claims)
		c.Set(ctxKeyBearer, bearer)
		c.Set(ctxKeySessionID, sessionID)
		c.Next()
	}
}

// Identify resolves the session without gating. Used on routes like
// logout that must work whether or not a usable session exists.
func (m *Middleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, bearer, claims := m.resolve(c)
		if claims != nil {
			c.Set(ctxKeyClaims, claims)
		}
		c.Set(ctxKeyBearer, bearer)
		c.Set(ctxKeySessionID, sessionID)
		c.Next()
	}
}

// ClaimsFrom returns the decoded claims set by the middleware
func ClaimsFrom(c *gin.Context) (*token.Claims, bool) {
	val, ok := c.Get(ctxKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := val.(*token.Claims)
	return claims, ok
}

// BearerFrom returns the backend credential for the current session
func BearerFrom(c *gin.Context) string {
	return c.GetString(ctxKeyBearer)
}

// SessionIDFrom returns the opaque session id the client presented
func SessionIDFrom(c *gin.Context) string {
	return c.GetString(ctxKeySessionID)
}
