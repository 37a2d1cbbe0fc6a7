// Package service implements the portal's use cases on top of the gateway
// client and the session store. Services enforce everything the portal can
// decide locally (validation, state machine pre-checks, duplicate scans)
// and delegate the rest to the backend.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/internmatch/portal/internal/domain"
	"github.com/internmatch/portal/internal/gateway"
	"github.com/internmatch/portal/internal/session"
	"github.com/internmatch/portal/pkg/logger"
)

// AuthService owns the login, signup, logout, identity, and password
// reset flows. It is the only writer of the credential store.
type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Signup(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, sessionID, bearer string) (*domain.User, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, newPassword string) error
}

type authService struct {
	gw    gateway.Gateway
	store session.Store
	log   *logger.Logger
}

// NewAuthService creates the auth service
func NewAuthService(gw gateway.Gateway, store session.Store, log *logger.Logger) AuthService {
	return &authService{gw: gw, store: store, log: log}
}

// Login authenticates against the backend and opens a session. The
// returned session id is the client's only handle; the backend credential
// stays server-side in the store.
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	payload, err := s.gw.Login(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	sessionID := uuid.NewString()
	if err := s.store.Set(ctx, sessionID, payload.Token); err != nil {
		return "", nil, fmt.Errorf("failed to open session: %w", err)
	}

	s.log.Info("session opened",
		zap.String("user_id", payload.User.ID),
		zap.String("role", string(payload.User.Role)),
	)
	user := payload.User
	return sessionID, &user, nil
}

// Signup registers an account and opens its first session
func (s *authService) Signup(ctx context.Context, email, password string, role domain.Role) (string, *domain.User, error) {
	payload, err := s.gw.Signup(ctx, email, password, role)
	if err != nil {
		return "", nil, err
	}

	sessionID := uuid.NewString()
	if err := s.store.Set(ctx, sessionID, payload.Token); err != nil {
		return "", nil, fmt.Errorf("failed to open session: %w", err)
	}

	s.log.Info("account registered",
		zap.String("user_id", payload.User.ID),
		zap.String("role", string(payload.User.Role)),
	)
	user := payload.User
	return sessionID, &user, nil
}

// Logout destroys the session's credential. Logging out a session that
// does not exist succeeds.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.store.Clear(ctx, sessionID)
}

// Me re-resolves the identity with the backend. When the backend rejects
// the credential the session is destroyed so the next request starts
// clean at the login redirect.
func (s *authService) Me(ctx context.Context, sessionID, bearer string) (*domain.User, error) {
	user, err := s.gw.Me(ctx, bearer)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) && sessionID != "" {
			if clearErr := s.store.Clear(ctx, sessionID); clearErr != nil {
				s.log.Error("failed to clear rejected session", zap.Error(clearErr))
			}
		}
		return nil, err
	}
	return user, nil
}

// RequestPasswordReset starts the reset flow. The outcome is the same
// whether or not the email exists.
func (s *authService) RequestPasswordReset(ctx context.Context, email string) error {
	_, err := s.gw.RequestPasswordReset(ctx, email)
	return err
}

// ResetPassword completes the reset flow
func (s *authService) ResetPassword(ctx context.Context, resetToken, newPassword string) error {
	_, err := s.gw.ResetPassword(ctx, resetToken, newPassword)
	return err
}
