package domain

import "errors"

// Domain errors
var (
	// Session / credential errors
	ErrDecode       = errors.New("malformed bearer token")
	ErrUnauthorized = errors.New("authentication required")
	ErrInvalidRole  = errors.New("invalid role")

	// Input errors
	ErrValidation = errors.New("validation failed")

	// Backend conflicts (surfaced verbatim, never retried)
	ErrConflict = errors.New("request conflicts with backend state")

	// Network or server failure unrelated to authorization
	ErrTransport = errors.New("backend unreachable")

	// State machine errors
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrJobClosed         = errors.New("job is closed")

	// Entity errors
	ErrUserNotFound        = errors.New("user not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrAlreadyApplied      = errors.New("already applied to this job")
	ErrCompanyNotVerified  = errors.New("company registration is not verified")
)
