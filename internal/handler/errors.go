// Package handler exposes the portal's HTTP API and maps service errors
// onto the response envelope.
package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/internmatch/portal/internal/domain"
	"github.com/internmatch/portal/pkg/response"
)

// handleError maps the error taxonomy to HTTP responses.
//
//	validation        -> 400, the request never reached the backend
//	unauthorized      -> 401 with a login redirect
//	conflict          -> 409 carrying the backend's message verbatim
//	not found         -> 404
//	transport         -> 502, the client may manually retry
func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		response.BadRequest(c, messageOf(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrInvalidRole):
		response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		response.Unauthorized(c, "Your session has expired, please log in again", "/login")
	case errors.Is(err, domain.ErrConflict):
		response.Conflict(c, messageOf(err, domain.ErrConflict))
	case errors.Is(err, domain.ErrAlreadyApplied),
		errors.Is(err, domain.ErrCompanyNotVerified),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrJobClosed):
		response.Conflict(c, err.Error())
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrApplicationNotFound),
		errors.Is(err, domain.ErrProfileNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrTransport):
		response.BadGateway(c, "The backend is currently unavailable, please try again")
	default:
		response.InternalError(c, err)
	}
}

// messageOf strips the sentinel prefix from a wrapped error so the
// client sees the specific message, not the taxonomy label.
func messageOf(err error, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	return msg
}
