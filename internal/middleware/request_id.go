// Package middleware carries the cross-cutting HTTP middleware: request
// ids, CORS, and access logging.
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the header carrying the request id
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the gin context key for the request id
	RequestIDKey = "request_id"
)

// RequestID attaches a request id to every request, reusing the client's
// id when one is supplied
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(RequestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}

// GetRequestID returns the request id for the current request
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
