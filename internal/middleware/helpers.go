// internal/middleware/helpers.go
package middleware

import (
	"github.com/gin-gonic/gin"

	"gridiron-service/internal/domain/auth"
)

// MustGetUserID returns the authenticated user's id. Only call behind
// RequireSession; a missing value means the route is miswired.
func MustGetUserID(c *gin.Context) int64 {
	v, ok := c.Get(ContextUserID)
	if !ok {
		panic("user_id not set; route is missing RequireSession")
	}
	return v.(int64)
}

// MustGetSessionToken returns the validated bearer token for the request.
func MustGetSessionToken(c *gin.Context) string {
	v, ok := c.Get(ContextSessionToken)
	if !ok {
		panic("session_token not set; route is missing RequireSession")
	}
	return v.(string)
}

// AuditFrom captures the transport facts forwarded to the store's audit
// trail.
func AuditFrom(c *gin.Context) auth.AuditContext {
	return auth.AuditContext{
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	}
}
