// internal/middleware/auth_middleware.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gridiron-service/internal/pkg/response"
	"gridiron-service/internal/service/auth"
)

const (
	ContextUserID       = "user_id"
	ContextSessionToken = "session_token"
)

// RequireSession validates the bearer token against the store on every
// request. Validation extends the session's expiry, so active clients stay
// signed in.
func RequireSession(authService *auth.Service, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionToken := bearerToken(c)
		if sessionToken == "" {
			response.Unauthorized(c, "authentication required")
			return
		}

		userID, valid, err := authService.ValidateSession(c.Request.Context(), sessionToken)
		if err != nil {
			logger.Error("session validation failed", zap.Error(err))
			response.Unauthorized(c, "session could not be verified")
			return
		}
		if !valid {
			response.Unauthorized(c, "session expired or invalid")
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextSessionToken, sessionToken)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	// Websocket upgrades can't set headers from the browser.
	return c.Query("token")
}
