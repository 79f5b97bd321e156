// internal/pkg/response/response.go
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	xerrors "gridiron-service/internal/pkg/errors"
)

// Response is the JSON envelope every endpoint returns.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error writes a standardized error response and aborts the handler chain.
func Error(c *gin.Context, code int, message string, err error) {
	c.Abort()

	resp := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(code, resp)
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, message, nil)
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message, nil)
}

// FromError maps a service error onto a status code. Store-authored
// messages surface as 400s; anything unexpected becomes a plain 500.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, xerrors.ErrNotFound):
		NotFound(c, "resource not found")
	case errors.Is(err, xerrors.ErrForbidden):
		Error(c, http.StatusForbidden, "you do not have access to this resource", nil)
	case errors.Is(err, xerrors.ErrUnauthorized), errors.Is(err, xerrors.ErrSessionExpired):
		Unauthorized(c, "authentication required")
	case errors.Is(err, xerrors.ErrInvalidInput):
		Error(c, http.StatusBadRequest, "invalid input", err)
	default:
		if msg, ok := xerrors.StoreMessage(err); ok {
			Error(c, http.StatusBadRequest, msg, nil)
			return
		}
		Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
