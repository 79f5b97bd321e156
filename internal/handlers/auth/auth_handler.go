// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "gridiron-service/internal/domain/auth"
	"gridiron-service/internal/middleware"
	"gridiron-service/internal/pkg/response"
	authsvc "gridiron-service/internal/service/auth"
)

type Handler struct {
	service *authsvc.Service
	logger  *zap.Logger
}

func NewHandler(service *authsvc.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register creates an account. Password complexity problems and duplicate
// addresses both come back as 400s with the deciding layer's wording.
func (h *Handler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	out, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !out.OK {
		response.Error(c, http.StatusBadRequest, out.Message, nil)
		return
	}
	response.Success(c, http.StatusCreated, out.Message, gin.H{"user_id": out.UserID})
}

func (h *Handler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req, middleware.AuditFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !result.OK {
		response.Error(c, http.StatusUnauthorized, result.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, "login successful", result)
}

// Logout revokes the presented session. Repeating it with a dead token
// still returns 200.
func (h *Handler) Logout(c *gin.Context) {
	sessionToken := middleware.MustGetSessionToken(c)
	if err := h.service.Logout(c.Request.Context(), sessionToken, middleware.AuditFrom(c)); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "logged out", nil)
}

func (h *Handler) LogoutAll(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	n, err := h.service.LogoutAll(c.Request.Context(), userID, middleware.AuditFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "logged out everywhere", gin.H{"sessions_revoked": n})
}

// ForgotPassword always answers the same way, whether or not the address
// has an account.
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req domain.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}
	msg := h.service.RequestPasswordReset(c.Request.Context(), req.Email)
	response.Success(c, http.StatusOK, msg, nil)
}

func (h *Handler) ResetPassword(c *gin.Context) {
	var req domain.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	result, err := h.service.ResetPasswordWithToken(c.Request.Context(), req, middleware.AuditFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !result.OK {
		response.Error(c, http.StatusBadRequest, result.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, result.Message, nil)
}

func (h *Handler) Me(c *gin.Context) {
	userID := middleware.MustGetUserID(c)
	user, found, err := h.service.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !found {
		response.NotFound(c, "account not found")
		return
	}
	response.Success(c, http.StatusOK, "profile", user)
}
