// internal/handlers/season/season_handler.go
package season

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gridiron-service/internal/pkg/response"
	seasonsvc "gridiron-service/internal/service/season"
)

type Handler struct {
	service *seasonsvc.Service
	logger  *zap.Logger
}

func NewHandler(service *seasonsvc.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Current(c *gin.Context) {
	sn, err := h.service.Current(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "current season", sn)
}

func (h *Handler) List(c *gin.Context) {
	seasons, err := h.service.List(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "seasons", seasons)
}

func (h *Handler) Weeks(c *gin.Context) {
	seasonID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || seasonID < 1 {
		response.Error(c, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	weeks, err := h.service.Weeks(c.Request.Context(), seasonID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "weeks", weeks)
}
