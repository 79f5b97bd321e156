// internal/handlers/team/team_handler.go
package team

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "gridiron-service/internal/domain/team"
	"gridiron-service/internal/middleware"
	"gridiron-service/internal/pkg/response"
	teamsvc "gridiron-service/internal/service/team"
)

type Handler struct {
	service *teamsvc.Service
	logger  *zap.Logger
}

func NewHandler(service *teamsvc.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) ListMine(c *gin.Context) {
	teams, err := h.service.ListMine(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "teams", teams)
}

func (h *Handler) Get(c *gin.Context) {
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	t, err := h.service.Get(c.Request.Context(), teamID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "team", t)
}

func (h *Handler) Rename(c *gin.Context) {
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req domain.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	msg, err := h.service.Rename(c.Request.Context(), teamID, middleware.MustGetUserID(c), req.Name)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, msg, nil)
}

func (h *Handler) Roster(c *gin.Context) {
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	slots, err := h.service.Roster(c.Request.Context(), teamID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "roster", slots)
}

func (h *Handler) AddPlayer(c *gin.Context) {
	h.rosterMove(c, h.service.AddPlayer)
}

func (h *Handler) DropPlayer(c *gin.Context) {
	h.rosterMove(c, h.service.DropPlayer)
}

func (h *Handler) rosterMove(c *gin.Context, move func(ctx context.Context, teamID, ownerID, playerID int64) (string, error)) {
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req domain.RosterMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	msg, err := move(c.Request.Context(), teamID, middleware.MustGetUserID(c), req.PlayerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, msg, nil)
}

func (h *Handler) SetLineup(c *gin.Context) {
	teamID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req domain.LineupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	changed, err := h.service.SetLineup(c.Request.Context(), teamID, middleware.MustGetUserID(c), req.Starters)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "lineup updated", gin.H{"slots_changed": changed})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		response.Error(c, http.StatusBadRequest, name+" must be a positive integer", nil)
		return 0, false
	}
	return id, true
}
