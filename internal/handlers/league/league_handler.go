// internal/handlers/league/league_handler.go
package league

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "gridiron-service/internal/domain/league"
	"gridiron-service/internal/middleware"
	"gridiron-service/internal/pkg/response"
	leaguesvc "gridiron-service/internal/service/league"
)

type Handler struct {
	service *leaguesvc.Service
	logger  *zap.Logger
}

func NewHandler(service *leaguesvc.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) List(c *gin.Context) {
	var f domain.ListFilters
	if v := c.Query("season_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "season_id must be numeric", nil)
			return
		}
		f.SeasonID = id
	}
	if v := c.Query("invite_only"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invite_only must be a boolean", nil)
			return
		}
		f.InviteOnly = &b
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			response.Error(c, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		f.Limit = n
	}

	leagues, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "leagues", leagues)
}

func (h *Handler) Get(c *gin.Context) {
	leagueID, ok := pathID(c, "id")
	if !ok {
		return
	}
	lg, err := h.service.Get(c.Request.Context(), leagueID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "league", lg)
}

func (h *Handler) Create(c *gin.Context) {
	var req domain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	msg, err := h.service.Create(c.Request.Context(), req, middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, msg, nil)
}

func (h *Handler) Join(c *gin.Context) {
	var req domain.JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	out, err := h.service.Join(c.Request.Context(), req, middleware.MustGetUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	if !out.OK {
		response.Error(c, http.StatusBadRequest, out.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, out.Message, gin.H{
		"team_id":   out.TeamID,
		"league_id": out.LeagueID,
	})
}

func (h *Handler) Overview(c *gin.Context) {
	leagueID, ok := pathID(c, "id")
	if !ok {
		return
	}
	ov, err := h.service.Overview(c.Request.Context(), leagueID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "league overview", ov)
}

func (h *Handler) Standings(c *gin.Context) {
	leagueID, ok := pathID(c, "id")
	if !ok {
		return
	}
	standings, err := h.service.Standings(c.Request.Context(), leagueID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "standings", standings)
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		response.Error(c, http.StatusBadRequest, name+" must be a positive integer", nil)
		return 0, false
	}
	return id, true
}
