// internal/handlers/player/player_handler.go
package player

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "gridiron-service/internal/domain/player"
	"gridiron-service/internal/pkg/response"
	playersvc "gridiron-service/internal/service/player"
)

type Handler struct {
	service *playersvc.Service
	logger  *zap.Logger
}

func NewHandler(service *playersvc.Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Search(c *gin.Context) {
	f := domain.SearchFilters{
		NFLTeam:    c.Query("nfl_team"),
		NamePrefix: c.Query("name"),
	}
	if v := c.Query("positions"); v != "" {
		f.Positions = strings.Split(v, ",")
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			response.Error(c, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		f.Limit = n
	}

	players, err := h.service.Search(c.Request.Context(), f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "players", players)
}

func (h *Handler) Get(c *gin.Context) {
	playerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || playerID < 1 {
		response.Error(c, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}
	p, err := h.service.Get(c.Request.Context(), playerID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "player", p)
}

// FreeAgents lists unrostered players in one league, optionally by position.
func (h *Handler) FreeAgents(c *gin.Context) {
	leagueID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || leagueID < 1 {
		response.Error(c, http.StatusBadRequest, "id must be a positive integer", nil)
		return
	}

	limit := 50
	if v := c.Query("limit"); v != "" {
		n, convErr := strconv.Atoi(v)
		if convErr != nil || n < 1 {
			response.Error(c, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		limit = n
	}

	players, err := h.service.FreeAgents(c.Request.Context(), leagueID, c.Query("position"), limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "free agents", players)
}
