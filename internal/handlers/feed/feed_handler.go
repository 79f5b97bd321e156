// internal/handlers/feed/feed_handler.go
package feed

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"gridiron-service/internal/feed"
	"gridiron-service/internal/middleware"
	"gridiron-service/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin policy matches the API's CORS stance.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub    *feed.Hub
	logger *zap.Logger
}

func NewHandler(hub *feed.Hub, logger *zap.Logger) *Handler {
	return &Handler{hub: hub, logger: logger}
}

// Connect upgrades an authenticated request to a websocket and hands the
// connection to the hub. Clients then subscribe to league channels with
// {"type":"subscribe","league_ids":[...]}.
func (h *Handler) Connect(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "websocket upgrade failed", nil)
		return
	}

	client := feed.NewClient(h.hub, conn, userID, h.logger)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
