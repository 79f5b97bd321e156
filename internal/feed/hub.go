// internal/feed/hub.go
package feed

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Hub fans feed events out to connected websocket clients. Clients are
// indexed by owning user; league events go to every client subscribed to
// that league, session events to every client of the targeted user.
type Hub struct {
	clients map[int64]map[*Client]bool
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client
	broadcast  chan *Event

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[int64]map[*Client]bool),
		Register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Event, 256),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case ev := <-h.broadcast:
			h.dispatch(ev)
		}
	}
}

// Publish queues an event for local fan-out. Cross-process delivery goes
// through the Bridge, which calls this on every subscribed process.
func (h *Hub) Publish(ev *Event) {
	select {
	case h.broadcast <- ev:
	default:
		h.logger.Warn("feed broadcast queue full, dropping event",
			zap.String("type", ev.Type))
	}
}

// ForceLogout pushes a logout notice to all of a user's connections and
// closes them.
func (h *Hub) ForceLogout(userID int64, reason string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[userID]
	if !ok {
		return
	}
	ev := NewEvent(EventForceLogout, map[string]any{"reason": reason})
	ev.UserID = userID
	for client := range clients {
		client.Send(ev)
		client.Close()
	}
	delete(h.clients, userID)
	h.logger.Info("disconnected all feed clients for user",
		zap.Int64("user_id", userID),
		zap.String("reason", reason),
	)
}

func (h *Hub) ConnectedClients(userID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true

	client.Send(NewEvent(EventConnected, map[string]any{"user_id": client.userID}))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.clients[client.userID]; ok {
		if _, exists := clients[client]; exists {
			delete(clients, client)
			client.Close()
			if len(clients) == 0 {
				delete(h.clients, client.userID)
			}
		}
	}
}

func (h *Hub) dispatch(ev *Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch {
	case ev.UserID != 0:
		for client := range h.clients[ev.UserID] {
			client.Send(ev)
		}
	case ev.LeagueID != 0:
		for _, clients := range h.clients {
			for client := range clients {
				if client.IsSubscribed(ev.LeagueID) {
					client.Send(ev)
				}
			}
		}
	default:
		for _, clients := range h.clients {
			for client := range clients {
				client.Send(ev)
			}
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, clients := range h.clients {
		for client := range clients {
			client.Close()
		}
	}
	h.clients = make(map[int64]map[*Client]bool)
}
