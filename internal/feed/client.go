// internal/feed/client.go
package feed

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// Client is one websocket connection owned by an authenticated user.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	userID int64

	// League channels this client listens to.
	leagues  map[int64]bool
	subMutex sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
	closed sync.Once
	logger *zap.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, userID int64, logger *zap.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, 64),
		userID:  userID,
		leagues: make(map[int64]bool),
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger,
	}
}

func (c *Client) UserID() int64 { return c.userID }

func (c *Client) Subscribe(leagueID int64) {
	c.subMutex.Lock()
	defer c.subMutex.Unlock()
	c.leagues[leagueID] = true
}

func (c *Client) Unsubscribe(leagueID int64) {
	c.subMutex.Lock()
	defer c.subMutex.Unlock()
	delete(c.leagues, leagueID)
}

func (c *Client) IsSubscribed(leagueID int64) bool {
	c.subMutex.RLock()
	defer c.subMutex.RUnlock()
	return c.leagues[leagueID]
}

// ReadPump handles incoming client requests until the connection drops.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			_, message, err := c.conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					c.logger.Warn("feed read failed", zap.Error(err))
				}
				return
			}
			c.handleRequest(message)
		}
	}
}

// WritePump pushes queued events and keepalive pings to the connection.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleRequest(data []byte) {
	var req clientRequest
	if err := json.Unmarshal(data, &req); err != nil {
		c.Send(NewEvent(EventError, map[string]any{"message": "invalid request"}))
		return
	}

	switch req.Type {
	case EventPing:
		c.Send(NewEvent(EventPong, nil))

	case "subscribe":
		for _, id := range req.LeagueIDs {
			c.Subscribe(id)
		}
		c.Send(NewEvent(EventSubscribed, map[string]any{"league_ids": req.LeagueIDs}))

	case "unsubscribe":
		for _, id := range req.LeagueIDs {
			c.Unsubscribe(id)
		}
	}
}

// Send queues an event for delivery. A full queue drops the connection
// rather than blocking the hub.
func (c *Client) Send(ev *Event) {
	select {
	case <-c.ctx.Done():
		return
	default:
	}

	data, err := ev.ToJSON()
	if err != nil {
		c.logger.Error("failed to marshal feed event", zap.Error(err))
		return
	}

	select {
	case c.send <- data:
	case <-c.ctx.Done():
	default:
		c.Close()
		select {
		case c.hub.unregister <- c:
		default:
		}
	}
}

// Close shuts the client down; safe to call more than once. The send
// channel is never closed so concurrent Sends cannot panic; both pumps exit
// on the cancelled context.
func (c *Client) Close() {
	c.closed.Do(func() {
		c.cancel()
	})
}
