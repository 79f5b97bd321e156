// internal/feed/event.go
package feed

import (
	"encoding/json"
	"time"
)

// Event types pushed over the feed.
const (
	EventConnected   = "connected"
	EventSubscribed  = "subscribed"
	EventRosterMove  = "roster:move"
	EventLeagueNews  = "league:news"
	EventForceLogout = "session:force_logout"
	EventError       = "error"
	EventPing        = "ping"
	EventPong        = "pong"
)

// Event is one feed message. LeagueID scopes league events; UserID targets
// session events at one user. Zero values mean unscoped.
type Event struct {
	Type     string         `json:"type"`
	LeagueID int64          `json:"league_id,omitempty"`
	UserID   int64          `json:"user_id,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	SentAt   time.Time      `json:"sent_at"`
}

func NewEvent(eventType string, data map[string]any) *Event {
	return &Event{Type: eventType, Data: data, SentAt: time.Now().UTC()}
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func ParseEvent(data []byte) (*Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// clientRequest is what connected clients may send: subscribe/unsubscribe to
// league channels, plus ping.
type clientRequest struct {
	Type      string  `json:"type"`
	LeagueIDs []int64 `json:"league_ids,omitempty"`
}
