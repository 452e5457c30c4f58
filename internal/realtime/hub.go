package realtime

import (
	"sync"

	"golang.org/x/exp/slog"
)

// Event types pushed to clients.
const (
	EventJoined      = "session-joined"
	EventPlayed      = "game-played"
	EventPrizeResult = "prize-result"
	EventError       = "error"
)

// Event is a message pushed to a websocket client.
type Event struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Result    string `json:"result,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Hub fans events out to clients grouped into per-session rooms. All
// delivery is best-effort: a client whose send buffer is full is dropped
// rather than allowed to block the sender.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	// rooms maps sessionID -> clientID -> client
	rooms map[string]map[string]*Client
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		rooms:   make(map[string]map[string]*Client),
	}
}

// Register adds a connected client to the hub
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.ID] = c
	slog.Debug("Websocket client connected", "clientId", c.ID)
}

// Unregister removes a client from the hub and its room, closing its
// send channel. Safe to call more than once per client.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *Client) {
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	delete(h.clients, c.ID)
	if c.sessionID != "" {
		if room, ok := h.rooms[c.sessionID]; ok {
			delete(room, c.ID)
			if len(room) == 0 {
				delete(h.rooms, c.sessionID)
			}
		}
	}
	close(c.send)
	slog.Debug("Websocket client disconnected", "clientId", c.ID)
}

// JoinSession moves a client into the room for sessionID. A client
// watches at most one session; joining again switches rooms.
func (h *Hub) JoinSession(c *Client, sessionID string) {
	if sessionID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	if c.sessionID != "" {
		if room, ok := h.rooms[c.sessionID]; ok {
			delete(room, c.ID)
			if len(room) == 0 {
				delete(h.rooms, c.sessionID)
			}
		}
	}
	c.sessionID = sessionID
	room, ok := h.rooms[sessionID]
	if !ok {
		room = make(map[string]*Client)
		h.rooms[sessionID] = room
	}
	room[c.ID] = c
	slog.Debug("Websocket client joined session", "clientId", c.ID, "sessionId", sessionID)
}

// BroadcastPlayed notifies every watcher of sessionID that the session
// has been consumed. Implements the notifier used by the session service.
func (h *Hub) BroadcastPlayed(sessionID, result string) {
	h.broadcast(sessionID, Event{Type: EventPlayed, SessionID: sessionID, Result: result})
}

// SendResult delivers a prize result to one client only
func (h *Hub) SendResult(c *Client, sessionID, result string) {
	h.send(c, Event{Type: EventPrizeResult, SessionID: sessionID, Result: result})
}

// SendError delivers an error message to one client only
func (h *Hub) SendError(c *Client, sessionID, message string) {
	h.send(c, Event{Type: EventError, SessionID: sessionID, Message: message})
}

// SendJoined confirms room membership to one client
func (h *Hub) SendJoined(c *Client, sessionID string) {
	h.send(c, Event{Type: EventJoined, SessionID: sessionID})
}

// RoomSize reports how many clients are watching sessionID
func (h *Hub) RoomSize(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[sessionID])
}

func (h *Hub) broadcast(sessionID string, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.rooms[sessionID] {
		select {
		case c.send <- event:
		default:
			// Slow consumer; drop it instead of stalling the game flow.
			slog.Warn("Dropping slow websocket client", "clientId", c.ID, "sessionId", sessionID)
			h.removeLocked(c)
		}
	}
}

func (h *Hub) send(c *Client, event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.ID]; !ok {
		return
	}
	select {
	case c.send <- event:
	default:
		slog.Warn("Dropping slow websocket client", "clientId", c.ID)
		h.removeLocked(c)
	}
}
