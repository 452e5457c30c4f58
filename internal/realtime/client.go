package realtime

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/exp/slog"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
	sendBufferSize = 16
)

// InboundMessage is a message received from a websocket client.
type InboundMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
}

// MessageHandler processes inbound messages the hub does not handle
// itself (anything other than join-session).
type MessageHandler func(c *Client, msg InboundMessage)

// Client is one websocket connection attached to the hub.
type Client struct {
	ID        string
	hub       *Hub
	conn      *websocket.Conn
	send      chan Event
	sessionID string
	onMessage MessageHandler
}

// NewClient wraps a websocket connection. onMessage may be nil when the
// connection is listen-only.
func NewClient(hub *Hub, conn *websocket.Conn, onMessage MessageHandler) *Client {
	return &Client{
		ID:        uuid.NewString(),
		hub:       hub,
		conn:      conn,
		send:      make(chan Event, sendBufferSize),
		onMessage: onMessage,
	}
}

// SessionID returns the session room the client has joined, if any.
func (c *Client) SessionID() string {
	return c.sessionID
}

// ReadPump reads inbound messages until the connection drops. It must run
// in its own goroutine; it unregisters the client on exit.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg InboundMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Debug("Websocket read failed", "clientId", c.ID, "error", err)
			}
			return
		}

		switch msg.Type {
		case "join-session":
			c.hub.JoinSession(c, msg.SessionID)
			c.hub.SendJoined(c, msg.SessionID)
		default:
			if c.onMessage != nil {
				c.onMessage(c, msg)
			}
		}
	}
}

// WritePump flushes queued events to the connection and keeps it alive
// with pings. It must run in its own goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
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
