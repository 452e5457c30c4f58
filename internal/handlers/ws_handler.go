package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"golang.org/x/exp/slog"

	"github.com/luckytaj/angpau-backend/internal/models"
	"github.com/luckytaj/angpau-backend/internal/realtime"
	"github.com/luckytaj/angpau-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origin enforcement happens at the CORS layer; the game link itself
	// is the credential here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades websocket connections and bridges inbound play
// messages to the session service.
type WSHandler struct {
	hub            *realtime.Hub
	sessionService services.GameSessionService
}

// NewWSHandler creates a new WSHandler
func NewWSHandler(hub *realtime.Hub, sessionService services.GameSessionService) *WSHandler {
	return &WSHandler{hub: hub, sessionService: sessionService}
}

// Handle handles GET /ws
func (h *WSHandler) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("Websocket upgrade failed", "error", err)
		return
	}

	client := realtime.NewClient(h.hub, conn, h.onMessage)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// onMessage handles inbound messages other than join-session. The only
// one today is "play": draw a prize and consume the session on behalf of
// the connected player.
func (h *WSHandler) onMessage(c *realtime.Client, msg realtime.InboundMessage) {
	switch msg.Type {
	case "play":
		h.play(c, msg.SessionID)
	default:
		h.hub.SendError(c, msg.SessionID, "unknown message type: "+msg.Type)
	}
}

func (h *WSHandler) play(c *realtime.Client, sessionID string) {
	if sessionID == "" {
		sessionID = c.SessionID()
	}
	if sessionID == "" {
		h.hub.SendError(c, "", "no session joined")
		return
	}

	// The play outlives the websocket read loop's deadline handling, so
	// it runs under its own short timeout rather than a request context.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := h.sessionService.Play(ctx, sessionID)
	if err != nil {
		// A replay still reveals the persisted prize so refreshing the
		// page shows the same card.
		if played, ok := models.AsAlreadyPlayed(err); ok {
			h.hub.SendResult(c, sessionID, played.Result)
			return
		}
		h.hub.SendError(c, sessionID, err.Error())
		return
	}

	h.hub.SendResult(c, sessionID, result.Result)
}
