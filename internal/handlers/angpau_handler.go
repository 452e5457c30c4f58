package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luckytaj/angpau-backend/internal/models"
	"github.com/luckytaj/angpau-backend/internal/services"
)

// AngpauHandler handles angpau game HTTP requests
type AngpauHandler struct {
	sessionService services.GameSessionService
}

// NewAngpauHandler creates a new AngpauHandler
func NewAngpauHandler(sessionService services.GameSessionService) *AngpauHandler {
	return &AngpauHandler{sessionService: sessionService}
}

// SaveConfigRequest is the body for POST /angpau/config
type SaveConfigRequest struct {
	CardConfigs []models.CardConfig `json:"cardConfigs" binding:"required,min=1,dive"`
}

// GenerateLinkRequest is the body for POST /angpau/generate-link. An
// empty card list means "use the stored default table".
type GenerateLinkRequest struct {
	CardConfigs []models.CardConfig `json:"cardConfigs"`
}

// SetActiveRequest is the body for PATCH /angpau/sessions/:sessionId/active
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// GetConfig handles GET /angpau/config
func (h *AngpauHandler) GetConfig(c *gin.Context) {
	cards, err := h.sessionService.GetConfig(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get configuration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cardConfigs": cards})
}

// SaveConfig handles POST /angpau/config
func (h *AngpauHandler) SaveConfig(c *gin.Context) {
	var req SaveConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessionService.SaveConfig(c.Request.Context(), req.CardConfigs); err != nil {
		if errors.Is(err, models.ErrInvalidConfiguration) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save configuration"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Configuration saved"})
}

// GenerateLink handles POST /angpau/generate-link
func (h *AngpauHandler) GenerateLink(c *gin.Context) {
	var req GenerateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	createdBy := c.GetString("adminEmail")
	session, err := h.sessionService.GenerateLink(c.Request.Context(), req.CardConfigs, createdBy)
	if err != nil {
		if errors.Is(err, models.ErrInvalidConfiguration) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate link"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sessionId": session.SessionID,
		"session":   session,
	})
}

// GetSession handles GET /angpau/session/:sessionId
func (h *AngpauHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("sessionId")

	session, err := h.sessionService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		h.writeSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

// Play handles POST /angpau/session/:sessionId/play
func (h *AngpauHandler) Play(c *gin.Context) {
	sessionID := c.Param("sessionId")

	result, err := h.sessionService.Play(c.Request.Context(), sessionID)
	if err != nil {
		h.writeSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListSessions handles GET /angpau/sessions
func (h *AngpauHandler) ListSessions(c *gin.Context) {
	sessions, err := h.sessionService.ListSessions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// SetActive handles PATCH /angpau/sessions/:sessionId/active
func (h *AngpauHandler) SetActive(c *gin.Context) {
	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessionID := c.Param("sessionId")
	if err := h.sessionService.SetActive(c.Request.Context(), sessionID, *req.Active); err != nil {
		h.writeSessionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Session updated"})
}

// writeSessionError maps session domain errors onto HTTP statuses. A
// consumed session is 403 with the persisted result so the front end can
// replay the reveal; a deactivated link is 410.
func (h *AngpauHandler) writeSessionError(c *gin.Context, err error) {
	if played, ok := models.AsAlreadyPlayed(err); ok {
		c.JSON(http.StatusForbidden, gin.H{
			"error":  "Session already played",
			"result": played.Result,
		})
		return
	}
	switch {
	case errors.Is(err, models.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
	case errors.Is(err, models.ErrSessionInactive):
		c.JSON(http.StatusGone, gin.H{"error": "Session is no longer active"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
