package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/luckytaj/angpau-backend/internal/models"
	"github.com/luckytaj/angpau-backend/internal/repositories"
	"github.com/luckytaj/angpau-backend/internal/services"
)

// WinnerHandler handles winner feed HTTP requests
type WinnerHandler struct {
	winnerService services.WinnerService
}

// NewWinnerHandler creates a new WinnerHandler
func NewWinnerHandler(winnerService services.WinnerService) *WinnerHandler {
	return &WinnerHandler{winnerService: winnerService}
}

// GetActiveFeed handles GET /winners/active
func (h *WinnerHandler) GetActiveFeed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	winners, err := h.winnerService.GetActiveFeed(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get winner feed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"winners": winners})
}

// CreateWinner handles POST /winners
func (h *WinnerHandler) CreateWinner(c *gin.Context) {
	var winner models.Winner
	if err := c.ShouldBindJSON(&winner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	winner.CreatedBy = c.GetString("adminEmail")

	if err := h.winnerService.Create(c.Request.Context(), &winner); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create winner"})
		return
	}

	c.JSON(http.StatusCreated, winner)
}

// GetAllWinners handles GET /winners
func (h *WinnerHandler) GetAllWinners(c *gin.Context) {
	winners, err := h.winnerService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list winners"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"winners": winners})
}

// GetWinnerByID handles GET /winners/:id
func (h *WinnerHandler) GetWinnerByID(c *gin.Context) {
	winner, err := h.winnerService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Winner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get winner"})
		return
	}
	c.JSON(http.StatusOK, winner)
}

// UpdateWinner handles PUT /winners/:id
func (h *WinnerHandler) UpdateWinner(c *gin.Context) {
	var winner models.Winner
	if err := c.ShouldBindJSON(&winner); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	winner.ID = c.Param("id")

	if err := h.winnerService.Update(c.Request.Context(), &winner); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Winner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update winner"})
		return
	}

	c.JSON(http.StatusOK, winner)
}

// DeleteWinner handles DELETE /winners/:id
func (h *WinnerHandler) DeleteWinner(c *gin.Context) {
	if err := h.winnerService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Winner not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete winner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Winner deleted"})
}
