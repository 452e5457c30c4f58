package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luckytaj/angpau-backend/internal/models"
	"github.com/luckytaj/angpau-backend/internal/repositories"
	"github.com/luckytaj/angpau-backend/internal/services"
)

// GameHandler handles game catalog and daily rotation HTTP requests
type GameHandler struct {
	gameService     services.GameService
	rotationService services.DailyRotationService
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameService services.GameService, rotationService services.DailyRotationService) *GameHandler {
	return &GameHandler{
		gameService:     gameService,
		rotationService: rotationService,
	}
}

// GetDaily handles GET /games/daily
func (h *GameHandler) GetDaily(c *gin.Context) {
	date := h.rotationService.Today()
	rotation, err := h.rotationService.GetOrSelect(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get daily games"})
		return
	}
	c.JSON(http.StatusOK, rotation)
}

// Refresh handles POST /games/refresh
func (h *GameHandler) Refresh(c *gin.Context) {
	date := h.rotationService.Today()
	rotation, err := h.rotationService.ForceRefresh(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh daily games"})
		return
	}
	c.JSON(http.StatusOK, rotation)
}

// CreateGame handles POST /games
func (h *GameHandler) CreateGame(c *gin.Context) {
	var game models.Game
	if err := c.ShouldBindJSON(&game); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.gameService.Create(c.Request.Context(), &game); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create game"})
		return
	}

	c.JSON(http.StatusCreated, game)
}

// GetGameByID handles GET /games/:id
func (h *GameHandler) GetGameByID(c *gin.Context) {
	game, err := h.gameService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get game"})
		return
	}
	c.JSON(http.StatusOK, game)
}

// GetAllGames handles GET /games
func (h *GameHandler) GetAllGames(c *gin.Context) {
	games, err := h.gameService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list games"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games})
}

// UpdateGame handles PUT /games/:id
func (h *GameHandler) UpdateGame(c *gin.Context) {
	var game models.Game
	if err := c.ShouldBindJSON(&game); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	game.ID = c.Param("id")

	if err := h.gameService.Update(c.Request.Context(), &game); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update game"})
		return
	}

	c.JSON(http.StatusOK, game)
}

// DeleteGame handles DELETE /games/:id
func (h *GameHandler) DeleteGame(c *gin.Context) {
	if err := h.gameService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete game"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game deleted"})
}
