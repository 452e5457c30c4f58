package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/luckytaj/angpau-backend/internal/config"
	"github.com/luckytaj/angpau-backend/internal/handlers"
	"github.com/luckytaj/angpau-backend/internal/middleware"
)

// Handlers carries the constructed handlers into router setup.
type Handlers struct {
	Auth   *handlers.AuthHandler
	Angpau *handlers.AngpauHandler
	Game   *handlers.GameHandler
	Winner *handlers.WinnerHandler
	WS     *handlers.WSHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	// Create router
	router := gin.Default()

	// Add middleware
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		// Health check
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})

		// Auth routes
		auth := public.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
		}

		// Player-facing angpau routes. The unguessable session id in the
		// link is the only credential a player has.
		angpau := public.Group("/angpau")
		{
			angpau.GET("/config", h.Angpau.GetConfig)
			angpau.GET("/session/:sessionId", h.Angpau.GetSession)
			angpau.POST("/session/:sessionId/play", h.Angpau.Play)
		}

		// Daily rotation and winner feed shown on the site
		public.GET("/games/daily", h.Game.GetDaily)
		public.GET("/winners/active", h.Winner.GetActiveFeed)

		// Realtime updates
		public.GET("/ws", h.WS.Handle)
	}

	// Protected routes
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		// Angpau admin routes
		angpau := protected.Group("/angpau")
		{
			angpau.POST("/config", h.Angpau.SaveConfig)
			angpau.POST("/generate-link", h.Angpau.GenerateLink)
			angpau.GET("/sessions", h.Angpau.ListSessions)
			angpau.PATCH("/sessions/:sessionId/active", h.Angpau.SetActive)
		}

		// Game catalog routes
		games := protected.Group("/games")
		{
			games.GET("", h.Game.GetAllGames)
			games.GET("/:id", h.Game.GetGameByID)
			games.POST("", h.Game.CreateGame)
			games.POST("/refresh", h.Game.Refresh)
			games.PUT("/:id", h.Game.UpdateGame)
			games.DELETE("/:id", h.Game.DeleteGame)
		}

		// Winner feed routes
		winners := protected.Group("/winners")
		{
			winners.GET("", h.Winner.GetAllWinners)
			winners.GET("/:id", h.Winner.GetWinnerByID)
			winners.POST("", h.Winner.CreateWinner)
			winners.PUT("/:id", h.Winner.UpdateWinner)
			winners.DELETE("/:id", h.Winner.DeleteWinner)
		}
	}

	return router
}
