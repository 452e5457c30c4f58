package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/exp/slog"

	"github.com/luckytaj/angpau-backend/api/routes"
	"github.com/luckytaj/angpau-backend/internal/config"
	"github.com/luckytaj/angpau-backend/internal/handlers"
	"github.com/luckytaj/angpau-backend/internal/prize"
	"github.com/luckytaj/angpau-backend/internal/realtime"
	"github.com/luckytaj/angpau-backend/internal/repositories"
	mongorepo "github.com/luckytaj/angpau-backend/internal/repositories/mongodb"
	sqliterepo "github.com/luckytaj/angpau-backend/internal/repositories/sqlite"
	"github.com/luckytaj/angpau-backend/internal/scheduler"
	"github.com/luckytaj/angpau-backend/internal/services"
	"github.com/luckytaj/angpau-backend/pkg/mongodb"
)

// repoSet bundles every repository behind one storage driver.
type repoSet struct {
	sessions  repositories.GameSessionRepository
	rotations repositories.DailyRotationRepository
	games     repositories.GameRepository
	winners   repositories.WinnerRepository
	configs   repositories.AngpauConfigRepository
	admins    repositories.AdminUserRepository
}

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogger(cfg.LogLevel)

	// Build the repository set for the configured storage driver
	repos, cleanup, err := buildRepositories(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer cleanup()

	location, err := time.LoadLocation(cfg.Rotation.Timezone)
	if err != nil {
		log.Fatalf("Invalid rotation timezone %q: %v", cfg.Rotation.Timezone, err)
	}

	// Realtime hub for session rooms
	hub := realtime.NewHub()

	// Initialize services
	rng := prize.NewLockedRand(time.Now().UnixNano())
	authService := services.NewAuthService(repos.admins, cfg)
	sessionService := services.NewGameSessionService(repos.sessions, repos.configs, hub, rng)
	rotationService := services.NewDailyRotationService(repos.rotations, repos.games, cfg.Rotation.GamesPerDay, location, rng)
	gameService := services.NewGameService(repos.games)
	winnerService := services.NewWinnerService(repos.winners)

	// Bootstrap the admin account
	{
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := authService.EnsureDefaultAdmin(ctx); err != nil {
			cancel()
			log.Fatalf("Failed to ensure default admin: %v", err)
		}
		cancel()
	}

	// Initialize handlers
	handlerDeps := routes.Handlers{
		Auth:   handlers.NewAuthHandler(authService),
		Angpau: handlers.NewAngpauHandler(sessionService),
		Game:   handlers.NewGameHandler(gameService, rotationService),
		Winner: handlers.NewWinnerHandler(winnerService),
		WS:     handlers.NewWSHandler(hub, sessionService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	// Daily rotation refresh
	sched, err := scheduler.New(rotationService, cfg.Rotation.RefreshTime, location)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	slog.Info("Server starting", "port", cfg.Server.Port, "storage", cfg.Storage.Driver)

	// Run server in a goroutine so that it doesn't block
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	slog.Info("Server exiting")
}

// buildRepositories wires the repository interfaces to the configured
// backend. The returned cleanup closes the underlying connection.
func buildRepositories(cfg *config.Config) (*repoSet, func(), error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		db, err := sqliterepo.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		repos := &repoSet{
			sessions:  sqliterepo.NewGameSessionRepository(db),
			rotations: sqliterepo.NewDailyRotationRepository(db),
			games:     sqliterepo.NewGameRepository(db),
			winners:   sqliterepo.NewWinnerRepository(db),
			configs:   sqliterepo.NewAngpauConfigRepository(db),
			admins:    sqliterepo.NewAdminUserRepository(db),
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return repos, cleanup, nil
	default:
		client, err := mongodb.NewClient(cfg.MongoDB.URI)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(cfg.MongoDB.Database)
		repos := &repoSet{
			sessions:  mongorepo.NewGameSessionRepository(db),
			rotations: mongorepo.NewDailyRotationRepository(db),
			games:     mongorepo.NewGameRepository(db),
			winners:   mongorepo.NewWinnerRepository(db),
			configs:   mongorepo.NewAngpauConfigRepository(db),
			admins:    mongorepo.NewAdminUserRepository(db),
		}
		cleanup := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				slog.Warn("Error disconnecting from MongoDB", "error", err)
			}
		}
		return repos, cleanup, nil
	}
}

func setupLogger(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
