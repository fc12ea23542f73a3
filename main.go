package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/calebmh/inkwell-be/internal/api"
	"github.com/calebmh/inkwell-be/internal/auth"
	"github.com/calebmh/inkwell-be/internal/config"
	"github.com/calebmh/inkwell-be/internal/database"
	"github.com/calebmh/inkwell-be/internal/logger"
	"github.com/calebmh/inkwell-be/internal/services"
)

func main() {
	logger.Init()

	// Load configuration. A missing JWT secret fails here, at startup.
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Seeding is best-effort; a failure should not prevent startup.
	if err := database.Seed(db); err != nil {
		log.Warn().Err(err).Msg("Failed to seed database")
	}

	// Set up services
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenExpiry)
	userService := services.NewUserService(db)
	authService := services.NewAuthService(userService, tokenManager)
	postService := services.NewPostService(db)

	// Set up router
	router := api.NewRouter(authService, userService, postService, cfg.CORSOrigins)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
