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

	"github.com/NikosWork1/Industrial-Project-sub000/internal/api"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/auth"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/config"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/database"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/logger"
	"github.com/NikosWork1/Industrial-Project-sub000/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.AppEnv)

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	accountService := services.NewAccountService(db, cfg.MinPasswordLength)
	schoolService := services.NewSchoolService(db)
	eventService := services.NewEventService(db)

	// Seed the out-of-band administrator account
	if err := accountService.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword, cfg.AdminFirstName, cfg.AdminLastName); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed admin account")
	}

	// Set up token manager and router
	tokens := auth.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	router := api.NewRouter(tokens, cfg.CORSOrigin, accountService, schoolService, eventService)

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
