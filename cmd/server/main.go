package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/slotmachine/backend/internal/server"
)

func main() {
	// Initialize application with Wire
	application, err := InitializeApplication()
	if err != nil {
		fmt.Printf("Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	log := application.Logger
	cfg := application.Config

	log.Info().
		Str("env", cfg.App.Env).
		Str("addr", cfg.App.Addr).
		Msg("Starting Slot Machine Backend Server")

	// Setup routes
	server.SetupRoutes(
		application.App,
		cfg,
		log,
		application.SpinHandler,
	)

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", cfg.App.Addr).Msg("Server listening")
		if err := application.App.Listen(cfg.App.Addr); err != nil {
			log.Error().Err(err).Msg("Failed to start server")
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Gracefully shutdown all resources (Fiber, Redis, Database)
	if err := application.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
		os.Exit(1)
	}

	log.Info().Msg("Server stopped")
}
