package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ManrajSaini/Railway-Management/config"
	"github.com/ManrajSaini/Railway-Management/handlers"
	"github.com/ManrajSaini/Railway-Management/repository"
	"github.com/ManrajSaini/Railway-Management/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Printf("Starting Railway Management System")

	// Set Gin to release mode in production
	if os.Getenv("GIN_MODE") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := repository.NewDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Wire services and handlers
	store := repository.NewPostgresStore(db)
	authService := services.NewAuthService(db, cfg)
	trainService := services.NewTrainService(db)
	bookingService := services.NewBookingService(store, cfg)

	router := handlers.NewRouter(cfg,
		authService,
		handlers.NewAuthHandler(authService),
		handlers.NewTrainHandler(trainService),
		handlers.NewBookingHandler(bookingService),
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
