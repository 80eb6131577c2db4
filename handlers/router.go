package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ManrajSaini/Railway-Management/config"
	"github.com/ManrajSaini/Railway-Management/middleware"
	"github.com/ManrajSaini/Railway-Management/services"
)

// NewRouter builds the gin engine with all routes wired
func NewRouter(cfg *config.Config, auth *services.AuthService, authH *AuthHandler, trainH *TrainHandler, bookingH *BookingHandler) *gin.Engine {
	router := gin.Default()

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// API routes
	api := router.Group("/api")
	{
		// Auth routes
		api.POST("/auth/register", authH.Register)
		api.POST("/auth/login", authH.Login)

		// Public catalog routes
		api.GET("/trains/stations", trainH.GetStations)
		api.GET("/trains/search", trainH.SearchTrains)
		api.GET("/trains/availability", trainH.GetSeatAvailability)

		// Admin catalog routes
		admin := api.Group("/trains", middleware.RequireAuth(auth), middleware.RequireAdminKey(cfg.AdminAPIKey))
		{
			admin.POST("/stations", trainH.AddStation)
			admin.POST("", trainH.AddTrain)
			admin.POST("/seats", trainH.UpdateTrainSeats)
		}

		// Booking routes, all authenticated
		bookings := api.Group("/bookings", middleware.RequireAuth(auth))
		{
			bookings.POST("", bookingH.CreateBooking)
			bookings.POST("/:bookingId/cancel", bookingH.CancelBooking)
			bookings.GET("", bookingH.GetBookings)
			bookings.GET("/:bookingId", bookingH.GetBooking)
		}
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "route not found"})
	})

	return router
}
