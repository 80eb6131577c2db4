package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ManrajSaini/Railway-Management/middleware"
	"github.com/ManrajSaini/Railway-Management/models"
	"github.com/ManrajSaini/Railway-Management/services"
)

// BookingHandler serves booking creation, cancellation, and lookups
type BookingHandler struct {
	bookings *services.BookingService
}

// NewBookingHandler creates the booking handler
func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// CreateBooking reserves seats for the authenticated user
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.KindInvalidInput, "message": err.Error()})
		return
	}

	userID := c.GetInt64(middleware.ContextUserID)
	booking, err := h.bookings.Reserve(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// CancelBooking cancels one of the authenticated user's bookings
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.KindInvalidInput, "message": "invalid booking id"})
		return
	}

	userID := c.GetInt64(middleware.ContextUserID)
	if err := h.bookings.Release(c.Request.Context(), userID, bookingID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("booking %d cancelled successfully", bookingID),
	})
}

// GetBookings lists the authenticated user's bookings, most recent first
func (h *BookingHandler) GetBookings(c *gin.Context) {
	userID := c.GetInt64(middleware.ContextUserID)
	bookings, err := h.bookings.ListBookings(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking returns one of the authenticated user's bookings
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.KindInvalidInput, "message": "invalid booking id"})
		return
	}

	userID := c.GetInt64(middleware.ContextUserID)
	booking, err := h.bookings.GetBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}
