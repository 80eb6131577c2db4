package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ManrajSaini/Railway-Management/models"
	"github.com/ManrajSaini/Railway-Management/services"
)

// TrainHandler serves the station/train catalog and its admin operations
type TrainHandler struct {
	trains *services.TrainService
}

// NewTrainHandler creates the catalog handler
func NewTrainHandler(trains *services.TrainService) *TrainHandler {
	return &TrainHandler{trains: trains}
}

// GetStations returns all stations
func (h *TrainHandler) GetStations(c *gin.Context) {
	stations, err := h.trains.ListStations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stations)
}

// SearchTrains returns trains between two stations with availability for
// the requested date
func (h *TrainHandler) SearchTrains(c *gin.Context) {
	sourceID, err := strconv.ParseInt(c.Query("sourceStationId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.KindInvalidInput, "message": "invalid sourceStationId"})
		return
	}
	destID, err := strconv.ParseInt(c.Query("destinationStationId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.KindInvalidInput, "message": "invalid destinationStationId"})
		return
	}

	trains, err := h.trains.SearchTrains(c.Request.Context(), sourceID, destID, c.Query("travelDate"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trains)
}

// GetSeatAvailability returns remaining seats for a train on a date
func (h *TrainHandler) GetSeatAvailability(c *gin.Context) {
	trainID, err := strconv.ParseInt(c.Query("trainId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.KindInvalidInput, "message": "invalid trainId"})
		return
	}

	available, err := h.trains.GetSeatAvailability(c.Request.Context(), trainID, c.Query("travelDate"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available_seats": available})
}

// AddStation creates a station (admin)
func (h *TrainHandler) AddStation(c *gin.Context) {
	var req models.AddStationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.KindInvalidInput, "message": err.Error()})
		return
	}

	station, err := h.trains.AddStation(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, station)
}

// AddTrain creates a train (admin)
func (h *TrainHandler) AddTrain(c *gin.Context) {
	var req models.AddTrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.KindInvalidInput, "message": err.Error()})
		return
	}

	train, err := h.trains.AddTrain(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, train)
}

// UpdateTrainSeats sets available seats for a train on a date (admin)
func (h *TrainHandler) UpdateTrainSeats(c *gin.Context) {
	var req models.UpdateSeatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.KindInvalidInput, "message": err.Error()})
		return
	}

	inv, err := h.trains.SetTrainSeats(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}
