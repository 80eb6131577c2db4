package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ManrajSaini/Railway-Management/models"
)

var statusByKind = map[string]int{
	models.KindInvalidInput:       http.StatusBadRequest,
	models.KindInvalidSeatCount:   http.StatusBadRequest,
	models.KindInsufficientSeats:  http.StatusBadRequest,
	models.KindNotOwner:           http.StatusBadRequest,
	models.KindAlreadyCancelled:   http.StatusBadRequest,
	models.KindUserExists:         http.StatusBadRequest,
	models.KindTrainNotFound:      http.StatusNotFound,
	models.KindStationNotFound:    http.StatusNotFound,
	models.KindBookingNotFound:    http.StatusNotFound,
	models.KindInvalidCredentials: http.StatusUnauthorized,
	models.KindLockWait:           http.StatusServiceUnavailable,
	models.KindInternal:           http.StatusInternalServerError,
}

// respondError maps a service error to its HTTP status and stable kind.
// Anything that is not a DomainError is an infrastructure failure and
// returns 500 without leaking details.
func respondError(c *gin.Context, err error) {
	var domainErr *models.DomainError
	if errors.As(err, &domainErr) {
		status, ok := statusByKind[domainErr.Kind]
		if !ok {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": domainErr.Kind, "message": domainErr.Message})
		return
	}

	log.Printf("Internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   models.KindInternal,
		"message": "internal server error",
	})
}
