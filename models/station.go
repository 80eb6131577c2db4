package models

// Station represents a railway station
type Station struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	City string `json:"city" db:"city"`
}

// AddStationRequest represents an admin station creation request
type AddStationRequest struct {
	Name string `json:"name" binding:"required"`
	City string `json:"city" binding:"required"`
}
