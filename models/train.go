package models

import "time"

// Train represents a train route with its fixed capacity
type Train struct {
	ID                   int64     `json:"id" db:"id"`
	Name                 string    `json:"name" db:"name"`
	SourceStationID      int64     `json:"source_station_id" db:"source_station_id"`
	DestinationStationID int64     `json:"destination_station_id" db:"destination_station_id"`
	DepartureTime        time.Time `json:"departure_time" db:"departure_time"`
	ArrivalTime          time.Time `json:"arrival_time" db:"arrival_time"`
	TotalSeats           int       `json:"total_seats" db:"total_seats"`

	// Joined fields
	SourceStation      *Station `json:"source_station,omitempty" db:"-"`
	DestinationStation *Station `json:"destination_station,omitempty" db:"-"`
	AvailableSeats     *int     `json:"available_seats,omitempty" db:"-"`
}

// AddTrainRequest represents an admin train creation request
type AddTrainRequest struct {
	Name                 string    `json:"name" binding:"required"`
	SourceStationID      int64     `json:"source_station_id" binding:"required"`
	DestinationStationID int64     `json:"destination_station_id" binding:"required"`
	DepartureTime        time.Time `json:"departure_time" binding:"required"`
	ArrivalTime          time.Time `json:"arrival_time" binding:"required"`
	TotalSeats           int       `json:"total_seats" binding:"required"`
}

// UpdateSeatsRequest represents an admin request to set the available
// seat count for a train on a specific travel date
type UpdateSeatsRequest struct {
	TrainID        int64  `json:"train_id" binding:"required"`
	TravelDate     string `json:"travel_date" binding:"required"`
	AvailableSeats int    `json:"available_seats"`
}
