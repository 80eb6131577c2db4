package models

import (
	"encoding/json"
	"time"
)

// Booking status values. The only legal transition is confirmed -> cancelled.
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Booking represents a seat reservation on a train for a travel date
type Booking struct {
	ID          int64     `json:"id" db:"id"`
	BookingRef  string    `json:"booking_ref" db:"booking_ref"`
	UserID      int64     `json:"user_id" db:"user_id"`
	TrainID     int64     `json:"train_id" db:"train_id"`
	TravelDate  time.Time `json:"travel_date" db:"travel_date"`
	NumSeats    int       `json:"num_seats" db:"num_seats"`
	TotalAmount float64   `json:"total_amount" db:"total_amount"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Joined fields
	Train *Train `json:"train,omitempty" db:"-"`
}

// MarshalJSON emits the travel date as a plain calendar day
func (b Booking) MarshalJSON() ([]byte, error) {
	type alias Booking
	return json.Marshal(struct {
		alias
		TravelDate string `json:"travel_date"`
	}{
		alias:      alias(b),
		TravelDate: b.TravelDate.Format(TravelDateFormat),
	})
}

// UnmarshalJSON accepts the travel date as a plain calendar day
func (b *Booking) UnmarshalJSON(data []byte) error {
	type alias Booking
	aux := struct {
		*alias
		TravelDate string `json:"travel_date"`
	}{alias: (*alias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.TravelDate != "" {
		date, err := ParseTravelDate(aux.TravelDate)
		if err != nil {
			return err
		}
		b.TravelDate = date
	}
	return nil
}

// BookingRequest represents a booking creation request. NumSeats is
// validated by the reservation engine so that a non-positive count is
// reported as invalid_seat_count rather than a generic binding error.
type BookingRequest struct {
	TrainID    int64  `json:"train_id" binding:"required"`
	TravelDate string `json:"travel_date" binding:"required"`
	NumSeats   int    `json:"num_seats"`
}
