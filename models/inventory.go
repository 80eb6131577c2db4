package models

import (
	"encoding/json"
	"time"
)

// TrainInventory is the remaining-seat record for a (train, travel date)
// pair. Rows are created lazily at full capacity the first time the pair
// is booked or customized. TotalSeats is copied from the train so the
// 0 <= available <= total bound can be enforced on the row itself.
type TrainInventory struct {
	TrainID        int64     `json:"train_id" db:"train_id"`
	TravelDate     time.Time `json:"travel_date" db:"travel_date"`
	AvailableSeats int       `json:"available_seats" db:"available_seats"`
	TotalSeats     int       `json:"total_seats" db:"total_seats"`
}

// MarshalJSON emits the travel date as a plain calendar day
func (i TrainInventory) MarshalJSON() ([]byte, error) {
	type alias TrainInventory
	return json.Marshal(struct {
		alias
		TravelDate string `json:"travel_date"`
	}{
		alias:      alias(i),
		TravelDate: i.TravelDate.Format(TravelDateFormat),
	})
}

// TravelDateFormat is the wire format for travel dates. Inventory is
// keyed by calendar day.
const TravelDateFormat = "2006-01-02"

// NormalizeTravelDate truncates a timestamp to its calendar day in UTC.
func NormalizeTravelDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseTravelDate parses a travel date in TravelDateFormat.
func ParseTravelDate(s string) (time.Time, error) {
	t, err := time.Parse(TravelDateFormat, s)
	if err != nil {
		return time.Time{}, Invalid("invalid travel date, expected YYYY-MM-DD")
	}
	return NormalizeTravelDate(t), nil
}
