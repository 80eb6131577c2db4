package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/ManrajSaini/Railway-Management/models"
	"github.com/ManrajSaini/Railway-Management/repository"
)

// TrainService serves the station/train catalog and its admin operations
type TrainService struct {
	db *repository.DB
}

// NewTrainService creates the catalog service
func NewTrainService(db *repository.DB) *TrainService {
	return &TrainService{db: db}
}

// ListStations retrieves all stations ordered by name
func (s *TrainService) ListStations(ctx context.Context) ([]models.Station, error) {
	var stations []models.Station
	err := s.db.SelectContext(ctx, &stations, `
		SELECT id, name, city
		FROM stations
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("error querying stations: %w", err)
	}
	return stations, nil
}

// SearchTrains finds trains between two stations with their remaining
// seats for the travel date, defaulting to full capacity for dates with
// no inventory record yet
func (s *TrainService) SearchTrains(ctx context.Context, sourceStationID, destStationID int64, travelDate string) ([]models.Train, error) {
	date, err := models.ParseTravelDate(travelDate)
	if err != nil {
		return nil, err
	}

	log.Printf("Searching trains: source=%d, destination=%d, date=%s", sourceStationID, destStationID, travelDate)

	rows, err := s.db.QueryContext(ctx, `
		SELECT
			t.id, t.name, t.source_station_id, t.destination_station_id,
			t.departure_time, t.arrival_time, t.total_seats,
			s.id, s.name, s.city,
			d.id, d.name, d.city,
			COALESCE(ts.available_seats, t.total_seats)
		FROM trains t
		JOIN stations s ON t.source_station_id = s.id
		JOIN stations d ON t.destination_station_id = d.id
		LEFT JOIN train_seats ts
			ON ts.train_id = t.id AND ts.travel_date = $3
		WHERE t.source_station_id = $1 AND t.destination_station_id = $2
		ORDER BY t.departure_time
	`, sourceStationID, destStationID, date)
	if err != nil {
		return nil, fmt.Errorf("error querying trains: %w", err)
	}
	defer rows.Close()

	var trains []models.Train
	for rows.Next() {
		var train models.Train
		var src, dst models.Station
		var available int

		err := rows.Scan(
			&train.ID, &train.Name, &train.SourceStationID, &train.DestinationStationID,
			&train.DepartureTime, &train.ArrivalTime, &train.TotalSeats,
			&src.ID, &src.Name, &src.City,
			&dst.ID, &dst.Name, &dst.City,
			&available,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning train: %w", err)
		}

		train.SourceStation = &src
		train.DestinationStation = &dst
		train.AvailableSeats = &available
		trains = append(trains, train)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trains: %w", err)
	}

	return trains, nil
}

// GetSeatAvailability reports remaining seats for a train on a date
func (s *TrainService) GetSeatAvailability(ctx context.Context, trainID int64, travelDate string) (int, error) {
	date, err := models.ParseTravelDate(travelDate)
	if err != nil {
		return 0, err
	}

	var available int
	err = s.db.QueryRowContext(ctx, `
		SELECT COALESCE(ts.available_seats, t.total_seats)
		FROM trains t
		LEFT JOIN train_seats ts
			ON ts.train_id = t.id AND ts.travel_date = $2
		WHERE t.id = $1
	`, trainID, date).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, models.ErrTrainNotFound
		}
		return 0, fmt.Errorf("error querying seat availability: %w", err)
	}
	return available, nil
}

// AddStation creates a station (admin)
func (s *TrainService) AddStation(ctx context.Context, req models.AddStationRequest) (*models.Station, error) {
	station := models.Station{Name: req.Name, City: req.City}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO stations (name, city)
		VALUES ($1, $2)
		RETURNING id
	`, req.Name, req.City).Scan(&station.ID)
	if err != nil {
		return nil, fmt.Errorf("error adding station: %w", err)
	}

	log.Printf("Station added: %s (%s)", station.Name, station.City)
	return &station, nil
}

// AddTrain creates a train (admin)
func (s *TrainService) AddTrain(ctx context.Context, req models.AddTrainRequest) (*models.Train, error) {
	if req.TotalSeats < 1 {
		return nil, models.Invalid("total seats must be at least 1")
	}

	var stationCount int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM stations WHERE id IN ($1, $2)
	`, req.SourceStationID, req.DestinationStationID).Scan(&stationCount)
	if err != nil {
		return nil, fmt.Errorf("error checking stations: %w", err)
	}
	want := 2
	if req.SourceStationID == req.DestinationStationID {
		want = 1
	}
	if stationCount != want {
		return nil, models.ErrStationNotFound
	}

	train := models.Train{
		Name:                 req.Name,
		SourceStationID:      req.SourceStationID,
		DestinationStationID: req.DestinationStationID,
		DepartureTime:        req.DepartureTime,
		ArrivalTime:          req.ArrivalTime,
		TotalSeats:           req.TotalSeats,
	}
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO trains (name, source_station_id, destination_station_id, departure_time, arrival_time, total_seats)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, req.Name, req.SourceStationID, req.DestinationStationID,
		req.DepartureTime, req.ArrivalTime, req.TotalSeats).Scan(&train.ID)
	if err != nil {
		return nil, fmt.Errorf("error adding train: %w", err)
	}

	log.Printf("Train added: %s (%d seats)", train.Name, train.TotalSeats)
	return &train, nil
}

// SetTrainSeats sets the available seat count for a train on a specific
// date (admin), creating the inventory record if needed. Counts outside
// [0, totalSeats] are rejected, not clamped.
func (s *TrainService) SetTrainSeats(ctx context.Context, req models.UpdateSeatsRequest) (*models.TrainInventory, error) {
	date, err := models.ParseTravelDate(req.TravelDate)
	if err != nil {
		return nil, err
	}

	var totalSeats int
	err = s.db.QueryRowContext(ctx, `
		SELECT total_seats FROM trains WHERE id = $1
	`, req.TrainID).Scan(&totalSeats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTrainNotFound
		}
		return nil, fmt.Errorf("error querying train: %w", err)
	}
	if req.AvailableSeats < 0 || req.AvailableSeats > totalSeats {
		return nil, models.Invalid(fmt.Sprintf("available seats must be between 0 and %d", totalSeats))
	}

	inv := models.TrainInventory{
		TrainID:        req.TrainID,
		TravelDate:     date,
		AvailableSeats: req.AvailableSeats,
		TotalSeats:     totalSeats,
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO train_seats (train_id, travel_date, available_seats, total_seats)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (train_id, travel_date)
		DO UPDATE SET available_seats = EXCLUDED.available_seats
	`, req.TrainID, date, req.AvailableSeats, totalSeats)
	if err != nil {
		return nil, fmt.Errorf("error updating train seats: %w", err)
	}

	log.Printf("Train seats updated: train=%d date=%s available=%d", req.TrainID, req.TravelDate, req.AvailableSeats)
	return &inv, nil
}
