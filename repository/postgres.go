package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/ManrajSaini/Railway-Management/models"
)

// PostgresStore is the production Store. Per-(train, travel date)
// serializability comes from the row lock taken by SELECT ... FOR UPDATE
// on train_seats; the guarded UPDATE in AdjustAvailable makes a negative
// or over-capacity seat count impossible even outside that lock.
type PostgresStore struct {
	db *DB
}

// NewPostgresStore creates a Store backed by PostgreSQL
func NewPostgresStore(db *DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Begin starts a new transaction
func (s *PostgresStore) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	return &postgresTx{tx: tx}, nil
}

// GetTrain retrieves a train joined with its source and destination stations
func (s *PostgresStore) GetTrain(ctx context.Context, trainID int64) (*models.Train, error) {
	var train models.Train
	var src, dst models.Station

	err := s.db.QueryRowContext(ctx, `
		SELECT
			t.id, t.name, t.source_station_id, t.destination_station_id,
			t.departure_time, t.arrival_time, t.total_seats,
			s.id, s.name, s.city,
			d.id, d.name, d.city
		FROM trains t
		JOIN stations s ON t.source_station_id = s.id
		JOIN stations d ON t.destination_station_id = d.id
		WHERE t.id = $1
	`, trainID).Scan(
		&train.ID, &train.Name, &train.SourceStationID, &train.DestinationStationID,
		&train.DepartureTime, &train.ArrivalTime, &train.TotalSeats,
		&src.ID, &src.Name, &src.City,
		&dst.ID, &dst.Name, &dst.City,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTrainNotFound
		}
		return nil, fmt.Errorf("failed to query train: %w", err)
	}

	train.SourceStation = &src
	train.DestinationStation = &dst
	return &train, nil
}

// GetBooking retrieves a booking joined with train display metadata
func (s *PostgresStore) GetBooking(ctx context.Context, bookingID int64) (*models.Booking, error) {
	row := s.db.QueryRowContext(ctx, bookingQuery+` WHERE b.id = $1`, bookingID)

	booking, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to query booking: %w", err)
	}
	return booking, nil
}

// ListBookingsByUser retrieves a user's bookings, most recent first
func (s *PostgresStore) ListBookingsByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	rows, err := s.db.QueryContext(ctx, bookingQuery+`
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}

	return bookings, nil
}

// GetAvailableSeats reports remaining seats, defaulting to train capacity
func (s *PostgresStore) GetAvailableSeats(ctx context.Context, trainID int64, travelDate time.Time) (int, error) {
	var available int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(ts.available_seats, t.total_seats)
		FROM trains t
		LEFT JOIN train_seats ts
			ON ts.train_id = t.id AND ts.travel_date = $2
		WHERE t.id = $1
	`, trainID, travelDate).Scan(&available)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, models.ErrTrainNotFound
		}
		return 0, fmt.Errorf("failed to query seat availability: %w", err)
	}
	return available, nil
}

const bookingQuery = `
	SELECT
		b.id, b.booking_ref, b.user_id, b.train_id, b.travel_date,
		b.num_seats, b.total_amount, b.status, b.created_at,
		t.id, t.name, t.source_station_id, t.destination_station_id,
		t.departure_time, t.arrival_time, t.total_seats,
		s.id, s.name, s.city,
		d.id, d.name, d.city
	FROM bookings b
	JOIN trains t ON b.train_id = t.id
	JOIN stations s ON t.source_station_id = s.id
	JOIN stations d ON t.destination_station_id = d.id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var booking models.Booking
	var train models.Train
	var src, dst models.Station

	err := row.Scan(
		&booking.ID, &booking.BookingRef, &booking.UserID, &booking.TrainID, &booking.TravelDate,
		&booking.NumSeats, &booking.TotalAmount, &booking.Status, &booking.CreatedAt,
		&train.ID, &train.Name, &train.SourceStationID, &train.DestinationStationID,
		&train.DepartureTime, &train.ArrivalTime, &train.TotalSeats,
		&src.ID, &src.Name, &src.City,
		&dst.ID, &dst.Name, &dst.City,
	)
	if err != nil {
		return nil, err
	}

	train.SourceStation = &src
	train.DestinationStation = &dst
	booking.Train = &train
	return &booking, nil
}

type postgresTx struct {
	tx *sqlx.Tx
}

// LockInventory creates the inventory row at full capacity if absent, then
// takes the row lock. Two concurrent callers for the same pair serialize
// here: the loser of the insert race blocks on FOR UPDATE until the winner
// commits or rolls back.
func (t *postgresTx) LockInventory(ctx context.Context, trainID int64, travelDate time.Time) (*models.TrainInventory, error) {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO train_seats (train_id, travel_date, available_seats, total_seats)
		SELECT t.id, $2, t.total_seats, t.total_seats
		FROM trains t
		WHERE t.id = $1
		ON CONFLICT (train_id, travel_date) DO NOTHING
	`, trainID, travelDate)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize seat inventory: %w", err)
	}

	inv := models.TrainInventory{TrainID: trainID, TravelDate: travelDate}
	err = t.tx.QueryRowContext(ctx, `
		SELECT available_seats, total_seats
		FROM train_seats
		WHERE train_id = $1 AND travel_date = $2
		FOR UPDATE
	`, trainID, travelDate).Scan(&inv.AvailableSeats, &inv.TotalSeats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTrainNotFound
		}
		return nil, fmt.Errorf("failed to lock seat inventory: %w", err)
	}

	return &inv, nil
}

// AdjustAvailable applies the delta with the bounds guard in the statement
// itself, so a violating update matches zero rows and mutates nothing.
func (t *postgresTx) AdjustAvailable(ctx context.Context, trainID int64, travelDate time.Time, delta int) (int, error) {
	var newAvailable int
	err := t.tx.QueryRowContext(ctx, `
		UPDATE train_seats
		SET available_seats = available_seats + $3
		WHERE train_id = $1 AND travel_date = $2
			AND available_seats + $3 >= 0
			AND available_seats + $3 <= total_seats
		RETURNING available_seats
	`, trainID, travelDate, delta).Scan(&newAvailable)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, models.ErrInventoryViolation
		}
		return 0, fmt.Errorf("failed to adjust seat availability: %w", err)
	}
	return newAvailable, nil
}

// InsertBooking inserts the booking and returns its ledger-assigned id
func (t *postgresTx) InsertBooking(ctx context.Context, b *models.Booking) (int64, error) {
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO bookings (booking_ref, user_id, train_id, travel_date, num_seats, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, b.BookingRef, b.UserID, b.TrainID, b.TravelDate, b.NumSeats, b.TotalAmount, b.Status).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert booking: %w", err)
	}
	return b.ID, nil
}

// LockBooking takes the row lock on a booking so concurrent cancellations
// of the same booking serialize
func (t *postgresTx) LockBooking(ctx context.Context, bookingID int64) (*models.Booking, error) {
	var b models.Booking
	err := t.tx.QueryRowContext(ctx, `
		SELECT id, booking_ref, user_id, train_id, travel_date,
			num_seats, total_amount, status, created_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`, bookingID).Scan(
		&b.ID, &b.BookingRef, &b.UserID, &b.TrainID, &b.TravelDate,
		&b.NumSeats, &b.TotalAmount, &b.Status, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to lock booking: %w", err)
	}
	return &b, nil
}

// SetBookingStatus updates a booking's status
func (t *postgresTx) SetBookingStatus(ctx context.Context, bookingID int64, status string) error {
	result, err := t.tx.ExecContext(ctx, `
		UPDATE bookings
		SET status = $2
		WHERE id = $1
	`, bookingID, status)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrBookingNotFound
	}
	return nil
}

func (t *postgresTx) Commit() error {
	return t.tx.Commit()
}

func (t *postgresTx) Rollback() error {
	return t.tx.Rollback()
}
