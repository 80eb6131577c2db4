package repository

import (
	"context"
	"time"

	"github.com/ManrajSaini/Railway-Management/models"
)

// Store is the persistence contract the reservation engine runs against.
// Reads outside a transaction go through Store directly; every mutation
// happens inside a Tx.
type Store interface {
	Begin(ctx context.Context) (Tx, error)

	GetTrain(ctx context.Context, trainID int64) (*models.Train, error)
	GetBooking(ctx context.Context, bookingID int64) (*models.Booking, error)
	ListBookingsByUser(ctx context.Context, userID int64) ([]models.Booking, error)
	// GetAvailableSeats reports remaining seats for the pair, defaulting
	// to the train's capacity when no inventory record exists.
	GetAvailableSeats(ctx context.Context, trainID int64, travelDate time.Time) (int, error)
}

// Tx is one atomic reserve/release unit. All operations touching the same
// (train, travel date) pair are serialized: LockInventory acquires the
// pair's lock (a row lock in Postgres, a keyed lock in memory) and holds
// it until Commit or Rollback. Lock acquisition honors the context
// deadline and surfaces models.ErrLockWait on expiry.
type Tx interface {
	// LockInventory locks the inventory record for the pair, creating it
	// at full train capacity if it does not exist yet.
	LockInventory(ctx context.Context, trainID int64, travelDate time.Time) (*models.TrainInventory, error)
	// AdjustAvailable applies delta to available seats. A result outside
	// [0, totalSeats] fails with models.ErrInventoryViolation; nothing is
	// clamped.
	AdjustAvailable(ctx context.Context, trainID int64, travelDate time.Time, delta int) (int, error)

	InsertBooking(ctx context.Context, b *models.Booking) (int64, error)
	LockBooking(ctx context.Context, bookingID int64) (*models.Booking, error)
	SetBookingStatus(ctx context.Context, bookingID int64, status string) error

	Commit() error
	Rollback() error
}
