package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ManrajSaini/Railway-Management/config"
	"github.com/ManrajSaini/Railway-Management/models"
	"github.com/ManrajSaini/Railway-Management/repository"
)

// BookingService is the reservation engine. Every reserve/release runs as
// one atomic unit against the Store: the seat check, the inventory
// mutation, and the ledger write commit together or not at all, and all
// operations on the same (train, travel date) pair are serialized by the
// Store's per-pair lock.
type BookingService struct {
	store        repository.Store
	perSeatPrice float64
	lockWait     time.Duration
}

// NewBookingService creates the reservation engine
func NewBookingService(store repository.Store, cfg *config.Config) *BookingService {
	return &BookingService{
		store:        store,
		perSeatPrice: cfg.PerSeatPrice,
		lockWait:     cfg.LockWait,
	}
}

// Reserve books numSeats on a train for a travel date. On success the
// inventory decrement and the confirmed booking are committed together;
// on any failure nothing is mutated.
func (s *BookingService) Reserve(ctx context.Context, userID int64, req models.BookingRequest) (*models.Booking, error) {
	if req.NumSeats < 1 {
		return nil, models.ErrInvalidSeatCount
	}
	travelDate, err := models.ParseTravelDate(req.TravelDate)
	if err != nil {
		return nil, err
	}

	train, err := s.store.GetTrain(ctx, req.TrainID)
	if err != nil {
		return nil, err
	}

	// Bound how long we will wait for the pair's lock
	txCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	tx, err := s.store.Begin(txCtx)
	if err != nil {
		return nil, s.acquireErr(txCtx, err)
	}
	defer tx.Rollback()

	inv, err := tx.LockInventory(txCtx, train.ID, travelDate)
	if err != nil {
		return nil, s.acquireErr(txCtx, err)
	}
	if inv.AvailableSeats < req.NumSeats {
		return nil, models.ErrInsufficientSeats
	}

	if _, err := tx.AdjustAvailable(txCtx, train.ID, travelDate, -req.NumSeats); err != nil {
		if errors.Is(err, models.ErrInventoryViolation) {
			log.Printf("INVARIANT VIOLATION: reserve train=%d date=%s seats=%d available=%d: %v",
				train.ID, req.TravelDate, req.NumSeats, inv.AvailableSeats, err)
		}
		return nil, err
	}

	booking := &models.Booking{
		BookingRef:  uuid.NewString(),
		UserID:      userID,
		TrainID:     train.ID,
		TravelDate:  travelDate,
		NumSeats:    req.NumSeats,
		TotalAmount: float64(req.NumSeats) * s.perSeatPrice,
		Status:      models.BookingConfirmed,
	}
	if _, err := tx.InsertBooking(txCtx, booking); err != nil {
		return nil, err
	}

	// Past this point the outcome must not be reported as retryable: a
	// commit failure leaves it unknown whether the booking landed
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Printf("Booking created: %s user=%d train=%d date=%s seats=%d",
		booking.BookingRef, userID, train.ID, req.TravelDate, req.NumSeats)

	booking.Train = train
	return booking, nil
}

// Release cancels a booking and returns its seats to inventory. The
// status flip and the increment commit together; cancelling twice fails
// the second time and increments availability exactly once.
func (s *BookingService) Release(ctx context.Context, userID, bookingID int64) error {
	txCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	tx, err := s.store.Begin(txCtx)
	if err != nil {
		return s.acquireErr(txCtx, err)
	}
	defer tx.Rollback()

	booking, err := tx.LockBooking(txCtx, bookingID)
	if err != nil {
		return s.acquireErr(txCtx, err)
	}
	if booking.UserID != userID {
		return models.ErrNotOwner
	}
	if booking.Status == models.BookingCancelled {
		return models.ErrAlreadyCancelled
	}

	if err := tx.SetBookingStatus(txCtx, bookingID, models.BookingCancelled); err != nil {
		return err
	}
	if _, err := tx.AdjustAvailable(txCtx, booking.TrainID, booking.TravelDate, booking.NumSeats); err != nil {
		if errors.Is(err, models.ErrInventoryViolation) {
			log.Printf("INVARIANT VIOLATION: release booking=%d train=%d seats=%d would exceed capacity: %v",
				bookingID, booking.TrainID, booking.NumSeats, err)
		}
		return s.acquireErr(txCtx, err)
	}

	// A commit-phase failure is ambiguous and must not look retryable
	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("Booking cancelled: %s (%d seats restored)", booking.BookingRef, booking.NumSeats)
	return nil
}

// GetBooking retrieves one of the caller's bookings. A booking that does
// not exist and a booking owned by someone else are indistinguishable to
// the caller.
func (s *BookingService) GetBooking(ctx context.Context, userID, bookingID int64) (*models.Booking, error) {
	booking, err := s.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, models.ErrBookingNotFound
	}
	return booking, nil
}

// ListBookings retrieves the caller's bookings, most recent first
func (s *BookingService) ListBookings(ctx context.Context, userID int64) ([]models.Booking, error) {
	return s.store.ListBookingsByUser(ctx, userID)
}

// acquireErr reports lock-acquisition expiry as a retryable error instead
// of the driver's cancellation error. Only acquisition-phase failures go
// through here; a deadline that trips after the locks are held is not safe
// to retry.
func (s *BookingService) acquireErr(ctx context.Context, err error) error {
	if errors.Is(err, models.ErrLockWait) {
		return models.ErrLockWait
	}
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return models.ErrLockWait
	}
	return err
}
