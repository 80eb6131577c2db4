package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ManrajSaini/Railway-Management/models"
)

// MemoryStore is an in-process Store. Atomicity per (train, travel date)
// pair comes from one lock per key, implemented as a buffered channel so
// acquisition can give up when the caller's context expires. It backs the
// engine tests and a database-free dev mode.
type MemoryStore struct {
	mu        sync.Mutex
	locks     map[string]chan struct{}
	trains    map[int64]*models.Train
	inventory map[string]*models.TrainInventory
	bookings  map[int64]*models.Booking
	nextID    int64
}

// NewMemoryStore creates an empty in-memory Store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		locks:     make(map[string]chan struct{}),
		trains:    make(map[int64]*models.Train),
		inventory: make(map[string]*models.TrainInventory),
		bookings:  make(map[int64]*models.Booking),
	}
}

// SeedTrain registers a train, including its joined station metadata
func (s *MemoryStore) SeedTrain(t *models.Train) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trains[t.ID] = copyTrain(t)
}

func invKey(trainID int64, travelDate time.Time) string {
	return fmt.Sprintf("%d|%s", trainID, travelDate.Format(models.TravelDateFormat))
}

func bookingKey(bookingID int64) string {
	return fmt.Sprintf("booking|%d", bookingID)
}

// acquire takes the named lock, giving up when ctx expires
func (s *MemoryStore) acquire(ctx context.Context, key string) error {
	s.mu.Lock()
	ch, ok := s.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		s.locks[key] = ch
	}
	s.mu.Unlock()

	if ctx.Err() != nil {
		return models.ErrLockWait
	}
	select {
	case ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		return models.ErrLockWait
	}
}

func (s *MemoryStore) release(key string) {
	s.mu.Lock()
	ch := s.locks[key]
	s.mu.Unlock()
	<-ch
}

// Begin starts a new transaction
func (s *MemoryStore) Begin(ctx context.Context) (Tx, error) {
	return &memoryTx{store: s, held: make(map[string]bool)}, nil
}

// GetTrain retrieves a seeded train
func (s *MemoryStore) GetTrain(ctx context.Context, trainID int64) (*models.Train, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.trains[trainID]
	if !ok {
		return nil, models.ErrTrainNotFound
	}
	return copyTrain(t), nil
}

// GetBooking retrieves a booking joined with its train
func (s *MemoryStore) GetBooking(ctx context.Context, bookingID int64) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	return s.joinBooking(b), nil
}

// ListBookingsByUser retrieves a user's bookings, most recent first
func (s *MemoryStore) ListBookingsByUser(ctx context.Context, userID int64) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var bookings []models.Booking
	for _, b := range s.bookings {
		if b.UserID == userID {
			bookings = append(bookings, *s.joinBooking(b))
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		if !bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
		}
		return bookings[i].ID > bookings[j].ID
	})
	return bookings, nil
}

// GetAvailableSeats reports remaining seats, defaulting to train capacity
func (s *MemoryStore) GetAvailableSeats(ctx context.Context, trainID int64, travelDate time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv, ok := s.inventory[invKey(trainID, travelDate)]; ok {
		return inv.AvailableSeats, nil
	}
	t, ok := s.trains[trainID]
	if !ok {
		return 0, models.ErrTrainNotFound
	}
	return t.TotalSeats, nil
}

func (s *MemoryStore) joinBooking(b *models.Booking) *models.Booking {
	out := *b
	if t, ok := s.trains[b.TrainID]; ok {
		out.Train = copyTrain(t)
	}
	return &out
}

func copyTrain(t *models.Train) *models.Train {
	out := *t
	if t.SourceStation != nil {
		src := *t.SourceStation
		out.SourceStation = &src
	}
	if t.DestinationStation != nil {
		dst := *t.DestinationStation
		out.DestinationStation = &dst
	}
	out.AvailableSeats = nil
	return &out
}

type memoryTx struct {
	store *MemoryStore
	held  map[string]bool
	undo  []func()
	done  bool
}

func (t *memoryTx) lock(ctx context.Context, key string) error {
	if t.held[key] {
		return nil
	}
	if err := t.store.acquire(ctx, key); err != nil {
		return err
	}
	t.held[key] = true
	return nil
}

// LockInventory creates the pair's record at full capacity if absent and
// holds its lock until Commit or Rollback
func (t *memoryTx) LockInventory(ctx context.Context, trainID int64, travelDate time.Time) (*models.TrainInventory, error) {
	key := invKey(trainID, travelDate)
	if err := t.lock(ctx, key); err != nil {
		return nil, err
	}

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	train, ok := s.trains[trainID]
	if !ok {
		return nil, models.ErrTrainNotFound
	}
	inv, ok := s.inventory[key]
	if !ok {
		inv = &models.TrainInventory{
			TrainID:        trainID,
			TravelDate:     travelDate,
			AvailableSeats: train.TotalSeats,
			TotalSeats:     train.TotalSeats,
		}
		s.inventory[key] = inv
		t.undo = append(t.undo, func() { delete(s.inventory, key) })
	}

	out := *inv
	return &out, nil
}

// AdjustAvailable applies delta under the pair's lock, rejecting any
// result outside [0, totalSeats]
func (t *memoryTx) AdjustAvailable(ctx context.Context, trainID int64, travelDate time.Time, delta int) (int, error) {
	key := invKey(trainID, travelDate)
	if err := t.lock(ctx, key); err != nil {
		return 0, err
	}

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.inventory[key]
	if !ok {
		return 0, models.ErrInventoryViolation
	}
	newAvailable := inv.AvailableSeats + delta
	if newAvailable < 0 || newAvailable > inv.TotalSeats {
		return 0, models.ErrInventoryViolation
	}
	inv.AvailableSeats = newAvailable
	t.undo = append(t.undo, func() { inv.AvailableSeats -= delta })
	return newAvailable, nil
}

// InsertBooking assigns the next ledger id and stores the booking
func (t *memoryTx) InsertBooking(ctx context.Context, b *models.Booking) (int64, error) {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	b.ID = s.nextID
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now()
	}
	stored := *b
	s.bookings[b.ID] = &stored
	id := b.ID
	t.undo = append(t.undo, func() { delete(s.bookings, id) })
	return b.ID, nil
}

// LockBooking holds the booking's lock so concurrent cancellations serialize
func (t *memoryTx) LockBooking(ctx context.Context, bookingID int64) (*models.Booking, error) {
	if err := t.lock(ctx, bookingKey(bookingID)); err != nil {
		return nil, err
	}

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, models.ErrBookingNotFound
	}
	out := *b
	return &out, nil
}

// SetBookingStatus updates a booking's status
func (t *memoryTx) SetBookingStatus(ctx context.Context, bookingID int64, status string) error {
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[bookingID]
	if !ok {
		return models.ErrBookingNotFound
	}
	prev := b.Status
	b.Status = status
	t.undo = append(t.undo, func() { b.Status = prev })
	return nil
}

func (t *memoryTx) Commit() error {
	if t.done {
		return nil
	}
	t.done = true
	t.undo = nil
	t.releaseAll()
	return nil
}

// Rollback reverses this transaction's mutations in reverse order and
// releases its locks. Safe to call after Commit.
func (t *memoryTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Lock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.store.mu.Unlock()
	t.undo = nil
	t.releaseAll()
	return nil
}

func (t *memoryTx) releaseAll() {
	for key := range t.held {
		t.store.release(key)
	}
	t.held = make(map[string]bool)
}
