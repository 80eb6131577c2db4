package models

// Error kinds exposed to API callers. The kind string is stable and
// machine-readable; the message is for humans.
const (
	KindInvalidInput       = "invalid_input"
	KindInvalidSeatCount   = "invalid_seat_count"
	KindInsufficientSeats  = "insufficient_seats"
	KindTrainNotFound      = "train_not_found"
	KindStationNotFound    = "station_not_found"
	KindBookingNotFound    = "booking_not_found"
	KindNotOwner           = "not_owner"
	KindAlreadyCancelled   = "already_cancelled"
	KindUserExists         = "user_exists"
	KindInvalidCredentials = "invalid_credentials"
	KindLockWait           = "lock_wait"
	KindInternal           = "internal"
)

// DomainError is a business-rule or validation failure with a stable kind.
type DomainError struct {
	Kind    string
	Message string
}

func (e *DomainError) Error() string { return e.Message }

// Is matches errors by kind so wrapped and constructed instances compare
// equal to the sentinels below under errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Kind == e.Kind
}

// Invalid builds a validation error with a specific message.
func Invalid(message string) *DomainError {
	return &DomainError{Kind: KindInvalidInput, Message: message}
}

var (
	ErrInvalidSeatCount   = &DomainError{KindInvalidSeatCount, "number of seats must be at least 1"}
	ErrInsufficientSeats  = &DomainError{KindInsufficientSeats, "not enough seats available"}
	ErrTrainNotFound      = &DomainError{KindTrainNotFound, "train not found"}
	ErrStationNotFound    = &DomainError{KindStationNotFound, "station not found"}
	ErrBookingNotFound    = &DomainError{KindBookingNotFound, "booking not found"}
	ErrNotOwner           = &DomainError{KindNotOwner, "booking belongs to a different user"}
	ErrAlreadyCancelled   = &DomainError{KindAlreadyCancelled, "booking already cancelled"}
	ErrUserExists         = &DomainError{KindUserExists, "user already exists"}
	ErrInvalidCredentials = &DomainError{KindInvalidCredentials, "invalid credentials"}
	ErrLockWait           = &DomainError{KindLockWait, "timed out waiting for seat inventory, retry shortly"}

	// ErrInventoryViolation means the conservation invariant would be
	// broken. It indicates a defect, not a user error.
	ErrInventoryViolation = &DomainError{KindInternal, "seat inventory invariant violated"}
)
