package bookingRepo

import (
	"context"
	"errors"

	"mindwell/models"
)

var (
	// ErrNotFound is returned when a booking or slot reservation does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists is returned when creating a record whose id is taken.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrConflict is returned when the store aborted a transaction because a
	// concurrent writer touched the same records. The transaction can be retried.
	ErrConflict = errors.New("transaction conflict")
	// ErrUnavailable is returned on network, timeout or other store-level failures.
	ErrUnavailable = errors.New("store unavailable")
)

// BookingRepository is the transactional document store behind reservations.
// Reads outside a transaction always hit the authoritative copy.
type BookingRepository interface {
	CountConfirmedBookings(ctx context.Context, userID string) (int, error)
	ListConfirmedBookings(ctx context.Context, therapistID, date string) ([]models.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	// RunTransaction runs fn atomically. Either every write fn made is committed or
	// none is. A commit conflict surfaces as ErrConflict and is not retried here.
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction is the view of the store inside RunTransaction.
// All reads must happen before the first write.
type Transaction interface {
	CountConfirmedBookings(userID string) (int, error)
	GetBooking(bookingID string) (*models.Booking, error)
	GetSlotReservation(slotID string) (*models.SlotReservation, error)
	CreateBooking(booking *models.Booking) error
	CreateSlotReservation(slot *models.SlotReservation) error
	SetBookingStatus(bookingID, status string) error
	DeleteSlotReservation(slotID string) error
}

const (
	bookingsCollection = "bookings"
	slotsCollection    = "bookedSlots"
	guardsCollection   = "bookingGuards"
)
