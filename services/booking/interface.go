package booking

import (
	"context"

	"mindwell/models"
)

// ReservationService reserves and cancels therapist sessions.
type ReservationService interface {
	CountConfirmedBookings(ctx context.Context, userID string) (int, error)
	IsUnderBookingLimit(ctx context.Context, userID string) (bool, error)
	ListBookedTimes(ctx context.Context, therapistID, date string) ([]string, error)
	AvailableTimes(ctx context.Context, therapistID, date string) ([]models.AvailableSlot, error)
	ReserveSlot(ctx context.Context, req ReserveRequest) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (bool, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
}

// ReserveRequest is everything needed to reserve one slot for one user.
type ReserveRequest struct {
	UserID        string
	UserEmail     string
	TherapistID   string
	TherapistName string
	Date          string
	Time          string
	SessionType   string
}

// Notifier tells a user their session is booked.
type Notifier interface {
	NotifyBookingConfirmed(ctx context.Context, booking models.Booking) error
}

// ReminderScheduler queues a reminder ahead of a booked session.
type ReminderScheduler interface {
	ScheduleSessionReminder(ctx context.Context, booking models.Booking) error
}
