package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	bookingRepo "mindwell/database/repository/booking"
	"mindwell/models"

	"go.uber.org/zap"
)

// MaxBookingsPerUser caps how many confirmed sessions one user may hold.
const MaxBookingsPerUser = 5

// Number of times one user may rebook the same slot after cancelling it.
const maxBookingGenerations = 20

const (
	defaultMaxAttempts  = 3
	defaultRetryBackoff = 150 * time.Millisecond
)

// DefaultReservationService implements ReservationService on a transactional store.
// It keeps no state between calls: every availability and cap check is a fresh
// read, and the store transaction is the only mutual exclusion.
type DefaultReservationService struct {
	Repo      bookingRepo.BookingRepository
	Notifier  Notifier          // optional
	Reminders ReminderScheduler // optional

	// MaxAttempts bounds how often a conflicting or failed transaction is retried.
	MaxAttempts int
	// RetryBackoff grows linearly per attempt. Zero uses the default, negative disables waiting.
	RetryBackoff time.Duration
	Location     *time.Location
	Now          func() time.Time
	Logger       *zap.Logger
}

// CountConfirmedBookings returns how many confirmed bookings userID holds.
func (s *DefaultReservationService) CountConfirmedBookings(ctx context.Context, userID string) (int, error) {
	n, err := s.Repo.CountConfirmedBookings(ctx, userID)
	if err != nil {
		return 0, toReservationError(err)
	}
	return n, nil
}

// IsUnderBookingLimit reports whether userID may make another booking.
func (s *DefaultReservationService) IsUnderBookingLimit(ctx context.Context, userID string) (bool, error) {
	n, err := s.CountConfirmedBookings(ctx, userID)
	if err != nil {
		return false, err
	}
	return n < MaxBookingsPerUser, nil
}

// ListBookedTimes returns the taken start times for a therapist on a date, sorted.
// It is advisory only; ReserveSlot is the enforcement point.
func (s *DefaultReservationService) ListBookedTimes(ctx context.Context, therapistID, date string) ([]string, error) {
	bookings, err := s.Repo.ListConfirmedBookings(ctx, therapistID, date)
	if err != nil {
		return nil, toReservationError(err)
	}
	seen := make(map[string]bool, len(bookings))
	times := []string{}
	for _, b := range bookings {
		if !seen[b.Time] {
			seen[b.Time] = true
			times = append(times, b.Time)
		}
	}
	sort.Strings(times)
	return times, nil
}

// AvailableTimes lists every fixed slot time for the day with its availability.
func (s *DefaultReservationService) AvailableTimes(ctx context.Context, therapistID, date string) ([]models.AvailableSlot, error) {
	if _, ok := LookupTherapist(therapistID); !ok {
		return nil, invalidRequest("Unknown therapist.")
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return nil, invalidRequest("Date must be in YYYY-MM-DD format.")
	}
	booked, err := s.ListBookedTimes(ctx, therapistID, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(booked))
	for _, t := range booked {
		taken[t] = true
	}
	slots := make([]models.AvailableSlot, 0, len(models.SlotTimes))
	for _, t := range models.SlotTimes {
		slots = append(slots, models.AvailableSlot{Date: date, Time: t, Available: !taken[t]})
	}
	return slots, nil
}

// ReserveSlot books one slot for a user. Exactly one booking and one slot
// reservation are written on success and nothing is written on failure.
// Repeating a request for a slot the same user already holds returns that booking.
func (s *DefaultReservationService) ReserveSlot(ctx context.Context, req ReserveRequest) (*models.Booking, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}

	baseID := BookingID(req.UserID, req.TherapistID, req.Date, req.Time)
	slotID := SlotID(req.TherapistID, req.Date, req.Time)
	logger := s.logger().With(zap.String("slotID", slotID), zap.String("userID", req.UserID))

	var (
		booking  models.Booking
		replayed bool
	)
	err := s.withRetry(ctx, logger, "reserve", func() error {
		replayed = false
		return s.Repo.RunTransaction(ctx, func(ctx context.Context, tx bookingRepo.Transaction) error {
			// The replay check comes before the cap so a retry of a reservation that
			// already committed returns it instead of failing on its own booking.
			slot, err := tx.GetSlotReservation(slotID)
			slotHeld := err == nil
			if err != nil && !errors.Is(err, bookingRepo.ErrNotFound) {
				return err
			}
			if slotHeld {
				existing, err := s.heldBySameUser(tx, slot, req.UserID)
				if err != nil {
					return err
				}
				if existing != nil {
					booking, replayed = *existing, true
					return nil
				}
			}

			count, err := tx.CountConfirmedBookings(req.UserID)
			if err != nil {
				return err
			}
			if count >= MaxBookingsPerUser {
				return ErrBookingLimitExceeded
			}
			if slotHeld {
				return ErrSlotAlreadyTaken
			}

			id, err := nextBookingID(tx, baseID)
			if err != nil {
				return err
			}

			booking = models.Booking{
				ID:            id,
				UserID:        req.UserID,
				UserEmail:     req.UserEmail,
				TherapistID:   req.TherapistID,
				TherapistName: req.TherapistName,
				Date:          req.Date,
				Time:          req.Time,
				SessionType:   req.SessionType,
				Status:        models.BookingStatusConfirmed,
				CreatedAt:     s.now().UTC(),
			}
			if err := tx.CreateBooking(&booking); err != nil {
				return err
			}
			return tx.CreateSlotReservation(&models.SlotReservation{
				ID:          slotID,
				TherapistID: req.TherapistID,
				Date:        req.Date,
				Time:        req.Time,
				IsBooked:    true,
				BookingID:   id,
			})
		})
	})
	if err != nil {
		logger.Info("Slot reservation failed", zap.String("code", string(CodeOf(err))), zap.Error(err))
		return nil, err
	}

	if replayed {
		logger.Info("Slot already held by requesting user", zap.String("bookingID", booking.ID))
		return &booking, nil
	}
	logger.Info("Slot reserved", zap.String("bookingID", booking.ID))
	s.afterReserve(ctx, logger, booking)
	return &booking, nil
}

// CancelBooking cancels a confirmed booking and frees its slot in one transaction.
// The booking record is kept with status cancelled. It returns false with a
// *ReservationError when nothing was cancelled.
func (s *DefaultReservationService) CancelBooking(ctx context.Context, bookingID string) (bool, error) {
	if strings.TrimSpace(bookingID) == "" {
		return false, invalidRequest("A booking id is required.")
	}
	logger := s.logger().With(zap.String("bookingID", bookingID))

	err := s.withRetry(ctx, logger, "cancel", func() error {
		return s.Repo.RunTransaction(ctx, func(ctx context.Context, tx bookingRepo.Transaction) error {
			b, err := tx.GetBooking(bookingID)
			if err != nil {
				return err
			}
			if !b.IsConfirmed() {
				return &ReservationError{Code: CodeNotFound, Message: "This booking has already been cancelled."}
			}

			slotID := SlotID(b.TherapistID, b.Date, b.Time)
			ownsSlot := false
			slot, err := tx.GetSlotReservation(slotID)
			switch {
			case err == nil:
				// Records written before bookingId was tracked carry no owner.
				ownsSlot = slot.BookingID == "" || slot.BookingID == b.ID
			case !errors.Is(err, bookingRepo.ErrNotFound):
				return err
			}

			if err := tx.SetBookingStatus(b.ID, models.BookingStatusCancelled); err != nil {
				return err
			}
			if ownsSlot {
				return tx.DeleteSlotReservation(slotID)
			}
			logger.Warn("Cancelled booking did not hold its slot", zap.String("slotID", slotID))
			return nil
		})
	})
	if err != nil {
		logger.Info("Booking cancellation failed", zap.String("code", string(CodeOf(err))), zap.Error(err))
		return false, err
	}
	logger.Info("Booking cancelled")
	return true, nil
}

// GetBooking returns a booking by id.
func (s *DefaultReservationService) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, toReservationError(err)
	}
	return b, nil
}

// ListUserBookings returns a user's bookings, newest first, cancelled ones included.
func (s *DefaultReservationService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	bookings, err := s.Repo.ListUserBookings(ctx, userID)
	if err != nil {
		return nil, toReservationError(err)
	}
	return bookings, nil
}

func (s *DefaultReservationService) validate(req *ReserveRequest) error {
	req.UserID = strings.TrimSpace(req.UserID)
	req.TherapistID = strings.TrimSpace(req.TherapistID)
	if req.UserID == "" {
		return invalidRequest("A signed-in user is required.")
	}
	therapist, ok := LookupTherapist(req.TherapistID)
	if !ok {
		return invalidRequest("Unknown therapist.")
	}
	if req.TherapistName == "" {
		req.TherapistName = therapist.Name
	}
	day, err := time.ParseInLocation(time.DateOnly, req.Date, s.location())
	if err != nil {
		return invalidRequest("Date must be in YYYY-MM-DD format.")
	}
	if !models.IsSlotTime(req.Time) {
		return invalidRequest(fmt.Sprintf("Time must be one of %s.", strings.Join(models.SlotTimes, ", ")))
	}
	if !models.IsSessionType(req.SessionType) {
		return invalidRequest(fmt.Sprintf("Session type must be one of %s.", strings.Join(models.SessionTypes, ", ")))
	}
	if !offers(therapist, req.SessionType) {
		return invalidRequest(fmt.Sprintf("%s does not offer %s sessions.", therapist.Name, req.SessionType))
	}
	now := s.now().In(s.location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location())
	if day.Before(today) {
		return invalidRequest("Sessions cannot be booked in the past.")
	}
	return nil
}

// heldBySameUser returns the booking holding slot when it is a confirmed booking
// of userID, or nil when someone else holds the slot.
func (s *DefaultReservationService) heldBySameUser(tx bookingRepo.Transaction, slot *models.SlotReservation, userID string) (*models.Booking, error) {
	if slot.BookingID == "" {
		return nil, nil
	}
	b, err := tx.GetBooking(slot.BookingID)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if b.UserID != userID || !b.IsConfirmed() {
		return nil, nil
	}
	return b, nil
}

// nextBookingID picks the first generation of baseID not used by a cancelled booking.
func nextBookingID(tx bookingRepo.Transaction, baseID string) (string, error) {
	for n := 1; n <= maxBookingGenerations; n++ {
		id := generationID(baseID, n)
		b, err := tx.GetBooking(id)
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return id, nil
		}
		if err != nil {
			return "", err
		}
		if b.IsConfirmed() {
			// The slot record is gone but this user's booking is still live.
			return "", ErrSlotAlreadyTaken
		}
	}
	return "", invalidRequest("This session has been rebooked too many times.")
}

func (s *DefaultReservationService) afterReserve(ctx context.Context, logger *zap.Logger, b models.Booking) {
	if s.Notifier != nil {
		if err := s.Notifier.NotifyBookingConfirmed(ctx, b); err != nil {
			logger.Warn("Booking confirmation push failed", zap.Error(err))
		}
	}
	if s.Reminders != nil {
		if err := s.Reminders.ScheduleSessionReminder(ctx, b); err != nil {
			logger.Warn("Session reminder scheduling failed", zap.Error(err))
		}
	}
}

func (s *DefaultReservationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultReservationService) location() *time.Location {
	if s.Location != nil {
		return s.Location
	}
	return time.Local
}

func (s *DefaultReservationService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return zap.L()
}
