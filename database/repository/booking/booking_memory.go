package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"mindwell/models"
)

var errReadAfterWrite = errors.New("transaction reads must precede writes")

// MemoryBookingRepo is an in-process BookingRepository for local development and tests.
// Transactions are serialized by a single lock and their writes are applied only on commit.
type MemoryBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	slots    map[string]models.SlotReservation
}

func NewMemoryBookingRepo() *MemoryBookingRepo {
	return &MemoryBookingRepo{
		bookings: make(map[string]models.Booking),
		slots:    make(map[string]models.SlotReservation),
	}
}

func (repo *MemoryBookingRepo) CountConfirmedBookings(ctx context.Context, userID string) (int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	return repo.countConfirmed(userID), nil
}

func (repo *MemoryBookingRepo) ListConfirmedBookings(ctx context.Context, therapistID, date string) ([]models.Booking, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	bookings := []models.Booking{}
	for _, b := range repo.bookings {
		if b.TherapistID == therapistID && b.Date == date && b.IsConfirmed() {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Time < bookings[j].Time })
	return bookings, nil
}

func (repo *MemoryBookingRepo) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	bookings := []models.Booking{}
	for _, b := range repo.bookings {
		if b.UserID == userID {
			bookings = append(bookings, b)
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].ID > bookings[j].ID
		}
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (repo *MemoryBookingRepo) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	b, ok := repo.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	return &b, nil
}

// SlotReservations returns a copy of every stored slot reservation.
func (repo *MemoryBookingRepo) SlotReservations() []models.SlotReservation {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	slots := make([]models.SlotReservation, 0, len(repo.slots))
	for _, s := range repo.slots {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].ID < slots[j].ID })
	return slots
}

func (repo *MemoryBookingRepo) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	tx := &memoryTransaction{repo: repo}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	for _, apply := range tx.writes {
		apply()
	}
	return nil
}

func (repo *MemoryBookingRepo) countConfirmed(userID string) int {
	n := 0
	for _, b := range repo.bookings {
		if b.UserID == userID && b.IsConfirmed() {
			n++
		}
	}
	return n
}

type memoryTransaction struct {
	repo       *MemoryBookingRepo
	writes     []func()
	newBooking map[string]bool
	newSlot    map[string]bool
}

func (t *memoryTransaction) read() error {
	if len(t.writes) > 0 {
		return errReadAfterWrite
	}
	return nil
}

func (t *memoryTransaction) CountConfirmedBookings(userID string) (int, error) {
	if err := t.read(); err != nil {
		return 0, err
	}
	return t.repo.countConfirmed(userID), nil
}

func (t *memoryTransaction) GetBooking(bookingID string) (*models.Booking, error) {
	if err := t.read(); err != nil {
		return nil, err
	}
	b, ok := t.repo.bookings[bookingID]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	return &b, nil
}

func (t *memoryTransaction) GetSlotReservation(slotID string) (*models.SlotReservation, error) {
	if err := t.read(); err != nil {
		return nil, err
	}
	s, ok := t.repo.slots[slotID]
	if !ok {
		return nil, fmt.Errorf("slot reservation %s: %w", slotID, ErrNotFound)
	}
	return &s, nil
}

func (t *memoryTransaction) CreateBooking(booking *models.Booking) error {
	if _, ok := t.repo.bookings[booking.ID]; ok || t.newBooking[booking.ID] {
		return fmt.Errorf("booking %s: %w", booking.ID, ErrAlreadyExists)
	}
	if t.newBooking == nil {
		t.newBooking = make(map[string]bool)
	}
	t.newBooking[booking.ID] = true
	b := *booking
	t.writes = append(t.writes, func() { t.repo.bookings[b.ID] = b })
	return nil
}

func (t *memoryTransaction) CreateSlotReservation(slot *models.SlotReservation) error {
	if _, ok := t.repo.slots[slot.ID]; ok || t.newSlot[slot.ID] {
		return fmt.Errorf("slot reservation %s: %w", slot.ID, ErrAlreadyExists)
	}
	if t.newSlot == nil {
		t.newSlot = make(map[string]bool)
	}
	t.newSlot[slot.ID] = true
	s := *slot
	t.writes = append(t.writes, func() { t.repo.slots[s.ID] = s })
	return nil
}

func (t *memoryTransaction) SetBookingStatus(bookingID, status string) error {
	if _, ok := t.repo.bookings[bookingID]; !ok && !t.newBooking[bookingID] {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	t.writes = append(t.writes, func() {
		b := t.repo.bookings[bookingID]
		b.Status = status
		t.repo.bookings[bookingID] = b
	})
	return nil
}

func (t *memoryTransaction) DeleteSlotReservation(slotID string) error {
	if _, ok := t.repo.slots[slotID]; !ok {
		return fmt.Errorf("slot reservation %s: %w", slotID, ErrNotFound)
	}
	t.writes = append(t.writes, func() { delete(t.repo.slots, slotID) })
	return nil
}
