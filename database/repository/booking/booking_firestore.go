package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"mindwell/models"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreBookingRepo implements BookingRepository on Cloud Firestore.
// Server SDK reads are never served from a local cache.
type FirestoreBookingRepo struct {
	client   *firestore.Client
	bookings *firestore.CollectionRef
	slots    *firestore.CollectionRef
}

// NewFirestoreBookingRepo wraps an initialized Firestore client.
func NewFirestoreBookingRepo(client *firestore.Client) *FirestoreBookingRepo {
	return &FirestoreBookingRepo{
		client:   client,
		bookings: client.Collection(bookingsCollection),
		slots:    client.Collection(slotsCollection),
	}
}

func (repo *FirestoreBookingRepo) CountConfirmedBookings(ctx context.Context, userID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	bookings, err := collectBookings(repo.confirmedByUser(userID).Documents(ctx))
	if err != nil {
		return 0, fmt.Errorf("error counting bookings for user %s: %w", userID, err)
	}
	return len(bookings), nil
}

func (repo *FirestoreBookingRepo) ListConfirmedBookings(ctx context.Context, therapistID, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := repo.bookings.
		Where("therapistId", "==", therapistID).
		Where("date", "==", date).
		Where("status", "==", models.BookingStatusConfirmed)
	bookings, err := collectBookings(q.Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].Time < bookings[j].Time })
	return bookings, nil
}

func (repo *FirestoreBookingRepo) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := repo.bookings.Where("userId", "==", userID).OrderBy("createdAt", firestore.Desc)
	bookings, err := collectBookings(q.Documents(ctx))
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings for user %s: %w", userID, err)
	}
	return bookings, nil
}

func (repo *FirestoreBookingRepo) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	snap, err := repo.bookings.Doc(bookingID).Get(ctx)
	if err != nil {
		return nil, classifyFirestoreError(fmt.Errorf("booking %s: %w", bookingID, err))
	}
	return decodeBooking(snap)
}

// RunTransaction runs fn in a Firestore transaction limited to one attempt;
// retrying on contention is the caller's decision.
func (repo *FirestoreBookingRepo) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var fnErr error
	err := repo.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		fnErr = fn(ctx, &firestoreTransaction{repo: repo, tx: tx})
		return fnErr
	}, firestore.MaxAttempts(1))
	if err == nil {
		return nil
	}
	if fnErr != nil && errors.Is(err, fnErr) {
		return fnErr
	}
	return classifyFirestoreError(fmt.Errorf("booking transaction failed: %w", err))
}

func (repo *FirestoreBookingRepo) confirmedByUser(userID string) firestore.Query {
	return repo.bookings.
		Where("userId", "==", userID).
		Where("status", "==", models.BookingStatusConfirmed)
}

type firestoreTransaction struct {
	repo *FirestoreBookingRepo
	tx   *firestore.Transaction
}

func (t *firestoreTransaction) CountConfirmedBookings(userID string) (int, error) {
	bookings, err := collectBookings(t.tx.Documents(t.repo.confirmedByUser(userID)))
	if err != nil {
		return 0, fmt.Errorf("count bookings in transaction: %w", err)
	}
	return len(bookings), nil
}

func (t *firestoreTransaction) GetBooking(bookingID string) (*models.Booking, error) {
	snap, err := t.tx.Get(t.repo.bookings.Doc(bookingID))
	if err != nil {
		return nil, classifyFirestoreError(fmt.Errorf("booking %s: %w", bookingID, err))
	}
	return decodeBooking(snap)
}

func (t *firestoreTransaction) GetSlotReservation(slotID string) (*models.SlotReservation, error) {
	snap, err := t.tx.Get(t.repo.slots.Doc(slotID))
	if err != nil {
		return nil, classifyFirestoreError(fmt.Errorf("slot reservation %s: %w", slotID, err))
	}
	var slot models.SlotReservation
	if err := snap.DataTo(&slot); err != nil {
		return nil, fmt.Errorf("decode slot reservation %s: %w", slotID, err)
	}
	slot.ID = snap.Ref.ID
	return &slot, nil
}

func (t *firestoreTransaction) CreateBooking(booking *models.Booking) error {
	if err := t.tx.Create(t.repo.bookings.Doc(booking.ID), booking); err != nil {
		return classifyFirestoreError(fmt.Errorf("insert booking failed: %w", err))
	}
	return nil
}

// CreateSlotReservation fails the commit if the slot document already exists.
func (t *firestoreTransaction) CreateSlotReservation(slot *models.SlotReservation) error {
	if err := t.tx.Create(t.repo.slots.Doc(slot.ID), slot); err != nil {
		return classifyFirestoreError(fmt.Errorf("insert slot reservation failed: %w", err))
	}
	return nil
}

func (t *firestoreTransaction) SetBookingStatus(bookingID, status string) error {
	err := t.tx.Update(t.repo.bookings.Doc(bookingID), []firestore.Update{{Path: "status", Value: status}})
	if err != nil {
		return classifyFirestoreError(fmt.Errorf("error updating booking %s: %w", bookingID, err))
	}
	return nil
}

func (t *firestoreTransaction) DeleteSlotReservation(slotID string) error {
	if err := t.tx.Delete(t.repo.slots.Doc(slotID), firestore.Exists); err != nil {
		return classifyFirestoreError(fmt.Errorf("error deleting slot reservation %s: %w", slotID, err))
	}
	return nil
}

func collectBookings(it *firestore.DocumentIterator) ([]models.Booking, error) {
	defer it.Stop()

	bookings := []models.Booking{}
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, classifyFirestoreError(err)
		}
		b, err := decodeBooking(snap)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, nil
}

func decodeBooking(snap *firestore.DocumentSnapshot) (*models.Booking, error) {
	var b models.Booking
	if err := snap.DataTo(&b); err != nil {
		return nil, fmt.Errorf("decode booking %s: %w", snap.Ref.ID, err)
	}
	b.ID = snap.Ref.ID
	return &b, nil
}

// classifyFirestoreError tags gRPC status errors with the package sentinels.
func classifyFirestoreError(err error) error {
	if err == nil {
		return nil
	}
	switch status.Code(err) {
	case codes.NotFound:
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	case codes.Aborted:
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
