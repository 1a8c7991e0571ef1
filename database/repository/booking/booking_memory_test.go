package bookingRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindwell/models"
)

func seedBooking(id, user string) *models.Booking {
	return &models.Booking{
		ID:          id,
		UserID:      user,
		TherapistID: "7",
		Date:        "2025-06-01",
		Time:        "14:00",
		Status:      models.BookingStatusConfirmed,
		CreatedAt:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestMemoryRunTransaction_DiscardsWritesOnError(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepo()
	boom := errors.New("boom")

	err := repo.RunTransaction(ctx, func(ctx context.Context, tx Transaction) error {
		if err := tx.CreateBooking(seedBooking("b1", "u1")); err != nil {
			return err
		}
		if err := tx.CreateSlotReservation(&models.SlotReservation{ID: "s1", BookingID: "b1"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("RunTransaction error = %v, want boom", err)
	}
	if _, err := repo.GetBooking(ctx, "b1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBooking after rollback error = %v, want ErrNotFound", err)
	}
	if len(repo.SlotReservations()) != 0 {
		t.Errorf("slot reservations after rollback = %v, want none", repo.SlotReservations())
	}
}

func TestMemoryTransaction_Semantics(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryBookingRepo()

	err := repo.RunTransaction(ctx, func(ctx context.Context, tx Transaction) error {
		if err := tx.CreateSlotReservation(&models.SlotReservation{ID: "s1", BookingID: "b1"}); err != nil {
			return err
		}
		return tx.CreateBooking(seedBooking("b1", "u1"))
	})
	if err != nil {
		t.Fatalf("seed transaction error = %v", err)
	}

	tests := []struct {
		name string
		fn   func(tx Transaction) error
		want error
	}{
		{
			name: "slot exists",
			fn: func(tx Transaction) error {
				return tx.CreateSlotReservation(&models.SlotReservation{ID: "s1"})
			},
			want: ErrAlreadyExists,
		},
		{
			name: "read after write",
			fn: func(tx Transaction) error {
				if err := tx.SetBookingStatus("b1", models.BookingStatusCancelled); err != nil {
					return err
				}
				_, err := tx.GetSlotReservation("s1")
				return err
			},
			want: errReadAfterWrite,
		},
		{
			name: "missing booking",
			fn: func(tx Transaction) error {
				return tx.SetBookingStatus("nope", models.BookingStatusCancelled)
			},
			want: ErrNotFound,
		},
		{
			name: "missing slot",
			fn: func(tx Transaction) error {
				return tx.DeleteSlotReservation("nope")
			},
			want: ErrNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.RunTransaction(ctx, func(ctx context.Context, tx Transaction) error { return tt.fn(tx) })
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	b, err := repo.GetBooking(ctx, "b1")
	if err != nil || b.Status != models.BookingStatusConfirmed {
		t.Errorf("b1 = %+v, %v; failed transactions must not change it", b, err)
	}
	if n, _ := repo.CountConfirmedBookings(ctx, "u1"); n != 1 {
		t.Errorf("CountConfirmedBookings = %d, want 1", n)
	}
}

func TestMemoryRunTransaction_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewMemoryBookingRepo().RunTransaction(ctx, func(ctx context.Context, tx Transaction) error {
		t.Fatal("fn must not run on a cancelled context")
		return nil
	})
	if !errors.Is(err, ErrUnavailable) || !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want ErrUnavailable wrapping context.Canceled", err)
	}
}
