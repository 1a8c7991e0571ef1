package bookingRepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func mockTx(mt *mtest.T) *mongoTransaction {
	return &mongoTransaction{repo: NewMongoBookingRepo(mt.DB), ctx: context.Background()}
}

func testBooking() *models.Booking {
	return &models.Booking{
		ID:          "U_3_2025-06-01_10:30",
		UserID:      "U",
		TherapistID: "3",
		Date:        "2025-06-01",
		Time:        "10:30",
		Status:      models.BookingStatusConfirmed,
		CreatedAt:   time.Date(2025, 5, 20, 9, 0, 0, 0, time.UTC),
	}
}

func TestMongoTransaction(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("count confirmed bookings", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + bookingsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int64(3)}}))

		n, err := mockTx(mt).CountConfirmedBookings("U")
		if err != nil {
			mt.Fatalf("CountConfirmedBookings() error = %v", err)
		}
		if n != 3 {
			mt.Errorf("CountConfirmedBookings() = %d, want 3", n)
		}
	})

	mt.Run("slot reservation found", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + slotsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "3_2025-06-01_10:30"},
			{Key: "isBooked", Value: true},
			{Key: "bookingId", Value: "U_3_2025-06-01_10:30"},
		}))

		slot, err := mockTx(mt).GetSlotReservation("3_2025-06-01_10:30")
		if err != nil {
			mt.Fatalf("GetSlotReservation() error = %v", err)
		}
		if !slot.IsBooked || slot.BookingID != "U_3_2025-06-01_10:30" {
			mt.Errorf("GetSlotReservation() = %+v", slot)
		}
	})

	mt.Run("slot reservation missing", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + slotsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		if _, err := mockTx(mt).GetSlotReservation("3_2025-06-01_10:30"); !errors.Is(err, ErrNotFound) {
			mt.Errorf("GetSlotReservation() error = %v, want ErrNotFound", err)
		}
	})

	mt.Run("duplicate slot insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}))

		err := mockTx(mt).CreateSlotReservation(&models.SlotReservation{ID: "3_2025-06-01_10:30", IsBooked: true})
		if !errors.Is(err, ErrAlreadyExists) {
			mt.Errorf("CreateSlotReservation() error = %v, want ErrAlreadyExists", err)
		}
	})

	mt.Run("create booking bumps the user guard", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}, bson.E{Key: "nModified", Value: 1}),
		)

		if err := mockTx(mt).CreateBooking(testBooking()); err != nil {
			mt.Fatalf("CreateBooking() error = %v", err)
		}
		started := mt.GetAllStartedEvents()
		if len(started) != 2 {
			mt.Fatalf("commands sent = %d, want 2", len(started))
		}
		if got := started[1].Command.Lookup("update").StringValue(); got != guardsCollection {
			mt.Errorf("second command updates %q, want %q", got, guardsCollection)
		}
	})

	mt.Run("guard write conflict", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    112,
				Name:    "WriteConflict",
				Message: "write conflict",
				Labels:  []string{"TransientTransactionError"},
			}),
		)

		if err := mockTx(mt).CreateBooking(testBooking()); !errors.Is(err, ErrConflict) {
			mt.Errorf("CreateBooking() error = %v, want ErrConflict", err)
		}
	})

	mt.Run("duplicate booking insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}))

		if err := mockTx(mt).CreateBooking(testBooking()); !errors.Is(err, ErrAlreadyExists) {
			mt.Errorf("CreateBooking() error = %v, want ErrAlreadyExists", err)
		}
		if n := len(mt.GetAllStartedEvents()); n != 1 {
			mt.Errorf("commands sent = %d, want only the insert", n)
		}
	})

	mt.Run("status update on missing booking", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := mockTx(mt).SetBookingStatus("U_3_2025-06-01_10:30", models.BookingStatusCancelled)
		if !errors.Is(err, ErrNotFound) {
			mt.Errorf("SetBookingStatus() error = %v, want ErrNotFound", err)
		}
	})

	mt.Run("delete missing slot reservation", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		if err := mockTx(mt).DeleteSlotReservation("3_2025-06-01_10:30"); !errors.Is(err, ErrNotFound) {
			mt.Errorf("DeleteSlotReservation() error = %v, want ErrNotFound", err)
		}
	})

	mt.Run("server unavailable", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized"}))

		if _, err := NewMongoBookingRepo(mt.DB).CountConfirmedBookings(context.Background(), "U"); !errors.Is(err, ErrUnavailable) {
			mt.Errorf("CountConfirmedBookings() error = %v, want ErrUnavailable", err)
		}
	})
}
