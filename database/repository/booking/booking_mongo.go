package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mindwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	slotColl    *mongo.Collection
	guardColl   *mongo.Collection
}

// NewMongoBookingRepo constructs a new instance of MongoBookingRepo. db should be
// configured for primary reads (see database.Database).
func NewMongoBookingRepo(db *mongo.Database) *MongoBookingRepo {
	return &MongoBookingRepo{
		bookingColl: db.Collection(bookingsCollection),
		slotColl:    db.Collection(slotsCollection),
		guardColl:   db.Collection(guardsCollection),
	}
}

// CountConfirmedBookings counts a user's confirmed bookings.
func (repo *MongoBookingRepo) CountConfirmedBookings(ctx context.Context, userID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := repo.bookingColl.CountDocuments(ctx, confirmedByUser(userID))
	if err != nil {
		return 0, classifyMongoError(fmt.Errorf("error counting bookings for user %s: %w", userID, err))
	}
	return int(n), nil
}

// ListConfirmedBookings returns the confirmed bookings for a therapist on a date.
func (repo *MongoBookingRepo) ListConfirmedBookings(ctx context.Context, therapistID, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"therapistId": therapistID,
		"date":        date,
		"status":      models.BookingStatusConfirmed,
	}
	opts := options.Find().SetSort(bson.D{{Key: "time", Value: 1}})
	return repo.findBookings(ctx, filter, opts)
}

// ListUserBookings returns every booking a user made, newest first.
func (repo *MongoBookingRepo) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return repo.findBookings(ctx, bson.M{"userId": userID}, opts)
}

// GetBooking retrieves a booking by its ID.
func (repo *MongoBookingRepo) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := repo.bookingColl.FindOne(ctx, bson.M{"_id": bookingID}).Decode(&booking); err != nil {
		return nil, classifyMongoError(fmt.Errorf("booking %s: %w", bookingID, err))
	}
	return &booking, nil
}

func (repo *MongoBookingRepo) findBookings(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Booking, error) {
	cursor, err := repo.bookingColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, classifyMongoError(fmt.Errorf("error fetching bookings: %w", err))
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, classifyMongoError(fmt.Errorf("error decoding bookings: %w", err))
	}
	return bookings, nil
}

func confirmedByUser(userID string) bson.M {
	return bson.M{"userId": userID, "status": models.BookingStatusConfirmed}
}

// classifyMongoError tags driver errors with the package sentinels.
func classifyMongoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	}
	var se mongo.ServerError
	if errors.As(err, &se) {
		// 112 WriteConflict, 251 NoSuchTransaction (aborted by a concurrent writer).
		if se.HasErrorLabel("TransientTransactionError") ||
			se.HasErrorLabel("UnknownTransactionCommitResult") ||
			se.HasErrorCode(112) || se.HasErrorCode(251) {
			return fmt.Errorf("%w: %w", ErrConflict, err)
		}
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
