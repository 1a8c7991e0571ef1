package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"mindwell/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

// RunTransaction runs fn inside a single multi-document Mongo transaction.
// Conflicting concurrent writes abort it with ErrConflict; it is not retried here.
func (repo *MongoBookingRepo) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := repo.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return classifyMongoError(fmt.Errorf("could not start mongo session: %w", err))
	}
	defer sess.EndSession(ctx)

	txnOpts := options.Transaction().
		SetReadPreference(readpref.Primary()).
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(txnOpts); err != nil {
			return classifyMongoError(fmt.Errorf("could not start transaction: %w", err))
		}
		if err := fn(sc, &mongoTransaction{repo: repo, ctx: sc}); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		if err := sc.CommitTransaction(sc); err != nil {
			return classifyMongoError(fmt.Errorf("booking transaction commit failed: %w", err))
		}
		return nil
	})
}

type mongoTransaction struct {
	repo *MongoBookingRepo
	ctx  context.Context
}

func (t *mongoTransaction) CountConfirmedBookings(userID string) (int, error) {
	n, err := t.repo.bookingColl.CountDocuments(t.ctx, confirmedByUser(userID))
	if err != nil {
		return 0, classifyMongoError(fmt.Errorf("count bookings in transaction: %w", err))
	}
	return int(n), nil
}

func (t *mongoTransaction) GetBooking(bookingID string) (*models.Booking, error) {
	var booking models.Booking
	if err := t.repo.bookingColl.FindOne(t.ctx, bson.M{"_id": bookingID}).Decode(&booking); err != nil {
		return nil, classifyMongoError(fmt.Errorf("booking %s: %w", bookingID, err))
	}
	return &booking, nil
}

func (t *mongoTransaction) GetSlotReservation(slotID string) (*models.SlotReservation, error) {
	var slot models.SlotReservation
	if err := t.repo.slotColl.FindOne(t.ctx, bson.M{"_id": slotID}).Decode(&slot); err != nil {
		return nil, classifyMongoError(fmt.Errorf("slot reservation %s: %w", slotID, err))
	}
	return &slot, nil
}

// CreateBooking inserts the booking and bumps the owner's guard document, so two
// transactions reserving for the same user always write-conflict and the booking
// cap re-check inside each cannot both pass on a stale snapshot.
func (t *mongoTransaction) CreateBooking(booking *models.Booking) error {
	if _, err := t.repo.bookingColl.InsertOne(t.ctx, booking); err != nil {
		return classifyMongoError(fmt.Errorf("insert booking failed: %w", err))
	}
	_, err := t.repo.guardColl.UpdateOne(t.ctx,
		bson.M{"_id": booking.UserID},
		bson.M{"$inc": bson.M{"version": 1}, "$set": bson.M{"updatedAt": booking.CreatedAt}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return classifyMongoError(fmt.Errorf("bump booking guard failed: %w", err))
	}
	return nil
}

func (t *mongoTransaction) CreateSlotReservation(slot *models.SlotReservation) error {
	if _, err := t.repo.slotColl.InsertOne(t.ctx, slot); err != nil {
		return classifyMongoError(fmt.Errorf("insert slot reservation failed: %w", err))
	}
	return nil
}

func (t *mongoTransaction) SetBookingStatus(bookingID, status string) error {
	res, err := t.repo.bookingColl.UpdateOne(t.ctx, bson.M{"_id": bookingID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return classifyMongoError(fmt.Errorf("error updating booking %s: %w", bookingID, err))
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("booking %s: %w", bookingID, ErrNotFound)
	}
	return nil
}

func (t *mongoTransaction) DeleteSlotReservation(slotID string) error {
	res, err := t.repo.slotColl.DeleteOne(t.ctx, bson.M{"_id": slotID})
	if err != nil {
		return classifyMongoError(fmt.Errorf("error deleting slot reservation %s: %w", slotID, err))
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("slot reservation %s: %w", slotID, ErrNotFound)
	}
	return nil
}
