// File: database/repository/booking/transaction.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotbook/models"
)

// slotHasRoom is the conditional filter that makes the counter increment
// atomic: the update only matches while the slot is active and below
// capacity, so of N concurrent claims exactly one can win the last unit.
func slotHasRoom(slotID string) bson.M {
	return bson.M{
		"id":       slotID,
		"isActive": true,
		"$expr":    bson.M{"$lt": bson.A{"$currentBookings", "$maxBookings"}},
	}
}

// slotHasBookings guards the decrement so the counter can never go below
// zero; a miss signals count/booking drift.
func slotHasBookings(slotID string) bson.M {
	return bson.M{
		"id":              slotID,
		"currentBookings": bson.M{"$gt": 0},
	}
}

func (r *MongoBookingRepo) withTransaction(ctx context.Context, fn func(sc mongo.SessionContext) error) error {
	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	return mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := fn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	})
}

// CreateWithSlotClaim inserts the booking and increments the slot counter
// as one unit. When the conditional increment matches nothing the whole
// transaction aborts and ErrSlotUnavailable is returned; the booking
// insert is never observable on its own.
func (r *MongoBookingRepo) CreateWithSlotClaim(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := r.bookingColl.InsertOne(sc, booking); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}

		res, err := r.slotColl.UpdateOne(sc, slotHasRoom(booking.SlotID), bson.M{
			"$inc": bson.M{"currentBookings": 1},
			"$set": bson.M{"updatedAt": booking.CreatedAt},
		})
		if err != nil {
			return fmt.Errorf("slot claim failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrSlotUnavailable
		}
		return nil
	})
}

// CancelWithSlotRelease flips a confirmed booking to cancelled and
// releases its slot unit in one unit. The status filter doubles as the
// monotonic-transition guard under concurrency.
func (r *MongoBookingRepo) CancelWithSlotRelease(ctx context.Context, bookingID, cancelledBy string, now time.Time) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var cancelled models.Booking
	err := r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		after := options.After
		err := r.bookingColl.FindOneAndUpdate(sc,
			bson.M{"id": bookingID, "status": models.BookingStatusConfirmed},
			bson.M{"$set": bson.M{
				"status":      models.BookingStatusCancelled,
				"cancelledAt": now,
				"cancelledBy": cancelledBy,
				"updatedAt":   now,
			}},
			options.FindOneAndUpdate().SetReturnDocument(after),
		).Decode(&cancelled)
		if err == mongo.ErrNoDocuments {
			return ErrNotConfirmed
		}
		if err != nil {
			return fmt.Errorf("cancel booking failed: %w", err)
		}

		res, err := r.slotColl.UpdateOne(sc, slotHasBookings(cancelled.SlotID), bson.M{
			"$inc": bson.M{"currentBookings": -1},
			"$set": bson.M{"updatedAt": now},
		})
		if err != nil {
			return fmt.Errorf("slot release failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNoBookingsToDecrement
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &cancelled, nil
}

// Complete marks a confirmed booking completed. The slot counter is left
// untouched: a completed slot stays counted as booked.
func (r *MongoBookingRepo) Complete(ctx context.Context, bookingID string, now time.Time) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	after := options.After
	var completed models.Booking
	err := r.bookingColl.FindOneAndUpdate(ctx,
		bson.M{"id": bookingID, "status": models.BookingStatusConfirmed},
		bson.M{"$set": bson.M{
			"status":      models.BookingStatusCompleted,
			"completedAt": now,
			"updatedAt":   now,
		}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&completed)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotConfirmed
	}
	if err != nil {
		return nil, fmt.Errorf("complete booking failed: %w", err)
	}
	return &completed, nil
}

// DeleteWithSlotRelease hard-deletes the booking and releases its slot
// unit in the same transaction. Cancelled bookings already released
// theirs at cancel time; confirmed and completed ones still hold a unit
// (completion never decrements).
func (r *MongoBookingRepo) DeleteWithSlotRelease(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	return r.withTransaction(ctx, func(sc mongo.SessionContext) error {
		res, err := r.bookingColl.DeleteOne(sc, bson.M{"id": booking.ID})
		if err != nil {
			return fmt.Errorf("delete booking failed: %w", err)
		}
		if res.DeletedCount == 0 {
			return mongo.ErrNoDocuments
		}

		if booking.Status == models.BookingStatusCancelled {
			return nil
		}

		upd, err := r.slotColl.UpdateOne(sc, slotHasBookings(booking.SlotID), bson.M{
			"$inc": bson.M{"currentBookings": -1},
			"$set": bson.M{"updatedAt": time.Now()},
		})
		if err != nil {
			return fmt.Errorf("slot release failed: %w", err)
		}
		if upd.MatchedCount == 0 {
			return ErrNoBookingsToDecrement
		}
		return nil
	})
}
