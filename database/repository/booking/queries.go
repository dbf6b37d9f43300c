// File: database/repository/booking/queries.go
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

func (r *MongoBookingRepo) findMany(ctx context.Context, filter bson.M, sort bson.D) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.bookingColl.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

func (r *MongoBookingRepo) FindAll(ctx context.Context) ([]models.Booking, error) {
	return r.findMany(ctx, bson.M{}, newestFirst)
}

func (r *MongoBookingRepo) FindByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return r.findMany(ctx, bson.M{"userId": userID}, newestFirst)
}

func (r *MongoBookingRepo) FindBySlot(ctx context.Context, slotID string) ([]models.Booking, error) {
	return r.findMany(ctx, bson.M{"slotId": slotID}, newestFirst)
}

func (r *MongoBookingRepo) FindByStatus(ctx context.Context, status string) ([]models.Booking, error) {
	return r.findMany(ctx, bson.M{"status": status}, newestFirst)
}

func (r *MongoBookingRepo) FindConfirmed(ctx context.Context) ([]models.Booking, error) {
	return r.findMany(ctx, bson.M{"status": models.BookingStatusConfirmed}, newestFirst)
}

// ExistsConfirmed is the duplicate-booking guard lookup.
func (r *MongoBookingRepo) ExistsConfirmed(ctx context.Context, slotID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := r.bookingColl.FindOne(ctx, bson.M{
		"slotId": slotID,
		"userId": userID,
		"status": models.BookingStatusConfirmed,
	}, options.FindOne().SetProjection(bson.M{"id": 1})).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountBySlot counts bookings of any status referencing the slot. Backs
// the conservative delete-slot guard.
func (r *MongoBookingRepo) CountBySlot(ctx context.Context, slotID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.bookingColl.CountDocuments(ctx, bson.M{"slotId": slotID})
}

// CountConfirmedBySlot recomputes the true counter value for drift repair.
func (r *MongoBookingRepo) CountConfirmedBySlot(ctx context.Context, slotID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.bookingColl.CountDocuments(ctx, bson.M{
		"slotId": slotID,
		"status": models.BookingStatusConfirmed,
	})
}

func (r *MongoBookingRepo) Stats(ctx context.Context, now time.Time) (*models.BookingStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	total, err := r.bookingColl.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count bookings: %w", err)
	}
	confirmed, err := r.bookingColl.CountDocuments(ctx, bson.M{"status": models.BookingStatusConfirmed})
	if err != nil {
		return nil, fmt.Errorf("failed to count confirmed bookings: %w", err)
	}
	cancelled, err := r.bookingColl.CountDocuments(ctx, bson.M{"status": models.BookingStatusCancelled})
	if err != nil {
		return nil, fmt.Errorf("failed to count cancelled bookings: %w", err)
	}
	completed, err := r.bookingColl.CountDocuments(ctx, bson.M{"status": models.BookingStatusCompleted})
	if err != nil {
		return nil, fmt.Errorf("failed to count completed bookings: %w", err)
	}

	today := models.DayOnly(now)
	todayCount, err := r.bookingColl.CountDocuments(ctx, bson.M{
		"createdAt": bson.M{"$gte": today, "$lt": today.AddDate(0, 0, 1)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count today's bookings: %w", err)
	}

	return &models.BookingStats{
		TotalBookings:     total,
		ConfirmedBookings: confirmed,
		CancelledBookings: cancelled,
		CompletedBookings: completed,
		TodayBookings:     todayCount,
	}, nil
}
