// File: database/repository/slot/queries.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slotbook/models"
)

var slotListSort = bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}}

func (r *mongoSlotRepo) findMany(ctx context.Context, filter bson.M) ([]models.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(slotListSort))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var slots []models.Slot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *mongoSlotRepo) FindAll(ctx context.Context) ([]models.Slot, error) {
	return r.findMany(ctx, bson.M{})
}

// FindAvailable returns every slot that can currently accept a booking:
// active, counter below capacity, and starting after the booking-buffer
// cutoff. The same predicate models.Slot.CanAcceptBooking expresses in
// memory, pushed down into the query.
func (r *mongoSlotRepo) FindAvailable(ctx context.Context, now time.Time) ([]models.Slot, error) {
	today := models.DayOnly(now)
	cutoff := now.Add(models.BookingBufferMinutes * time.Minute).Format("15:04")

	return r.findMany(ctx, bson.M{
		"isActive": true,
		"$expr":    bson.M{"$lt": bson.A{"$currentBookings", "$maxBookings"}},
		"$or": bson.A{
			bson.M{"date": bson.M{"$gt": today}},
			bson.M{"date": today, "startTime": bson.M{"$gt": cutoff}},
		},
	})
}

func (r *mongoSlotRepo) FindByCreator(ctx context.Context, userID string) ([]models.Slot, error) {
	return r.findMany(ctx, bson.M{"createdBy": userID})
}

func (r *mongoSlotRepo) FindByDateRange(ctx context.Context, start, end time.Time) ([]models.Slot, error) {
	return r.findMany(ctx, bson.M{
		"date":     bson.M{"$gte": models.DayOnly(start), "$lte": models.DayOnly(end)},
		"isActive": true,
	})
}

func (r *mongoSlotRepo) Stats(ctx context.Context) (*models.SlotStats, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to count slots: %w", err)
	}
	active, err := r.coll.CountDocuments(ctx, bson.M{"isActive": true})
	if err != nil {
		return nil, fmt.Errorf("failed to count active slots: %w", err)
	}
	available, err := r.coll.CountDocuments(ctx, bson.M{
		"isActive": true,
		"$expr":    bson.M{"$lt": bson.A{"$currentBookings", "$maxBookings"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count available slots: %w", err)
	}
	full, err := r.coll.CountDocuments(ctx, bson.M{
		"isActive": true,
		"$expr":    bson.M{"$gte": bson.A{"$currentBookings", "$maxBookings"}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count full slots: %w", err)
	}

	return &models.SlotStats{
		TotalSlots:     total,
		ActiveSlots:    active,
		AvailableSlots: available,
		FullSlots:      full,
	}, nil
}
