// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slotbook/models"
)

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	err := r.bookingColl.FindOne(ctx, bson.M{"id": id}).Decode(&booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Update rewrites the mutable detail fields. Status transitions do not go
// through here: cancel/complete/delete run as coordinator operations.
func (r *MongoBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"reasonForVisit":  booking.ReasonForVisit,
			"contactNumber":   booking.ContactNumber,
			"additionalNotes": booking.AdditionalNotes,
			"updatedAt":       booking.UpdatedAt,
		},
	}
	res, err := r.bookingColl.UpdateOne(ctx, bson.M{"id": booking.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
