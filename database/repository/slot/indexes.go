// File: database/repository/slot/indexes.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the necessary indexes on the slots collection.
func (r *mongoSlotRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary listing pattern: by day, then start time.
		{
			Keys:    bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().SetName("date_start_idx"),
		},
		// Availability queries filter on active slots per day.
		{
			Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("active_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "createdBy", Value: 1}},
			Options: options.Index().SetName("created_by_idx"),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create slot indexes: %w", err)
	}
	return nil
}
