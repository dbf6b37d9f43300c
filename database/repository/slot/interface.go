// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"slotbook/config"
	"slotbook/database"
	"slotbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SlotRepository persists slots. The currentBookings counter is never
// mutated here: only the reservation coordinator (booking repository)
// moves it, apart from SetBookingCount which backs the drift-repair
// operation.
type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	Update(ctx context.Context, slot *models.Slot) error
	DeleteByID(ctx context.Context, id string) error

	FindAll(ctx context.Context) ([]models.Slot, error)
	FindAvailable(ctx context.Context, now time.Time) ([]models.Slot, error)
	FindByCreator(ctx context.Context, userID string) ([]models.Slot, error)
	FindByDateRange(ctx context.Context, start, end time.Time) ([]models.Slot, error)

	SetBookingCount(ctx context.Context, id string, count int) error
	Stats(ctx context.Context) (*models.SlotStats, error)
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo() SlotRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &mongoSlotRepo{coll: db.Collection("slots")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create slot indexes: %v\n", err)
	}
	return repo
}
