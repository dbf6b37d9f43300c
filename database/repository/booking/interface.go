// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotbook/config"
	"slotbook/database"
	"slotbook/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors surfaced by the coordinator operations. Services
// translate them into the caller-facing error taxonomy.
var (
	// ErrSlotUnavailable means the conditional increment matched no
	// document: the slot is gone, inactive, or already at capacity.
	// Concurrent losers surface exactly this error.
	ErrSlotUnavailable = errors.New("slot is full or inactive")

	// ErrNoBookingsToDecrement means the guarded decrement found the
	// counter already at zero, signaling count/booking drift.
	ErrNoBookingsToDecrement = errors.New("no bookings to decrement")

	// ErrNotConfirmed means a status transition found the booking no
	// longer confirmed.
	ErrNotConfirmed = errors.New("booking is not confirmed")
)

// BookingRepository persists bookings and owns the reservation
// coordinator: every write that pairs a booking mutation with a slot
// counter mutation runs here as one transactional unit.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	Update(ctx context.Context, booking *models.Booking) error

	FindAll(ctx context.Context) ([]models.Booking, error)
	FindByUser(ctx context.Context, userID string) ([]models.Booking, error)
	FindBySlot(ctx context.Context, slotID string) ([]models.Booking, error)
	FindByStatus(ctx context.Context, status string) ([]models.Booking, error)
	FindConfirmed(ctx context.Context) ([]models.Booking, error)

	ExistsConfirmed(ctx context.Context, slotID, userID string) (bool, error)
	CountBySlot(ctx context.Context, slotID string) (int64, error)
	CountConfirmedBySlot(ctx context.Context, slotID string) (int64, error)
	Stats(ctx context.Context, now time.Time) (*models.BookingStats, error)

	// Coordinator operations.
	CreateWithSlotClaim(ctx context.Context, booking *models.Booking) error
	CancelWithSlotRelease(ctx context.Context, bookingID, cancelledBy string, now time.Time) (*models.Booking, error)
	Complete(ctx context.Context, bookingID string, now time.Time) (*models.Booking, error)
	DeleteWithSlotRelease(ctx context.Context, booking *models.Booking) error
}

// MongoBookingRepo implements BookingRepository. It holds both the
// bookings and slots collections so the paired writes can share one
// session transaction.
type MongoBookingRepo struct {
	bookingColl *mongo.Collection
	slotColl    *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoBookingRepo{
		bookingColl: db.Collection("bookings"),
		slotColl:    db.Collection("slots"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create booking indexes: %v\n", err)
	}
	return repo
}
