// File: services/slot/interface.go
package slot

import (
	"context"
	"time"

	bookingRepo "slotbook/database/repository/booking"
	slotRepo "slotbook/database/repository/slot"
	"slotbook/models"
	"slotbook/utils"

	"github.com/go-redis/redis/v8"
)

// UpdateSlotInput carries the patchable slot fields; nil means unchanged.
type UpdateSlotInput struct {
	Date        *time.Time `json:"date"`
	StartTime   *string    `json:"startTime"`
	EndTime     *string    `json:"endTime"`
	MaxBookings *int       `json:"maxBookings"`
	Description *string    `json:"description"`
	IsActive    *bool      `json:"isActive"`
}

// SlotService manages the admin-defined booking windows.
type SlotService interface {
	CreateSlot(ctx context.Context, date time.Time, startTime, endTime, description, createdBy string) (*models.Slot, error)
	GetSlot(ctx context.Context, id string) (*models.Slot, error)
	UpdateSlot(ctx context.Context, id string, input UpdateSlotInput) (*models.Slot, error)
	DeleteSlot(ctx context.Context, id string) error

	GetAllSlots(ctx context.Context) ([]models.Slot, error)
	GetAvailableSlots(ctx context.Context) ([]models.Slot, error)
	GetAvailableSlotsWithUserStatus(ctx context.Context, userID string) ([]models.SlotWithUserStatus, error)
	GetSlotsByCreator(ctx context.Context, userID string) ([]models.Slot, error)
	GetSlotsByDateRange(ctx context.Context, start, end time.Time) ([]models.Slot, error)
	GetSlotStats(ctx context.Context) (*models.SlotStats, error)

	RefreshBookingCount(ctx context.Context, slotID string) (*models.Slot, error)
	RefreshAllBookingCounts(ctx context.Context) (int, error)
}

// DefaultSlotService implements SlotService.
type DefaultSlotService struct {
	Repo        slotRepo.SlotRepository
	BookingRepo bookingRepo.BookingRepository
	Cache       *redis.Client
	Clock       utils.Clock
}
