// File: services/booking/interface.go
package booking

import (
	"context"

	bookingRepo "slotbook/database/repository/booking"
	slotRepo "slotbook/database/repository/slot"
	"slotbook/models"
	"slotbook/utils"

	"github.com/go-redis/redis/v8"
)

// CreateBookingInput carries the user-supplied booking details.
type CreateBookingInput struct {
	SlotID          string `json:"slotId"`
	ReasonForVisit  string `json:"reasonForVisit"`
	ContactNumber   string `json:"contactNumber"`
	AdditionalNotes string `json:"additionalNotes"`
}

// UpdateBookingInput carries the admin-patchable detail fields; nil means
// unchanged. Status never moves through here.
type UpdateBookingInput struct {
	ReasonForVisit  *string `json:"reasonForVisit"`
	ContactNumber   *string `json:"contactNumber"`
	AdditionalNotes *string `json:"additionalNotes"`
}

// BookingCheck is the answer to "can this user book that slot right now".
type BookingCheck struct {
	CanBook bool   `json:"canBook"`
	Reason  string `json:"reason,omitempty"`
}

// BookingService owns the booking lifecycle and every operation that
// couples a booking write to the slot counter.
type BookingService interface {
	CreateBooking(ctx context.Context, userID string, input CreateBookingInput) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID, cancelledBy string) (*models.Booking, error)
	CompleteBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	DeleteBooking(ctx context.Context, bookingID string) error
	UpdateBooking(ctx context.Context, bookingID string, input UpdateBookingInput) (*models.Booking, error)

	GetBooking(ctx context.Context, bookingID string) (*models.BookingWithSlot, error)
	GetAllBookings(ctx context.Context) ([]models.BookingWithSlot, error)
	GetBookingsByStatus(ctx context.Context, status string) ([]models.BookingWithSlot, error)
	GetBookingsBySlot(ctx context.Context, slotID string) ([]models.Booking, error)

	GetUpcomingBookingsByUser(ctx context.Context, userID string) ([]models.BookingWithSlot, error)
	GetPastBookingsByUser(ctx context.Context, userID string) ([]models.BookingWithSlot, error)
	GetUpcomingBookings(ctx context.Context) ([]models.BookingWithSlot, error)
	GetPastBookings(ctx context.Context) ([]models.BookingWithSlot, error)

	GetBookingStats(ctx context.Context) (*models.BookingStats, error)
	CanUserBookSlot(ctx context.Context, userID, slotID string) (*BookingCheck, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo     bookingRepo.BookingRepository
	SlotRepo slotRepo.SlotRepository
	Cache    *redis.Client
	Clock    utils.Clock
}
