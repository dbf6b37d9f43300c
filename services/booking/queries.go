// File: services/booking/queries.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"slotbook/models"
	"slotbook/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// withSlots attaches each booking's slot, fetching every distinct slot
// once. Bookings whose slot has been deleted keep a nil Slot.
func (s *DefaultBookingService) withSlots(ctx context.Context, bookings []models.Booking) ([]models.BookingWithSlot, error) {
	slots := make(map[string]*models.Slot)
	out := make([]models.BookingWithSlot, 0, len(bookings))
	for _, b := range bookings {
		slot, seen := slots[b.SlotID]
		if !seen {
			loaded, err := s.SlotRepo.GetByID(ctx, b.SlotID)
			if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
				return nil, fmt.Errorf("failed to load slot for booking: %w", err)
			}
			slot = loaded
			slots[b.SlotID] = slot
		}
		out = append(out, models.BookingWithSlot{Booking: b, Slot: slot})
	}
	return out, nil
}

// GetBooking returns one booking with its slot attached.
func (s *DefaultBookingService) GetBooking(ctx context.Context, bookingID string) (*models.BookingWithSlot, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError{Msg: "Booking not found"}
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	joined, err := s.withSlots(ctx, []models.Booking{*b})
	if err != nil {
		return nil, err
	}
	return &joined[0], nil
}

func (s *DefaultBookingService) GetAllBookings(ctx context.Context) ([]models.BookingWithSlot, error) {
	bookings, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return s.withSlots(ctx, bookings)
}

func (s *DefaultBookingService) GetBookingsByStatus(ctx context.Context, status string) ([]models.BookingWithSlot, error) {
	switch status {
	case models.BookingStatusConfirmed, models.BookingStatusCancelled, models.BookingStatusCompleted:
	default:
		return nil, utils.ValidationError{Msg: "Invalid booking status"}
	}
	bookings, err := s.Repo.FindByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings by status: %w", err)
	}
	return s.withSlots(ctx, bookings)
}

func (s *DefaultBookingService) GetBookingsBySlot(ctx context.Context, slotID string) ([]models.Booking, error) {
	bookings, err := s.Repo.FindBySlot(ctx, slotID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for slot: %w", err)
	}
	return bookings, nil
}

// partition splits joined bookings into upcoming and past views. Upcoming
// is sorted soonest first, past is most recent first.
func partition(joined []models.BookingWithSlot, now time.Time) (upcoming, past []models.BookingWithSlot) {
	for _, bw := range joined {
		switch {
		case bw.IsUpcoming(now):
			upcoming = append(upcoming, bw)
		case bw.IsPast(now):
			past = append(past, bw)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].Slot.StartInstant().Before(upcoming[j].Slot.StartInstant())
	})
	sort.Slice(past, func(i, j int) bool {
		ti, tj := past[i].CreatedAt, past[j].CreatedAt
		if past[i].Slot != nil && past[j].Slot != nil {
			ti, tj = past[i].Slot.StartInstant(), past[j].Slot.StartInstant()
		}
		return ti.After(tj)
	})
	return upcoming, past
}

func (s *DefaultBookingService) userPartition(ctx context.Context, userID string) (upcoming, past []models.BookingWithSlot, err error) {
	bookings, err := s.Repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list user bookings: %w", err)
	}
	joined, err := s.withSlots(ctx, bookings)
	if err != nil {
		return nil, nil, err
	}
	upcoming, past = partition(joined, s.Clock.Now())
	return upcoming, past, nil
}

func (s *DefaultBookingService) GetUpcomingBookingsByUser(ctx context.Context, userID string) ([]models.BookingWithSlot, error) {
	upcoming, _, err := s.userPartition(ctx, userID)
	return upcoming, err
}

func (s *DefaultBookingService) GetPastBookingsByUser(ctx context.Context, userID string) ([]models.BookingWithSlot, error) {
	_, past, err := s.userPartition(ctx, userID)
	return past, err
}

func (s *DefaultBookingService) allPartition(ctx context.Context) (upcoming, past []models.BookingWithSlot, err error) {
	joined, err := s.GetAllBookings(ctx)
	if err != nil {
		return nil, nil, err
	}
	upcoming, past = partition(joined, s.Clock.Now())
	return upcoming, past, nil
}

func (s *DefaultBookingService) GetUpcomingBookings(ctx context.Context) ([]models.BookingWithSlot, error) {
	upcoming, _, err := s.allPartition(ctx)
	return upcoming, err
}

func (s *DefaultBookingService) GetPastBookings(ctx context.Context) ([]models.BookingWithSlot, error) {
	_, past, err := s.allPartition(ctx)
	return past, err
}

func (s *DefaultBookingService) GetBookingStats(ctx context.Context) (*models.BookingStats, error) {
	stats, err := s.Repo.Stats(ctx, s.Clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to compute booking stats: %w", err)
	}
	return stats, nil
}

func (s *DefaultBookingService) invalidateAvailability(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, utils.AvailableSlotsCacheKey).Err(); err != nil {
		utils.GetLogger().Warn("Failed to invalidate availability cache", zap.Error(err))
	}
}
