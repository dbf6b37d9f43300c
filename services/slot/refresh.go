// File: services/slot/refresh.go
package slot

import (
	"context"

	"go.uber.org/zap"

	"slotbook/models"
	"slotbook/utils"
)

// RefreshBookingCount recomputes a slot's counter from its confirmed
// bookings and persists the corrected value. This is the administrative
// drift-repair operation; the booking hot path never calls it.
func (s *DefaultSlotService) RefreshBookingCount(ctx context.Context, slotID string) (*models.Slot, error) {
	slot, err := s.GetSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	confirmed, err := s.BookingRepo.CountConfirmedBySlot(ctx, slotID)
	if err != nil {
		return nil, err
	}

	if int(confirmed) != slot.CurrentBookings {
		utils.GetLogger().Warn("booking count drift detected",
			zap.String("slotId", slotID),
			zap.Int("stored", slot.CurrentBookings),
			zap.Int64("actual", confirmed))
	}

	if err := s.Repo.SetBookingCount(ctx, slotID, int(confirmed)); err != nil {
		return nil, err
	}
	slot.CurrentBookings = int(confirmed)
	s.invalidateAvailability(ctx)
	return slot, nil
}

// RefreshAllBookingCounts runs the drift repair over every slot and
// returns how many were inspected.
func (s *DefaultSlotService) RefreshAllBookingCounts(ctx context.Context) (int, error) {
	slots, err := s.Repo.FindAll(ctx)
	if err != nil {
		return 0, err
	}

	for _, sl := range slots {
		if _, err := s.RefreshBookingCount(ctx, sl.ID); err != nil {
			return 0, err
		}
	}
	return len(slots), nil
}
