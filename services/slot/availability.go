// File: services/slot/availability.go
package slot

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"slotbook/config"
	"slotbook/models"
	"slotbook/utils"
)

// GetAvailableSlots lists every slot that can currently accept a booking.
// The listing is cached briefly; any slot or booking mutation drops the
// cache so stale availability is never served for long.
func (s *DefaultSlotService) GetAvailableSlots(ctx context.Context) ([]models.Slot, error) {
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, utils.AvailableSlotsCacheKey).Result(); err == nil {
			var slots []models.Slot
			if err := json.Unmarshal([]byte(data), &slots); err == nil {
				return slots, nil
			}
		}
	}

	slots, err := s.Repo.FindAvailable(ctx, s.Clock.Now())
	if err != nil {
		return nil, err
	}

	if s.Cache != nil {
		if data, err := json.Marshal(slots); err == nil {
			ttl := time.Duration(config.AppConfig.AvailabilityCacheTTL) * time.Second
			if setErr := s.Cache.Set(ctx, utils.AvailableSlotsCacheKey, data, ttl).Err(); setErr != nil {
				utils.GetLogger().Warn("failed to cache available slots", zap.Error(setErr))
			}
		}
	}
	return slots, nil
}

// GetAvailableSlotsWithUserStatus decorates the available listing with the
// requesting user's own confirmed-booking flag per slot.
func (s *DefaultSlotService) GetAvailableSlotsWithUserStatus(ctx context.Context, userID string) ([]models.SlotWithUserStatus, error) {
	slots, err := s.GetAvailableSlots(ctx)
	if err != nil {
		return nil, err
	}

	decorated := make([]models.SlotWithUserStatus, 0, len(slots))
	for _, sl := range slots {
		booked, err := s.BookingRepo.ExistsConfirmed(ctx, sl.ID, userID)
		if err != nil {
			return nil, err
		}
		decorated = append(decorated, models.SlotWithUserStatus{Slot: sl, IsBookedByUser: booked})
	}
	return decorated, nil
}

func (s *DefaultSlotService) invalidateAvailability(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, utils.AvailableSlotsCacheKey).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate availability cache", zap.Error(err))
	}
}
