// File: services/slot/slot.go
package slot

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"slotbook/models"
	"slotbook/utils"
)

// validateSlotTimes checks the HH:MM shapes and the fixed 30-minute span.
func validateSlotTimes(startTime, endTime string) error {
	duration, err := models.SlotDuration(startTime, endTime)
	if err != nil {
		return utils.ValidationError{Msg: err.Error()}
	}
	if duration <= 0 {
		return utils.ValidationError{Msg: "End time must be after start time"}
	}
	if duration != models.SlotDurationMinutes*time.Minute {
		return utils.ValidationError{Msg: fmt.Sprintf("Slot duration must be exactly %d minutes", models.SlotDurationMinutes)}
	}
	return nil
}

// validateBookableFuture rejects slots starting at or before the booking
// buffer cutoff; such a slot would be born unbookable.
func validateBookableFuture(date time.Time, startTime string, now time.Time) error {
	start := models.CombineDayTime(models.DayOnly(date), startTime)
	cutoff := now.Add(models.BookingBufferMinutes * time.Minute)
	if !start.After(cutoff) {
		return utils.ValidationError{Msg: fmt.Sprintf("Slot must be at least %d minutes in the future", models.BookingBufferMinutes)}
	}
	return nil
}

func (s *DefaultSlotService) CreateSlot(ctx context.Context, date time.Time, startTime, endTime, description, createdBy string) (*models.Slot, error) {
	if err := validateSlotTimes(startTime, endTime); err != nil {
		return nil, err
	}
	now := s.Clock.Now()
	if err := validateBookableFuture(date, startTime, now); err != nil {
		return nil, err
	}

	slot := &models.Slot{
		Date:            models.DayOnly(date),
		StartTime:       startTime,
		EndTime:         endTime,
		MaxBookings:     models.MaxBookingsPerSlot,
		CurrentBookings: 0,
		Description:     description,
		IsActive:        true,
		CreatedBy:       createdBy,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.Repo.Create(ctx, slot); err != nil {
		return nil, err
	}
	s.invalidateAvailability(ctx)
	return slot, nil
}

func (s *DefaultSlotService) GetSlot(ctx context.Context, id string) (*models.Slot, error) {
	slot, err := s.Repo.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NotFoundError{Msg: "Slot not found"}
	}
	if err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *DefaultSlotService) UpdateSlot(ctx context.Context, id string, input UpdateSlotInput) (*models.Slot, error) {
	slot, err := s.GetSlot(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.MaxBookings != nil && *input.MaxBookings != models.MaxBookingsPerSlot {
		return nil, utils.ValidationError{Msg: "Max bookings must be 1 for single-member slots"}
	}

	if input.Date != nil {
		slot.Date = models.DayOnly(*input.Date)
	}
	if input.StartTime != nil {
		slot.StartTime = *input.StartTime
	}
	if input.EndTime != nil {
		slot.EndTime = *input.EndTime
	}
	if input.Description != nil {
		slot.Description = *input.Description
	}
	if input.IsActive != nil {
		slot.IsActive = *input.IsActive
	}

	if input.StartTime != nil || input.EndTime != nil {
		if err := validateSlotTimes(slot.StartTime, slot.EndTime); err != nil {
			return nil, err
		}
	}
	if input.Date != nil || input.StartTime != nil {
		if err := validateBookableFuture(slot.Date, slot.StartTime, s.Clock.Now()); err != nil {
			return nil, err
		}
	}

	slot.UpdatedAt = s.Clock.Now()
	if err := s.Repo.Update(ctx, slot); err != nil {
		return nil, err
	}
	s.invalidateAvailability(ctx)
	return slot, nil
}

// DeleteSlot refuses while any booking references the slot, regardless of
// the booking's status.
func (s *DefaultSlotService) DeleteSlot(ctx context.Context, id string) error {
	if _, err := s.GetSlot(ctx, id); err != nil {
		return err
	}

	count, err := s.BookingRepo.CountBySlot(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return utils.ConflictError{Msg: "Cannot delete slot with existing bookings"}
	}

	if err := s.Repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.invalidateAvailability(ctx)
	return nil
}

func (s *DefaultSlotService) GetAllSlots(ctx context.Context) ([]models.Slot, error) {
	return s.Repo.FindAll(ctx)
}

func (s *DefaultSlotService) GetSlotsByCreator(ctx context.Context, userID string) ([]models.Slot, error) {
	return s.Repo.FindByCreator(ctx, userID)
}

func (s *DefaultSlotService) GetSlotsByDateRange(ctx context.Context, start, end time.Time) ([]models.Slot, error) {
	return s.Repo.FindByDateRange(ctx, start, end)
}

func (s *DefaultSlotService) GetSlotStats(ctx context.Context) (*models.SlotStats, error) {
	return s.Repo.Stats(ctx)
}
