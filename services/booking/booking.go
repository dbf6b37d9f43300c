// File: services/booking/booking.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "slotbook/database/repository/booking"
	"slotbook/models"
	"slotbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func validateBookingInput(input CreateBookingInput) error {
	reason := strings.TrimSpace(input.ReasonForVisit)
	if reason == "" {
		return utils.ValidationError{Msg: "Reason for visit is required"}
	}
	if len(reason) > models.MaxBookingTextLen {
		return utils.ValidationError{Msg: fmt.Sprintf("Reason for visit must be at most %d characters", models.MaxBookingTextLen)}
	}
	if !models.ValidContactNumber(input.ContactNumber) {
		return utils.ValidationError{Msg: "Please provide a valid contact number"}
	}
	if len(strings.TrimSpace(input.AdditionalNotes)) > models.MaxBookingTextLen {
		return utils.ValidationError{Msg: fmt.Sprintf("Additional notes must be at most %d characters", models.MaxBookingTextLen)}
	}
	return nil
}

// CreateBooking claims the slot for the user. The pre-checks here exist to
// give callers precise error messages; the claim itself is decided by the
// conditional slot update inside CreateWithSlotClaim, so two racing users
// cannot both succeed regardless of what the pre-checks saw.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, userID string, input CreateBookingInput) (*models.Booking, error) {
	if err := validateBookingInput(input); err != nil {
		return nil, err
	}

	now := s.Clock.Now()

	slot, err := s.SlotRepo.GetByID(ctx, input.SlotID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError{Msg: "Slot not found"}
		}
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}
	if !slot.CanAcceptBooking(now) {
		return nil, utils.ConflictError{Msg: "Slot is full or inactive"}
	}

	exists, err := s.Repo.ExistsConfirmed(ctx, input.SlotID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing booking: %w", err)
	}
	if exists {
		return nil, utils.ConflictError{Msg: "You already have a booking for this slot"}
	}

	booking := &models.Booking{
		ID:              uuid.New().String(),
		SlotID:          input.SlotID,
		UserID:          userID,
		ReasonForVisit:  strings.TrimSpace(input.ReasonForVisit),
		ContactNumber:   models.NormalizeContactNumber(input.ContactNumber),
		AdditionalNotes: strings.TrimSpace(input.AdditionalNotes),
		Status:          models.BookingStatusConfirmed,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Repo.CreateWithSlotClaim(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotUnavailable) {
			return nil, utils.ConflictError{Msg: "Slot is full or inactive"}
		}
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.invalidateAvailability(ctx)
	utils.GetLogger().Info("Booking created",
		zap.String("bookingID", booking.ID),
		zap.String("slotID", booking.SlotID),
		zap.String("userID", userID))
	return booking, nil
}

// CancelBooking moves a confirmed booking to cancelled and releases its
// slot unit. Works for the booking owner and for admins; handlers enforce
// ownership before calling in.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID, cancelledBy string) (*models.Booking, error) {
	existing, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError{Msg: "Booking not found"}
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if existing.Status != models.BookingStatusConfirmed {
		return nil, utils.InvalidStateError{Msg: "Only confirmed bookings can be cancelled"}
	}

	cancelled, err := s.Repo.CancelWithSlotRelease(ctx, bookingID, cancelledBy, s.Clock.Now())
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrNotConfirmed):
			return nil, utils.InvalidStateError{Msg: "Only confirmed bookings can be cancelled"}
		case errors.Is(err, bookingRepo.ErrNoBookingsToDecrement):
			return nil, utils.InvalidStateError{Msg: "No bookings to decrement"}
		}
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.invalidateAvailability(ctx)
	utils.GetLogger().Info("Booking cancelled",
		zap.String("bookingID", bookingID),
		zap.String("cancelledBy", cancelledBy))
	return cancelled, nil
}

// CompleteBooking marks a confirmed booking completed. The slot counter is
// left alone so a completed booking keeps holding its unit.
func (s *DefaultBookingService) CompleteBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	existing, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError{Msg: "Booking not found"}
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if existing.Status != models.BookingStatusConfirmed {
		return nil, utils.InvalidStateError{Msg: "Only confirmed bookings can be completed"}
	}

	completed, err := s.Repo.Complete(ctx, bookingID, s.Clock.Now())
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotConfirmed) {
			return nil, utils.InvalidStateError{Msg: "Only confirmed bookings can be completed"}
		}
		return nil, fmt.Errorf("failed to complete booking: %w", err)
	}
	return completed, nil
}

// DeleteBooking removes the record entirely, releasing the slot unit when
// the booking still held one.
func (s *DefaultBookingService) DeleteBooking(ctx context.Context, bookingID string) error {
	existing, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NotFoundError{Msg: "Booking not found"}
		}
		return fmt.Errorf("failed to load booking: %w", err)
	}
	if err := s.Repo.DeleteWithSlotRelease(ctx, existing); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	s.invalidateAvailability(ctx)
	return nil
}

// UpdateBooking patches the detail fields on an existing booking.
func (s *DefaultBookingService) UpdateBooking(ctx context.Context, bookingID string, input UpdateBookingInput) (*models.Booking, error) {
	existing, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError{Msg: "Booking not found"}
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}

	if input.ReasonForVisit != nil {
		reason := strings.TrimSpace(*input.ReasonForVisit)
		if reason == "" {
			return nil, utils.ValidationError{Msg: "Reason for visit is required"}
		}
		if len(reason) > models.MaxBookingTextLen {
			return nil, utils.ValidationError{Msg: fmt.Sprintf("Reason for visit must be at most %d characters", models.MaxBookingTextLen)}
		}
		existing.ReasonForVisit = reason
	}
	if input.ContactNumber != nil {
		if !models.ValidContactNumber(*input.ContactNumber) {
			return nil, utils.ValidationError{Msg: "Please provide a valid contact number"}
		}
		existing.ContactNumber = models.NormalizeContactNumber(*input.ContactNumber)
	}
	if input.AdditionalNotes != nil {
		notes := strings.TrimSpace(*input.AdditionalNotes)
		if len(notes) > models.MaxBookingTextLen {
			return nil, utils.ValidationError{Msg: fmt.Sprintf("Additional notes must be at most %d characters", models.MaxBookingTextLen)}
		}
		existing.AdditionalNotes = notes
	}

	existing.UpdatedAt = s.Clock.Now()
	if err := s.Repo.Update(ctx, existing); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError{Msg: "Booking not found"}
		}
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	return existing, nil
}

// CanUserBookSlot reports whether a booking attempt by the user would be
// accepted right now, with a human reason when it would not. Advisory
// only; CreateBooking re-checks everything.
func (s *DefaultBookingService) CanUserBookSlot(ctx context.Context, userID, slotID string) (*BookingCheck, error) {
	slot, err := s.SlotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFoundError{Msg: "Slot not found"}
		}
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}

	now := s.Clock.Now()
	switch {
	case !slot.IsActive:
		return &BookingCheck{Reason: "Slot is not active"}, nil
	case slot.IsPast(now) || slot.WithinBookingBuffer(now):
		return &BookingCheck{Reason: "Slot is in the past or too soon to book"}, nil
	case !slot.HasCapacity():
		return &BookingCheck{Reason: "Slot is already booked"}, nil
	}

	exists, err := s.Repo.ExistsConfirmed(ctx, slotID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing booking: %w", err)
	}
	if exists {
		return &BookingCheck{Reason: "You already have a booking for this slot"}, nil
	}
	return &BookingCheck{CanBook: true}, nil
}
