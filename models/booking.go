package models

import (
	"regexp"
	"time"
)

// Booking status values. Transitions are monotonic: a confirmed booking
// may become cancelled or completed, nothing leaves those states.
const (
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// MaxBookingTextLen bounds reasonForVisit and additionalNotes.
const MaxBookingTextLen = 1000

var (
	contactNumberRe = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	contactStripRe  = regexp.MustCompile(`[\s\-()]`)
)

// Booking represents a user's reservation against one slot.
type Booking struct {
	ID              string     `bson:"id" json:"id"`
	SlotID          string     `bson:"slotId" json:"slotId"`
	UserID          string     `bson:"userId" json:"userId"`
	ReasonForVisit  string     `bson:"reasonForVisit" json:"reasonForVisit"`
	ContactNumber   string     `bson:"contactNumber" json:"contactNumber"`
	AdditionalNotes string     `bson:"additionalNotes,omitempty" json:"additionalNotes,omitempty"`
	Status          string     `bson:"status" json:"status"`
	CancelledAt     *time.Time `bson:"cancelledAt,omitempty" json:"cancelledAt,omitempty"`
	CancelledBy     string     `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	CompletedAt     *time.Time `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt       time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// BookingWithSlot is the listing view: a booking joined with its slot.
type BookingWithSlot struct {
	Booking `bson:",inline"`
	Slot    *Slot `bson:"slot,omitempty" json:"slot,omitempty"`
}

// NormalizeContactNumber strips spaces, dashes and parentheses.
func NormalizeContactNumber(s string) string {
	return contactStripRe.ReplaceAllString(s, "")
}

// ValidContactNumber reports whether the normalized number is phone-shaped.
func ValidContactNumber(s string) bool {
	return contactNumberRe.MatchString(NormalizeContactNumber(s))
}

// IsConfirmed reports whether the booking still holds a slot unit.
func (b *Booking) IsConfirmed() bool {
	return b.Status == BookingStatusConfirmed
}

// IsUpcoming reports whether the booking counts as upcoming: still
// confirmed and its slot start lies in the future.
func (b *BookingWithSlot) IsUpcoming(now time.Time) bool {
	if b.Slot == nil || !b.IsConfirmed() {
		return false
	}
	return !b.Slot.IsPast(now)
}

// IsPast reports whether the booking belongs in the past listing:
// completed, cancelled, or confirmed with an elapsed slot start.
func (b *BookingWithSlot) IsPast(now time.Time) bool {
	if b.Slot == nil {
		return false
	}
	if b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled {
		return true
	}
	return b.Slot.IsPast(now)
}
