package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeContactNumber(t *testing.T) {
	assert.Equal(t, "+254712345678", NormalizeContactNumber("+254 712-345-678"))
	assert.Equal(t, "0712345678", NormalizeContactNumber("(071) 234 5678"))
}

func TestValidContactNumber(t *testing.T) {
	valid := []string{"+254712345678", "+1 (555) 012-3456", "712 345 678"}
	for _, n := range valid {
		assert.True(t, ValidContactNumber(n), n)
	}
	invalid := []string{"", "abc", "0712345678", "+123456789012345678"}
	for _, n := range invalid {
		assert.False(t, ValidContactNumber(n), n)
	}
}

func TestBookingWithSlotPartitioning(t *testing.T) {
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)
	future := &Slot{Date: day(2026, time.March, 11), StartTime: "10:00"}
	elapsed := &Slot{Date: day(2026, time.March, 9), StartTime: "10:00"}

	confirmedFuture := BookingWithSlot{Booking: Booking{Status: BookingStatusConfirmed}, Slot: future}
	assert.True(t, confirmedFuture.IsUpcoming(now))
	assert.False(t, confirmedFuture.IsPast(now))

	confirmedElapsed := BookingWithSlot{Booking: Booking{Status: BookingStatusConfirmed}, Slot: elapsed}
	assert.False(t, confirmedElapsed.IsUpcoming(now))
	assert.True(t, confirmedElapsed.IsPast(now))

	// Cancelled and completed land in past regardless of the slot date.
	cancelled := BookingWithSlot{Booking: Booking{Status: BookingStatusCancelled}, Slot: future}
	assert.False(t, cancelled.IsUpcoming(now))
	assert.True(t, cancelled.IsPast(now))

	completed := BookingWithSlot{Booking: Booking{Status: BookingStatusCompleted}, Slot: future}
	assert.True(t, completed.IsPast(now))

	// A booking whose slot was deleted drops out of both listings.
	orphan := BookingWithSlot{Booking: Booking{Status: BookingStatusConfirmed}}
	assert.False(t, orphan.IsUpcoming(now))
	assert.False(t, orphan.IsPast(now))
}
