package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "9:30", "09:30", "14:00", "23:59"}
	for _, s := range valid {
		assert.True(t, ValidTimeOfDay(s), s)
	}
	invalid := []string{"", "24:00", "12:60", "9:5", "12.30", "12:30:00", "noon"}
	for _, s := range invalid {
		assert.False(t, ValidTimeOfDay(s), s)
	}
}

func TestSlotDuration(t *testing.T) {
	d, err := SlotDuration("14:00", "14:30")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, d)

	d, err = SlotDuration("23:30", "23:00")
	require.NoError(t, err)
	assert.Equal(t, -30*time.Minute, d)

	_, err = SlotDuration("14:00", "bad")
	assert.Error(t, err)
}

func TestStartInstant(t *testing.T) {
	s := Slot{Date: day(2026, time.March, 10), StartTime: "09:30"}
	assert.Equal(t, time.Date(2026, time.March, 10, 9, 30, 0, 0, time.Local), s.StartInstant())
}

func TestWithinBookingBufferBoundary(t *testing.T) {
	s := Slot{Date: day(2026, time.March, 10), StartTime: "10:00", EndTime: "10:30"}

	// Exactly 15 minutes of lead time is not enough.
	now := time.Date(2026, time.March, 10, 9, 45, 0, 0, time.Local)
	assert.True(t, s.WithinBookingBuffer(now))

	// One second more lead time and the slot is bookable.
	assert.False(t, s.WithinBookingBuffer(now.Add(-time.Second)))
}

func TestCanAcceptBooking(t *testing.T) {
	base := Slot{
		Date:        day(2026, time.March, 10),
		StartTime:   "10:00",
		EndTime:     "10:30",
		MaxBookings: 1,
		IsActive:    true,
	}
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)

	tests := []struct {
		name   string
		mutate func(*Slot)
		now    time.Time
		want   bool
	}{
		{"open slot", func(*Slot) {}, now, true},
		{"inactive", func(s *Slot) { s.IsActive = false }, now, false},
		{"full", func(s *Slot) { s.CurrentBookings = 1 }, now, false},
		{"past start", func(*Slot) {}, time.Date(2026, time.March, 10, 10, 0, 0, 0, time.Local), false},
		{"inside buffer", func(*Slot) {}, time.Date(2026, time.March, 10, 9, 50, 0, 0, time.Local), false},
		{"future day", func(s *Slot) { s.Date = day(2026, time.March, 11) }, now, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			tt.mutate(&s)
			assert.Equal(t, tt.want, s.CanAcceptBooking(tt.now))
		})
	}
}

func TestDayOnly(t *testing.T) {
	ts := time.Date(2026, time.March, 10, 17, 42, 9, 123, time.Local)
	assert.Equal(t, day(2026, time.March, 10), DayOnly(ts))
}
