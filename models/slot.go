package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// SlotDurationMinutes is the fixed length of every bookable slot.
	SlotDurationMinutes = 30
	// BookingBufferMinutes is the minimum lead time before a slot's start
	// required to still book it.
	BookingBufferMinutes = 15
	// MaxBookingsPerSlot keeps slots single-member.
	MaxBookingsPerSlot = 1
)

var timeOfDayRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// Slot represents an admin-defined 30-minute bookable time window.
type Slot struct {
	ID              string    `bson:"id" json:"id"`
	Date            time.Time `bson:"date" json:"date"`           // day only, time-of-day stripped
	StartTime       string    `bson:"startTime" json:"startTime"` // "HH:MM", 24h
	EndTime         string    `bson:"endTime" json:"endTime"`
	MaxBookings     int       `bson:"maxBookings" json:"maxBookings"`
	CurrentBookings int       `bson:"currentBookings" json:"currentBookings"`
	Description     string    `bson:"description,omitempty" json:"description,omitempty"`
	IsActive        bool      `bson:"isActive" json:"isActive"`
	CreatedBy       string    `bson:"createdBy" json:"createdBy"`
	CreatedAt       time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SlotWithUserStatus decorates a slot with the requesting user's own
// booking state, for the available-slots listing.
type SlotWithUserStatus struct {
	Slot           `bson:",inline"`
	IsBookedByUser bool `json:"isBookedByUser"`
}

// ValidTimeOfDay reports whether s is a 24h "HH:MM" string.
func ValidTimeOfDay(s string) bool {
	return timeOfDayRe.MatchString(s)
}

// ParseTimeOfDay splits a "HH:MM" string into hour and minute.
func ParseTimeOfDay(s string) (hour, minute int, err error) {
	if !ValidTimeOfDay(s) {
		return 0, 0, fmt.Errorf("time %q is not in HH:MM format", s)
	}
	parts := strings.SplitN(s, ":", 2)
	hour, _ = strconv.Atoi(parts[0])
	minute, _ = strconv.Atoi(parts[1])
	return hour, minute, nil
}

// SlotDuration returns the span between two times of day on the same day.
func SlotDuration(startTime, endTime string) (time.Duration, error) {
	sh, sm, err := ParseTimeOfDay(startTime)
	if err != nil {
		return 0, err
	}
	eh, em, err := ParseTimeOfDay(endTime)
	if err != nil {
		return 0, err
	}
	return time.Duration((eh-sh)*60+(em-sm)) * time.Minute, nil
}

// DayOnly truncates t to midnight local time for date-only comparisons.
func DayOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CombineDayTime attaches a "HH:MM" time of day to a calendar day,
// producing an absolute instant in the day's location. The time string
// must already be validated.
func CombineDayTime(day time.Time, timeOfDay string) time.Time {
	hour, minute, _ := ParseTimeOfDay(timeOfDay)
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// StartInstant combines the slot's day with its start time into one
// absolute instant.
func (s *Slot) StartInstant() time.Time {
	return CombineDayTime(s.Date, s.StartTime)
}

// IsPast reports whether the slot's start has already elapsed.
func (s *Slot) IsPast(now time.Time) bool {
	return !s.StartInstant().After(now)
}

// WithinBookingBuffer reports whether the slot starts too soon to book:
// a slot starting exactly at the cutoff is already unbookable.
func (s *Slot) WithinBookingBuffer(now time.Time) bool {
	cutoff := now.Add(BookingBufferMinutes * time.Minute)
	return !s.StartInstant().After(cutoff)
}

// HasCapacity reports whether the slot's counter leaves room for another
// booking.
func (s *Slot) HasCapacity() bool {
	return s.CurrentBookings < s.MaxBookings
}

// CanAcceptBooking is the single availability predicate. Both booking
// creation and the listing endpoints go through it so the buffer math is
// never duplicated.
func (s *Slot) CanAcceptBooking(now time.Time) bool {
	if !s.IsActive || !s.HasCapacity() {
		return false
	}
	return !s.WithinBookingBuffer(now)
}
