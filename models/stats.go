package models

// SlotStats are read-only aggregate counts over slots.
type SlotStats struct {
	TotalSlots     int64 `json:"totalSlots"`
	ActiveSlots    int64 `json:"activeSlots"`
	AvailableSlots int64 `json:"availableSlots"`
	FullSlots      int64 `json:"fullSlots"`
}

// BookingStats are read-only aggregate counts over bookings.
type BookingStats struct {
	TotalBookings     int64 `json:"totalBookings"`
	ConfirmedBookings int64 `json:"confirmedBookings"`
	CancelledBookings int64 `json:"cancelledBookings"`
	CompletedBookings int64 `json:"completedBookings"`
	TodayBookings     int64 `json:"todayBookings"`
}
