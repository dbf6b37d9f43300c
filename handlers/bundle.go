// File: handlers/bundle.go
package handlers

import (
	userRepoPkg "slotbook/database/repository/user"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct so route
// registration takes a single argument.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	// Account endpoints
	RegisterUserHandler gin.HandlerFunc
	LoginUserHandler    gin.HandlerFunc
	MeHandler           gin.HandlerFunc
	LogoutUserHandler   gin.HandlerFunc

	// Slot endpoints
	CreateSlotHandler          gin.HandlerFunc
	GetSlotHandler             gin.HandlerFunc
	UpdateSlotHandler          gin.HandlerFunc
	DeleteSlotHandler          gin.HandlerFunc
	GetAllSlotsHandler         gin.HandlerFunc
	GetAvailableSlotsHandler   gin.HandlerFunc
	GetMySlotsHandler          gin.HandlerFunc
	GetSlotsByDateRangeHandler gin.HandlerFunc
	GetSlotStatsHandler        gin.HandlerFunc
	RefreshCountsHandler       gin.HandlerFunc

	// Booking endpoints
	CreateBookingHandler         gin.HandlerFunc
	GetBookingHandler            gin.HandlerFunc
	CancelBookingHandler         gin.HandlerFunc
	CompleteBookingHandler       gin.HandlerFunc
	DeleteBookingHandler         gin.HandlerFunc
	UpdateBookingHandler         gin.HandlerFunc
	GetAllBookingsHandler        gin.HandlerFunc
	GetBookingsBySlotHandler     gin.HandlerFunc
	GetMyUpcomingBookingsHandler gin.HandlerFunc
	GetMyPastBookingsHandler     gin.HandlerFunc
	GetUpcomingBookingsHandler   gin.HandlerFunc
	GetPastBookingsHandler       gin.HandlerFunc
	GetBookingStatsHandler       gin.HandlerFunc
	CanBookHandler               gin.HandlerFunc
}
