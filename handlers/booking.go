// File: handlers/booking.go
package handlers

import (
	"net/http"

	"slotbook/middleware"
	"slotbook/models"
	bookingSvc "slotbook/services/booking"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking endpoints.
type BookingHandler struct {
	Service bookingSvc.BookingService
}

func isAdmin(c *gin.Context) bool {
	return c.GetString(middleware.ContextRoleKey) == models.RoleAdmin
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req bookingSvc.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	booking, err := h.Service.CreateBooking(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBookingHandler handles GET /api/bookings/:id. Users can only read
// their own bookings; admins can read any.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	booking, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !isAdmin(c) && booking.UserID != middleware.CurrentUserID(c) {
		utils.JSONError(c, http.StatusForbidden, "You can only view your own bookings", "")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelBookingHandler handles PUT /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	userID := middleware.CurrentUserID(c)
	booking, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if !isAdmin(c) && booking.UserID != userID {
		utils.JSONError(c, http.StatusForbidden, "You can only cancel your own bookings", "")
		return
	}
	cancelled, err := h.Service.CancelBooking(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}

// CompleteBookingHandler handles PUT /api/bookings/:id/complete for admins.
func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	completed, err := h.Service.CompleteBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, completed)
}

// DeleteBookingHandler handles DELETE /api/bookings/:id for admins.
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	if err := h.Service.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

// UpdateBookingHandler handles PUT /api/bookings/:id for admins.
func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	var req bookingSvc.UpdateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	booking, err := h.Service.UpdateBooking(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// GetAllBookingsHandler handles GET /api/bookings for admins, optionally
// filtered with ?status=.
func (h *BookingHandler) GetAllBookingsHandler(c *gin.Context) {
	var (
		bookings []models.BookingWithSlot
		err      error
	)
	if status := c.Query("status"); status != "" {
		bookings, err = h.Service.GetBookingsByStatus(c.Request.Context(), status)
	} else {
		bookings, err = h.Service.GetAllBookings(c.Request.Context())
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingsBySlotHandler handles GET /api/bookings/slot/:slotId for admins.
func (h *BookingHandler) GetBookingsBySlotHandler(c *gin.Context) {
	bookings, err := h.Service.GetBookingsBySlot(c.Request.Context(), c.Param("slotId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetMyUpcomingBookingsHandler handles GET /api/bookings/my-upcoming.
func (h *BookingHandler) GetMyUpcomingBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.GetUpcomingBookingsByUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetMyPastBookingsHandler handles GET /api/bookings/my-past.
func (h *BookingHandler) GetMyPastBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.GetPastBookingsByUser(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetUpcomingBookingsHandler handles GET /api/bookings/upcoming for admins.
func (h *BookingHandler) GetUpcomingBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.GetUpcomingBookings(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetPastBookingsHandler handles GET /api/bookings/past for admins.
func (h *BookingHandler) GetPastBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.GetPastBookings(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingStatsHandler handles GET /api/bookings/stats for admins.
func (h *BookingHandler) GetBookingStatsHandler(c *gin.Context) {
	stats, err := h.Service.GetBookingStats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// CanBookHandler handles GET /api/bookings/can-book/:slotId.
func (h *BookingHandler) CanBookHandler(c *gin.Context) {
	check, err := h.Service.CanUserBookSlot(c.Request.Context(), middleware.CurrentUserID(c), c.Param("slotId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, check)
}
