// File: handlers/slot.go
package handlers

import (
	"net/http"
	"time"

	"slotbook/middleware"
	slotSvc "slotbook/services/slot"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SlotHandler exposes the slot endpoints.
type SlotHandler struct {
	Service slotSvc.SlotService
}

type createSlotRequest struct {
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Description string `json:"description"`
}

// CreateSlotHandler handles POST /api/slots.
func (h *SlotHandler) CreateSlotHandler(c *gin.Context) {
	var req createSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD format", "")
		return
	}
	slot, err := h.Service.CreateSlot(c.Request.Context(), date, req.StartTime, req.EndTime, req.Description, middleware.CurrentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, slot)
}

// GetSlotHandler handles GET /api/slots/:id.
func (h *SlotHandler) GetSlotHandler(c *gin.Context) {
	slot, err := h.Service.GetSlot(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

type updateSlotRequest struct {
	Date        *string `json:"date"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	MaxBookings *int    `json:"maxBookings"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// UpdateSlotHandler handles PUT /api/slots/:id.
func (h *SlotHandler) UpdateSlotHandler(c *gin.Context) {
	var req updateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	input := slotSvc.UpdateSlotInput{
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		MaxBookings: req.MaxBookings,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD format", "")
			return
		}
		input.Date = &date
	}
	slot, err := h.Service.UpdateSlot(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// DeleteSlotHandler handles DELETE /api/slots/:id.
func (h *SlotHandler) DeleteSlotHandler(c *gin.Context) {
	if err := h.Service.DeleteSlot(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Slot deleted successfully"})
}

// GetAllSlotsHandler handles GET /api/slots.
func (h *SlotHandler) GetAllSlotsHandler(c *gin.Context) {
	slots, err := h.Service.GetAllSlots(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// GetAvailableSlotsHandler handles GET /api/slots/available. When the
// request carries a valid session the listing is annotated with whether
// the caller already booked each slot.
func (h *SlotHandler) GetAvailableSlotsHandler(c *gin.Context) {
	if userID := middleware.CurrentUserID(c); userID != "" {
		slots, err := h.Service.GetAvailableSlotsWithUserStatus(c.Request.Context(), userID)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		c.JSON(http.StatusOK, slots)
		return
	}
	slots, err := h.Service.GetAvailableSlots(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// GetMySlotsHandler handles GET /api/slots/my-slots for admins.
func (h *SlotHandler) GetMySlotsHandler(c *gin.Context) {
	slots, err := h.Service.GetSlotsByCreator(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// GetSlotsByDateRangeHandler handles GET /api/slots/date-range.
func (h *SlotHandler) GetSlotsByDateRangeHandler(c *gin.Context) {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "from must be in YYYY-MM-DD format", "")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "to must be in YYYY-MM-DD format", "")
		return
	}
	slots, err := h.Service.GetSlotsByDateRange(c.Request.Context(), from, to)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, slots)
}

// GetSlotStatsHandler handles GET /api/slots/stats.
func (h *SlotHandler) GetSlotStatsHandler(c *gin.Context) {
	stats, err := h.Service.GetSlotStats(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// RefreshCountsHandler handles POST /api/slots/refresh-counts.
func (h *SlotHandler) RefreshCountsHandler(c *gin.Context) {
	repaired, err := h.Service.RefreshAllBookingCounts(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.GetLogger().Info("Booking counts refreshed", zap.Int("slots", repaired))
	c.JSON(http.StatusOK, gin.H{"message": "Booking counts refreshed", "slots": repaired})
}
