// File: routes/routes.go
package routes

import (
	"net/http"
	"time"

	"slotbook/handlers"
	"slotbook/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.RegisterUserHandler)
		api.POST("/login", hb.LoginUserHandler)

		// Protected routes (Require Authentication)
		api.Use(middleware.AuthMiddleware(hb.UserRepo))
		api.GET("/me", hb.MeHandler)
		api.POST("/logout", hb.LogoutUserHandler)
	}
}

// RegisterSlotRoutes registers slot endpoints. Listing availability is
// open to everyone; management is admin only.
func RegisterSlotRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/slots")
	{
		api.GET("/available", middleware.OptionalAuth(hb.UserRepo), hb.GetAvailableSlotsHandler)

		admin := api.Group("")
		admin.Use(middleware.AuthMiddleware(hb.UserRepo), middleware.AdminOnly())
		admin.POST("", hb.CreateSlotHandler)
		admin.GET("", hb.GetAllSlotsHandler)
		admin.GET("/my-slots", hb.GetMySlotsHandler)
		admin.GET("/date-range", hb.GetSlotsByDateRangeHandler)
		admin.GET("/stats", hb.GetSlotStatsHandler)
		admin.POST("/refresh-counts", hb.RefreshCountsHandler)
		admin.GET("/:id", hb.GetSlotHandler)
		admin.PUT("/:id", hb.UpdateSlotHandler)
		admin.DELETE("/:id", hb.DeleteSlotHandler)
	}
}

// RegisterBookingRoutes registers booking endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.AuthMiddleware(hb.UserRepo))
	{
		api.POST("", hb.CreateBookingHandler)
		api.GET("/my-upcoming", hb.GetMyUpcomingBookingsHandler)
		api.GET("/my-past", hb.GetMyPastBookingsHandler)
		api.GET("/can-book/:slotId", hb.CanBookHandler)
		api.GET("/:id", hb.GetBookingHandler)
		api.PUT("/:id/cancel", hb.CancelBookingHandler)

		admin := api.Group("")
		admin.Use(middleware.AdminOnly())
		admin.GET("", hb.GetAllBookingsHandler)
		admin.GET("/upcoming", hb.GetUpcomingBookingsHandler)
		admin.GET("/past", hb.GetPastBookingsHandler)
		admin.GET("/stats", hb.GetBookingStatsHandler)
		admin.GET("/slot/:slotId", hb.GetBookingsBySlotHandler)
		admin.PUT("/:id/complete", hb.CompleteBookingHandler)
		admin.PUT("/:id", hb.UpdateBookingHandler)
		admin.DELETE("/:id", hb.DeleteBookingHandler)
	}
}

// RegisterHealthRoute exposes a liveness probe.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterUserRoutes(r, hb)
	RegisterSlotRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}
