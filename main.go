// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotbook/config"
	"slotbook/cron"
	"slotbook/database"
	bookingRepoPkg "slotbook/database/repository/booking"
	slotRepoPkg "slotbook/database/repository/slot"
	userRepoPkg "slotbook/database/repository/user"
	"slotbook/handlers"
	"slotbook/middleware"
	"slotbook/routes"
	bookingSvc "slotbook/services/booking"
	slotSvc "slotbook/services/slot"
	userSvc "slotbook/services/user"
	"slotbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	slotRepo := slotRepoPkg.NewMongoSlotRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	clock := utils.NewRealClock()
	cache := utils.GetCacheClient()

	// services.
	slotService := &slotSvc.DefaultSlotService{
		Repo:        slotRepo,
		BookingRepo: bookingRepo,
		Cache:       cache,
		Clock:       clock,
	}
	bookingService := &bookingSvc.DefaultBookingService{
		Repo:     bookingRepo,
		SlotRepo: slotRepo,
		Cache:    cache,
		Clock:    clock,
	}
	userService := &userSvc.DefaultUserService{
		Repo:  userRepo,
		Clock: clock,
	}

	slotHandler := &handlers.SlotHandler{Service: slotService}
	bookingHandler := &handlers.BookingHandler{Service: bookingService}
	userHandler := &handlers.UserHandler{Service: userService}

	handlerBundle := &handlers.HandlerBundle{
		UserRepo: userRepo,

		// Account endpoints.
		RegisterUserHandler: userHandler.RegisterHandler,
		LoginUserHandler:    userHandler.LoginHandler,
		MeHandler:           userHandler.MeHandler,
		LogoutUserHandler:   userHandler.LogoutHandler,

		// Slot endpoints.
		CreateSlotHandler:          slotHandler.CreateSlotHandler,
		GetSlotHandler:             slotHandler.GetSlotHandler,
		UpdateSlotHandler:          slotHandler.UpdateSlotHandler,
		DeleteSlotHandler:          slotHandler.DeleteSlotHandler,
		GetAllSlotsHandler:         slotHandler.GetAllSlotsHandler,
		GetAvailableSlotsHandler:   slotHandler.GetAvailableSlotsHandler,
		GetMySlotsHandler:          slotHandler.GetMySlotsHandler,
		GetSlotsByDateRangeHandler: slotHandler.GetSlotsByDateRangeHandler,
		GetSlotStatsHandler:        slotHandler.GetSlotStatsHandler,
		RefreshCountsHandler:       slotHandler.RefreshCountsHandler,

		// Booking endpoints.
		CreateBookingHandler:         bookingHandler.CreateBookingHandler,
		GetBookingHandler:            bookingHandler.GetBookingHandler,
		CancelBookingHandler:         bookingHandler.CancelBookingHandler,
		CompleteBookingHandler:       bookingHandler.CompleteBookingHandler,
		DeleteBookingHandler:         bookingHandler.DeleteBookingHandler,
		UpdateBookingHandler:         bookingHandler.UpdateBookingHandler,
		GetAllBookingsHandler:        bookingHandler.GetAllBookingsHandler,
		GetBookingsBySlotHandler:     bookingHandler.GetBookingsBySlotHandler,
		GetMyUpcomingBookingsHandler: bookingHandler.GetMyUpcomingBookingsHandler,
		GetMyPastBookingsHandler:     bookingHandler.GetMyPastBookingsHandler,
		GetUpcomingBookingsHandler:   bookingHandler.GetUpcomingBookingsHandler,
		GetPastBookingsHandler:       bookingHandler.GetPastBookingsHandler,
		GetBookingStatsHandler:       bookingHandler.GetBookingStatsHandler,
		CanBookHandler:               bookingHandler.CanBookHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background counter reconciliation.
	cron.InitReconcileWorker(slotService, logger)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
