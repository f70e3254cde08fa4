package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookify/config"
	"bookify/cron"
	"bookify/database"
	ledgerRepo "bookify/database/repository/ledger"
	"bookify/handlers"
	"bookify/middleware"
	"bookify/routes"
	"bookify/services/availability"
	"bookify/services/ledger"
	"bookify/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Persistence collaborator: touched only at process start and stop.
	store := ledgerRepo.NewMongoLedgerRepo()
	if err := store.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
	}

	bookingLedger := ledger.NewDefaultBookingLedger(ledger.UUIDGenerator{}, logger)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 15*time.Second)
	resources, bookings, err := store.LoadAll(loadCtx)
	cancelLoad()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load ledger state: %v", err)
	}
	if err := bookingLedger.Restore(resources, bookings); err != nil {
		logger.Sugar().Fatalf("main: failed to restore ledger state: %v", err)
	}
	logger.Sugar().Infof("main: ledger restored with %d resources, %d bookings", len(resources), len(bookings))

	availabilitySvc := &availability.DefaultAvailabilityService{
		Ledger:        bookingLedger,
		MinGapMinutes: config.AppConfig.SlotGranularityMin,
	}

	reminders := cron.NewReminderScheduler()
	reminderWorker := cron.InitReminderWorker(bookingLedger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	handlerBundle := &routes.HandlerBundle{
		Resource:     handlers.NewResourceHandler(bookingLedger),
		Booking:      handlers.NewBookingHandler(bookingLedger, reminders, logger),
		Availability: handlers.NewAvailabilityHandler(availabilitySvc),
		Session:      handlers.NewSessionHandler(utils.GetSessionCacheClient(), bookingLedger, availabilitySvc),
	}
	routes.RegisterRoutes(router, handlerBundle)

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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	reminderWorker.Shutdown()
	_ = reminders.Close()

	// Flush the ledger snapshot before exiting.
	resSnap, bookSnap := bookingLedger.Snapshot()
	if err := store.SaveAll(ctx, resSnap, bookSnap); err != nil {
		logger.Sugar().Errorf("main: failed to persist ledger snapshot: %v", err)
	} else {
		logger.Sugar().Infof("main: persisted %d resources, %d bookings", len(resSnap), len(bookSnap))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
