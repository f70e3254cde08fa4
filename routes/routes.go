package routes

import (
	"bookify/handlers"
	"bookify/middleware"
	"bookify/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle collects the handlers the router wires up.
type HandlerBundle struct {
	Resource     *handlers.ResourceHandler
	Booking      *handlers.BookingHandler
	Availability *handlers.AvailabilityHandler
	Session      *handlers.SessionHandler
}

// RegisterRoutes registers all endpoints for the booking ledger service.
func RegisterRoutes(r *gin.Engine, h *HandlerBundle) {
	r.GET("/healthz", utils.HealthHandler)

	resources := r.Group("/api/resources")
	{
		resources.GET("", h.Resource.ListResourcesHandler)
		resources.GET("/:id", h.Resource.GetResourceHandler)

		admin := resources.Group("", middleware.AdminAuthMiddleware())
		admin.POST("", h.Resource.CreateResourceHandler)
		admin.PUT("/:id/active", h.Resource.SetActiveHandler)
	}

	bookings := r.Group("/api/bookings")
	{
		bookings.POST("", h.Booking.CreateBookingHandler)
		bookings.GET("", h.Booking.ListBookingsHandler)
		bookings.GET("/:id", h.Booking.GetBookingHandler)
		bookings.POST("/:id/confirm", h.Booking.ConfirmBookingHandler)
		bookings.POST("/:id/complete", h.Booking.CompleteBookingHandler)
		bookings.POST("/:id/cancel", h.Booking.CancelBookingHandler)
		bookings.POST("/:id/no-show", h.Booking.NoShowBookingHandler)
	}

	availability := r.Group("/api/availability")
	{
		availability.GET("/:resourceID", h.Availability.CheckAvailabilityHandler)
		availability.GET("/:resourceID/free-slots", h.Availability.FreeSlotsHandler)
	}

	session := r.Group("/api/booking")
	{
		session.POST("/session", h.Session.StartSessionHandler)
		session.PUT("/session/:sessionID", h.Session.UpdateSessionHandler)
		session.POST("/confirm", h.Session.ConfirmSessionHandler)
	}
}
