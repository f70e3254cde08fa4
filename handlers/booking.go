package handlers

import (
	"net/http"
	"time"

	"bookify/cron"
	"bookify/models"
	"bookify/services/ledger"
	"bookify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking lifecycle endpoints.
type BookingHandler struct {
	Ledger    ledger.BookingLedger
	Reminders *cron.ReminderScheduler
	Logger    *zap.Logger
}

func NewBookingHandler(l ledger.BookingLedger, reminders *cron.ReminderScheduler, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Ledger: l, Reminders: reminders, Logger: logger}
}

type createBookingInput struct {
	ResourceID string    `json:"resourceId" binding:"required"`
	Category   string    `json:"category" binding:"required"`
	Start      time.Time `json:"start" binding:"required"`
	End        time.Time `json:"end" binding:"required"`
}

// CreateBookingHandler records a new Pending booking.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var input createBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	iv, err := models.NewInterval(input.Start, input.End)
	if err != nil {
		utils.LedgerError(c, err)
		return
	}

	bookingID, err := h.Ledger.Create(input.ResourceID, input.Category, iv)
	if err != nil {
		utils.LedgerError(c, err)
		return
	}
	booking, err := h.Ledger.Booking(bookingID)
	if err != nil {
		utils.LedgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBookingHandler returns a single booking.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	booking, err := h.Ledger.Booking(c.Param("id"))
	if err != nil {
		utils.LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListBookingsHandler returns the booking history of a resource.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	resourceID := c.Query("resourceId")
	if resourceID == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "resourceId query parameter is required")
		return
	}
	if _, err := h.Ledger.Resource(resourceID); err != nil {
		utils.LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": h.Ledger.BookingsFor(resourceID)})
}

// ConfirmBookingHandler moves a booking to Confirmed and schedules its
// reminder task.
func (h *BookingHandler) ConfirmBookingHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Ledger.Confirm(id); err != nil {
		utils.LedgerError(c, err)
		return
	}
	if h.Reminders != nil {
		booking, err := h.Ledger.Booking(id)
		if err == nil {
			if err := h.Reminders.ScheduleReminder(booking); err != nil {
				// The booking is confirmed either way; a lost reminder is
				// not worth failing the request over.
				h.Logger.Warn("failed to schedule reminder", zap.String("bookingID", id), zap.Error(err))
			}
		}
	}
	h.respondWithBooking(c, id)
}

// CompleteBookingHandler moves a Confirmed booking to Completed.
func (h *BookingHandler) CompleteBookingHandler(c *gin.Context) {
	if err := h.Ledger.Complete(c.Param("id")); err != nil {
		utils.LedgerError(c, err)
		return
	}
	h.respondWithBooking(c, c.Param("id"))
}

// CancelBookingHandler cancels a booking, restoring its capacity unit.
// Cancelling twice succeeds without further effect.
func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	if err := h.Ledger.Cancel(c.Param("id")); err != nil {
		utils.LedgerError(c, err)
		return
	}
	h.respondWithBooking(c, c.Param("id"))
}

// NoShowBookingHandler marks a Confirmed booking as a no-show.
func (h *BookingHandler) NoShowBookingHandler(c *gin.Context) {
	if err := h.Ledger.MarkNoShow(c.Param("id")); err != nil {
		utils.LedgerError(c, err)
		return
	}
	h.respondWithBooking(c, c.Param("id"))
}

func (h *BookingHandler) respondWithBooking(c *gin.Context, id string) {
	booking, err := h.Ledger.Booking(id)
	if err != nil {
		utils.LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
