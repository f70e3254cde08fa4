package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"bookify/models"
	"bookify/services/availability"
	"bookify/services/ledger"
	"bookify/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SessionHandler drives the two-phase booking flow: a client opens a
// session for a resource and day, reviews the free slots attached to it,
// then confirms one. Sessions live in Redis with a short TTL.
type SessionHandler struct {
	Cache        *redis.Client
	Ledger       ledger.BookingLedger
	Availability availability.AvailabilityService
}

func NewSessionHandler(cache *redis.Client, l ledger.BookingLedger, svc availability.AvailabilityService) *SessionHandler {
	return &SessionHandler{Cache: cache, Ledger: l, Availability: svc}
}

type sessionInput struct {
	ResourceID string `json:"resourceId" binding:"required"`
	Category   string `json:"category" binding:"required"`
	Date       string `json:"date" binding:"required"` // "2006-01-02"
}

// StartSessionHandler creates a booking session with the day's free slots.
func (h *SessionHandler) StartSessionHandler(c *gin.Context) {
	var input sessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.buildSession(input)
	if err != nil {
		utils.LedgerError(c, err)
		return
	}

	sessionID := uuid.New().String()
	if err := h.storeSession(c, sessionID, session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to cache booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessionID":    sessionID,
		"availability": session.Availability,
	})
}

// UpdateSessionHandler re-targets an open session and recomputes its slots.
func (h *SessionHandler) UpdateSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if _, err := h.loadSession(c, sessionID); err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking session not found or expired", err.Error())
		return
	}

	var input sessionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	session, err := h.buildSession(input)
	if err != nil {
		utils.LedgerError(c, err)
		return
	}
	if err := h.storeSession(c, sessionID, session); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to update booking session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessionID":    sessionID,
		"availability": session.Availability,
	})
}

// ConfirmSessionHandler books the chosen slot and clears the session.
func (h *SessionHandler) ConfirmSessionHandler(c *gin.Context) {
	var input struct {
		SessionID string    `json:"sessionID" binding:"required"`
		Start     time.Time `json:"start" binding:"required"`
		End       time.Time `json:"end" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.loadSession(c, input.SessionID)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking session not found or expired", err.Error())
		return
	}
	iv, err := models.NewInterval(input.Start, input.End)
	if err != nil {
		utils.LedgerError(c, err)
		return
	}

	bookingID, err := h.Ledger.Create(session.ResourceID, session.Category, iv)
	if err != nil {
		utils.LedgerError(c, err)
		return
	}
	h.Cache.Del(c.Request.Context(), input.SessionID)

	booking, err := h.Ledger.Booking(bookingID)
	if err != nil {
		utils.LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func (h *SessionHandler) buildSession(input sessionInput) (*models.BookingSession, error) {
	day, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, &ledger.Error{Code: ledger.CodeInvalidInterval, Message: "date must be YYYY-MM-DD"}
	}
	slots, err := h.Availability.FreeSlots(input.ResourceID, day)
	if err != nil {
		return nil, err
	}
	return &models.BookingSession{
		ResourceID:   input.ResourceID,
		Category:     input.Category,
		Date:         input.Date,
		Availability: slots,
	}, nil
}

func (h *SessionHandler) storeSession(c *gin.Context, sessionID string, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return h.Cache.Set(c.Request.Context(), sessionID, data, utils.SessionTTL()).Err()
}

func (h *SessionHandler) loadSession(c *gin.Context, sessionID string) (*models.BookingSession, error) {
	data, err := h.Cache.Get(c.Request.Context(), sessionID).Result()
	if err != nil {
		return nil, err
	}
	var session models.BookingSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}
