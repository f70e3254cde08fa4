package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bookify/handlers"
	"bookify/models"
	"bookify/services/availability"
	"bookify/services/ledger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*gin.Engine, *ledger.DefaultBookingLedger) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l := ledger.NewDefaultBookingLedger(ledger.UUIDGenerator{}, zap.NewNop())
	svc := &availability.DefaultAvailabilityService{Ledger: l, MinGapMinutes: 15}

	bookingHandler := handlers.NewBookingHandler(l, nil, zap.NewNop())
	availabilityHandler := handlers.NewAvailabilityHandler(svc)

	r := gin.New()
	r.POST("/api/bookings", bookingHandler.CreateBookingHandler)
	r.GET("/api/bookings/:id", bookingHandler.GetBookingHandler)
	r.POST("/api/bookings/:id/confirm", bookingHandler.ConfirmBookingHandler)
	r.POST("/api/bookings/:id/cancel", bookingHandler.CancelBookingHandler)
	r.GET("/api/availability/:resourceID", availabilityHandler.CheckAvailabilityHandler)
	r.GET("/api/availability/:resourceID/free-slots", availabilityHandler.FreeSlotsHandler)
	return r, l
}

func seedRoom(t *testing.T, l *ledger.DefaultBookingLedger) {
	t.Helper()
	require.NoError(t, l.AddResource(&models.Resource{
		ID:                 "room-1",
		CapacityByCategory: map[string]int{"default": 1},
		Active:             true,
		Policy:             models.PolicySingleOccupancy,
		Window: &models.WeeklyWindow{
			Days:        []time.Weekday{time.Monday},
			OpenMinute:  9 * 60,
			CloseMinute: 17 * 60,
		},
	}))
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBookingHandler_Lifecycle(t *testing.T) {
	r, l := newTestRouter(t)
	seedRoom(t, l)

	w := doJSON(r, http.MethodPost, "/api/bookings",
		`{"resourceId":"room-1","category":"default","start":"2026-03-02T10:00:00Z","end":"2026-03-02T10:30:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var booking models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, models.BookingPending, booking.Status)
	assert.NotEmpty(t, booking.ID)

	// Overlapping request maps to 409.
	w = doJSON(r, http.MethodPost, "/api/bookings",
		`{"resourceId":"room-1","category":"default","start":"2026-03-02T10:15:00Z","end":"2026-03-02T10:45:00Z"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "scheduleConflict")

	w = doJSON(r, http.MethodPost, "/api/bookings/"+booking.ID+"/confirm", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Confirmed")

	w = doJSON(r, http.MethodPost, "/api/bookings/"+booking.ID+"/cancel", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/bookings/"+booking.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cancelled")
}

func TestCreateBookingHandler_Validation(t *testing.T) {
	r, l := newTestRouter(t)
	seedRoom(t, l)

	// Reversed interval.
	w := doJSON(r, http.MethodPost, "/api/bookings",
		`{"resourceId":"room-1","category":"default","start":"2026-03-02T11:00:00Z","end":"2026-03-02T10:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown resource.
	w = doJSON(r, http.MethodPost, "/api/bookings",
		`{"resourceId":"ghost","category":"default","start":"2026-03-02T10:00:00Z","end":"2026-03-02T10:30:00Z"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Outside the weekly window.
	w = doJSON(r, http.MethodPost, "/api/bookings",
		`{"resourceId":"room-1","category":"default","start":"2026-03-03T10:00:00Z","end":"2026-03-03T10:30:00Z"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(r, http.MethodGet, "/api/bookings/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvailabilityHandlers(t *testing.T) {
	r, l := newTestRouter(t)
	seedRoom(t, l)

	w := doJSON(r, http.MethodGet,
		"/api/availability/room-1?category=default&start=2026-03-02T10:00:00Z&end=2026-03-02T10:30:00Z", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":true`)

	_, err := l.Create("room-1", "default", mustInterval(t, "2026-03-02T10:00:00Z", "2026-03-02T11:00:00Z"))
	require.NoError(t, err)

	w = doJSON(r, http.MethodGet,
		"/api/availability/room-1?category=default&start=2026-03-02T10:00:00Z&end=2026-03-02T10:30:00Z", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":false`)

	w = doJSON(r, http.MethodGet, "/api/availability/room-1/free-slots?date=2026-03-02", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "09:00 - 10:00")
	assert.Contains(t, w.Body.String(), "11:00 - 17:00")

	w = doJSON(r, http.MethodGet, "/api/availability/room-1/free-slots?date=bogus", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func mustInterval(t *testing.T, start, end string) models.Interval {
	t.Helper()
	s, err := time.Parse(time.RFC3339, start)
	require.NoError(t, err)
	e, err := time.Parse(time.RFC3339, end)
	require.NoError(t, err)
	iv, err := models.NewInterval(s, e)
	require.NoError(t, err)
	return iv
}
