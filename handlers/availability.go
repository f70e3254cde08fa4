package handlers

import (
	"net/http"
	"time"

	"bookify/models"
	"bookify/services/availability"
	"bookify/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes the read-only availability queries.
type AvailabilityHandler struct {
	Availability availability.AvailabilityService
}

func NewAvailabilityHandler(svc availability.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Availability: svc}
}

// CheckAvailabilityHandler answers whether a resource can take a booking
// for the given category and interval.
func (h *AvailabilityHandler) CheckAvailabilityHandler(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "category query parameter is required")
		return
	}
	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "start must be RFC3339")
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "end must be RFC3339")
		return
	}
	iv, err := models.NewInterval(start, end)
	if err != nil {
		utils.LedgerError(c, err)
		return
	}

	ok, err := h.Availability.IsAvailable(c.Param("resourceID"), category, iv)
	if err != nil {
		utils.LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": ok})
}

// FreeSlotsHandler enumerates the free sub-intervals of a resource's day.
func (h *AvailabilityHandler) FreeSlotsHandler(c *gin.Context) {
	day, err := time.Parse("2006-01-02", c.Query("date"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "date must be YYYY-MM-DD")
		return
	}

	slots, err := h.Availability.FreeSlots(c.Param("resourceID"), day)
	if err != nil {
		utils.LedgerError(c, err)
		return
	}
	labels := make([]gin.H, 0, len(slots))
	for _, s := range slots {
		labels = append(labels, gin.H{"start": s.Start, "end": s.End, "label": s.Label()})
	}
	c.JSON(http.StatusOK, gin.H{"freeSlots": labels})
}
