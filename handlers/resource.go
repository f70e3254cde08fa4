package handlers

import (
	"net/http"
	"time"

	"bookify/models"
	"bookify/services/ledger"
	"bookify/utils"

	"github.com/gin-gonic/gin"
)

// ResourceHandler exposes resource registration and management endpoints.
type ResourceHandler struct {
	Ledger ledger.BookingLedger
}

func NewResourceHandler(l ledger.BookingLedger) *ResourceHandler {
	return &ResourceHandler{Ledger: l}
}

type weeklyWindowInput struct {
	Days        []int `json:"days" binding:"required"`
	OpenMinute  int   `json:"openMinute"`
	CloseMinute int   `json:"closeMinute"`
}

type createResourceInput struct {
	Name               string                `json:"name" binding:"required"`
	CapacityByCategory map[string]int        `json:"capacityByCategory" binding:"required"`
	Policy             models.ConflictPolicy `json:"policy"`
	Window             *weeklyWindowInput    `json:"window"`
}

// CreateResourceHandler registers a new bookable resource.
func (h *ResourceHandler) CreateResourceHandler(c *gin.Context) {
	var input createResourceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	res := &models.Resource{
		Name:               input.Name,
		CapacityByCategory: input.CapacityByCategory,
		Active:             true,
		Policy:             input.Policy,
	}
	if input.Window != nil {
		if input.Window.OpenMinute < 0 || input.Window.CloseMinute > 24*60 ||
			input.Window.OpenMinute >= input.Window.CloseMinute {
			utils.JSONError(c, http.StatusBadRequest, "invalid window", "openMinute must be before closeMinute within a day")
			return
		}
		days := make([]time.Weekday, 0, len(input.Window.Days))
		for _, d := range input.Window.Days {
			if d < 0 || d > 6 {
				utils.JSONError(c, http.StatusBadRequest, "invalid window", "days must be 0 (Sunday) through 6 (Saturday)")
				return
			}
			days = append(days, time.Weekday(d))
		}
		res.Window = &models.WeeklyWindow{
			Days:        days,
			OpenMinute:  input.Window.OpenMinute,
			CloseMinute: input.Window.CloseMinute,
		}
	}

	if err := h.Ledger.AddResource(res); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "failed to register resource", err.Error())
		return
	}
	c.JSON(http.StatusCreated, res)
}

// GetResourceHandler returns a single resource with its live counters.
func (h *ResourceHandler) GetResourceHandler(c *gin.Context) {
	res, err := h.Ledger.Resource(c.Param("id"))
	if err != nil {
		utils.LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListResourcesHandler returns all registered resources.
func (h *ResourceHandler) ListResourcesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"resources": h.Ledger.Resources()})
}

// SetActiveHandler activates or deactivates a resource. Deactivated
// resources accept no new bookings but keep their history.
func (h *ResourceHandler) SetActiveHandler(c *gin.Context) {
	var input struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	if err := h.Ledger.SetActive(c.Param("id"), *input.Active); err != nil {
		utils.LedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "active": *input.Active})
}
