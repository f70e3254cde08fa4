package models_test

import (
	"testing"
	"time"

	"bookify/models"

	"github.com/stretchr/testify/assert"
)

func weekdayResource() *models.Resource {
	return &models.Resource{
		ID:                  "doc-1",
		CapacityByCategory:  map[string]int{"default": 1},
		AvailableByCategory: map[string]int{"default": 1},
		Active:              true,
		Policy:              models.PolicySingleOccupancy,
		Window: &models.WeeklyWindow{
			Days:        []time.Weekday{time.Monday, time.Wednesday},
			OpenMinute:  9 * 60,
			CloseMinute: 17 * 60,
		},
	}
}

func TestResource_HasCapacity(t *testing.T) {
	res := &models.Resource{
		ID:                  "flight-1",
		CapacityByCategory:  map[string]int{"Economy": 2, "Business": 0},
		AvailableByCategory: map[string]int{"Economy": 2, "Business": 0},
		Active:              true,
	}

	assert.True(t, res.HasCapacity("Economy"))
	assert.False(t, res.HasCapacity("Business"))
	assert.False(t, res.KnownCategory("First"))

	res.Active = false
	assert.False(t, res.HasCapacity("Economy"))
}

func TestResource_ReserveRelease_Clamped(t *testing.T) {
	res := &models.Resource{
		ID:                  "flight-1",
		CapacityByCategory:  map[string]int{"Economy": 1},
		AvailableByCategory: map[string]int{"Economy": 1},
		Active:              true,
	}

	assert.True(t, res.Reserve("Economy"))
	assert.Equal(t, 0, res.AvailableByCategory["Economy"])
	// Availability never drops below zero.
	assert.False(t, res.Reserve("Economy"))
	assert.Equal(t, 0, res.AvailableByCategory["Economy"])

	res.Release("Economy")
	assert.Equal(t, 1, res.AvailableByCategory["Economy"])
	// Availability never exceeds capacity.
	res.Release("Economy")
	assert.Equal(t, 1, res.AvailableByCategory["Economy"])
}

func TestResource_IsOpenAt(t *testing.T) {
	res := weekdayResource()

	assert.True(t, res.IsOpenAt(mkInterval(t, "09:00", "17:00")))
	assert.True(t, res.IsOpenAt(mkInterval(t, "10:00", "10:30")))
	// Spills past closing.
	assert.False(t, res.IsOpenAt(mkInterval(t, "16:30", "17:30")))
	// Starts before opening.
	assert.False(t, res.IsOpenAt(mkInterval(t, "08:30", "09:30")))

	// 2026-03-03 is a Tuesday, not in the window.
	tuesday, err := models.NewInterval(
		time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 3, 10, 30, 0, 0, time.UTC),
	)
	assert.NoError(t, err)
	assert.False(t, res.IsOpenAt(tuesday))

	// No window means always open.
	res.Window = nil
	assert.True(t, res.IsOpenAt(tuesday))
}
