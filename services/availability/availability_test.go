package availability_test

import (
	"testing"
	"time"

	"bookify/models"
	"bookify/services/availability"
	"bookify/services/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func mkInterval(t *testing.T, startHM, endHM string) models.Interval {
	t.Helper()
	start, err := time.Parse(time.RFC3339, "2026-03-02T"+startHM+":00Z")
	require.NoError(t, err)
	end, err := time.Parse(time.RFC3339, "2026-03-02T"+endHM+":00Z")
	require.NoError(t, err)
	iv, err := models.NewInterval(start, end)
	require.NoError(t, err)
	return iv
}

func newFixture(t *testing.T, minGap int) (*ledger.DefaultBookingLedger, *availability.DefaultAvailabilityService) {
	t.Helper()
	l := ledger.NewDefaultBookingLedger(ledger.UUIDGenerator{}, zap.NewNop())
	require.NoError(t, l.AddResource(&models.Resource{
		ID:                 "room-1",
		CapacityByCategory: map[string]int{"default": 10},
		Active:             true,
		Policy:             models.PolicySingleOccupancy,
		Window: &models.WeeklyWindow{
			Days:        []time.Weekday{time.Monday},
			OpenMinute:  9 * 60,
			CloseMinute: 17 * 60,
		},
	}))
	return l, &availability.DefaultAvailabilityService{Ledger: l, MinGapMinutes: minGap}
}

func TestFreeSlots_EmptyDayIsWholeWindow(t *testing.T) {
	_, svc := newFixture(t, 15)

	slots, err := svc.FreeSlots("room-1", monday)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 9*60, slots[0].StartMinute())
	assert.Equal(t, 17*60, slots[0].EndMinute())
}

func TestFreeSlots_GapsBetweenBookings(t *testing.T) {
	l, svc := newFixture(t, 15)

	_, err := l.Create("room-1", "default", mkInterval(t, "10:00", "10:30"))
	require.NoError(t, err)
	_, err = l.Create("room-1", "default", mkInterval(t, "13:00", "14:00"))
	require.NoError(t, err)

	slots, err := svc.FreeSlots("room-1", monday)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, "09:00 - 10:00", slots[0].Label())
	assert.Equal(t, "10:30 - 13:00", slots[1].Label())
	assert.Equal(t, "14:00 - 17:00", slots[2].Label())

	// Free slots plus booked intervals tile the whole window.
	covered := 0
	for _, s := range slots {
		covered += s.EndMinute() - s.StartMinute()
	}
	for _, b := range l.BookingsFor("room-1") {
		covered += b.Interval.EndMinute() - b.Interval.StartMinute()
	}
	assert.Equal(t, 8*60, covered)
}

func TestFreeSlots_GranularityFloorDropsSlivers(t *testing.T) {
	l, svc := newFixture(t, 15)

	_, err := l.Create("room-1", "default", mkInterval(t, "09:00", "12:00"))
	require.NoError(t, err)
	// Leaves a 10-minute sliver before the next booking.
	_, err = l.Create("room-1", "default", mkInterval(t, "12:10", "17:00"))
	require.NoError(t, err)

	slots, err := svc.FreeSlots("room-1", monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestFreeSlots_CancelledBookingsDoNotBlock(t *testing.T) {
	l, svc := newFixture(t, 15)

	id, err := l.Create("room-1", "default", mkInterval(t, "10:00", "12:00"))
	require.NoError(t, err)
	require.NoError(t, l.Cancel(id))

	slots, err := svc.FreeSlots("room-1", monday)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00 - 17:00", slots[0].Label())
}

func TestFreeSlots_ClosedDayYieldsNothing(t *testing.T) {
	_, svc := newFixture(t, 15)

	tuesday := monday.AddDate(0, 0, 1)
	slots, err := svc.FreeSlots("room-1", tuesday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestFreeSlots_UnknownResource(t *testing.T) {
	_, svc := newFixture(t, 15)

	_, err := svc.FreeSlots("missing", monday)
	assert.Equal(t, ledger.CodeResourceNotFound, ledger.CodeOf(err))
}

func TestFreeSlots_NoWindowCoversFullDay(t *testing.T) {
	l := ledger.NewDefaultBookingLedger(ledger.UUIDGenerator{}, zap.NewNop())
	require.NoError(t, l.AddResource(&models.Resource{
		ID:                 "open-ended",
		CapacityByCategory: map[string]int{"default": 1},
		Active:             true,
		Policy:             models.PolicySingleOccupancy,
	}))
	svc := &availability.DefaultAvailabilityService{Ledger: l, MinGapMinutes: 15}

	slots, err := svc.FreeSlots("open-ended", monday)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, 0, slots[0].StartMinute())
	assert.Equal(t, 24*60, slots[0].EndMinute())
}

func TestFreeSlots_PooledBookingsNeverBlackOutTheWindow(t *testing.T) {
	l := ledger.NewDefaultBookingLedger(ledger.UUIDGenerator{}, zap.NewNop())
	require.NoError(t, l.AddResource(&models.Resource{
		ID:                 "flight-1",
		CapacityByCategory: map[string]int{"Economy": 2},
		Active:             true,
		Policy:             models.PolicyPooledCapacity,
		Window: &models.WeeklyWindow{
			Days:        []time.Weekday{time.Monday},
			OpenMinute:  9 * 60,
			CloseMinute: 17 * 60,
		},
	}))
	svc := &availability.DefaultAvailabilityService{Ledger: l, MinGapMinutes: 15}

	_, err := l.Create("flight-1", "Economy", mkInterval(t, "10:00", "12:00"))
	require.NoError(t, err)

	slots, err := svc.FreeSlots("flight-1", monday)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "09:00 - 17:00", slots[0].Label())
}

func TestIsAvailable_CombinesChecks(t *testing.T) {
	l, svc := newFixture(t, 15)
	iv := mkInterval(t, "10:00", "10:30")

	ok, err := svc.IsAvailable("room-1", "default", iv)
	require.NoError(t, err)
	assert.True(t, ok)

	// Unknown category.
	ok, err = svc.IsAvailable("room-1", "vip", iv)
	require.NoError(t, err)
	assert.False(t, ok)

	// Outside the window.
	ok, err = svc.IsAvailable("room-1", "default", mkInterval(t, "07:00", "08:00"))
	require.NoError(t, err)
	assert.False(t, ok)

	// Conflicting live booking.
	_, err = l.Create("room-1", "default", mkInterval(t, "10:00", "11:00"))
	require.NoError(t, err)
	ok, err = svc.IsAvailable("room-1", "default", iv)
	require.NoError(t, err)
	assert.False(t, ok)

	// Adjacent interval is fine.
	ok, err = svc.IsAvailable("room-1", "default", mkInterval(t, "11:00", "11:30"))
	require.NoError(t, err)
	assert.True(t, ok)

	// Inactive resource.
	require.NoError(t, l.SetActive("room-1", false))
	ok, err = svc.IsAvailable("room-1", "default", mkInterval(t, "11:00", "11:30"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.IsAvailable("missing", "default", iv)
	assert.Equal(t, ledger.CodeResourceNotFound, ledger.CodeOf(err))
}

func TestIsAvailable_PooledIgnoresOverlap(t *testing.T) {
	l := ledger.NewDefaultBookingLedger(ledger.UUIDGenerator{}, zap.NewNop())
	require.NoError(t, l.AddResource(&models.Resource{
		ID:                 "flight-1",
		CapacityByCategory: map[string]int{"Economy": 2},
		Active:             true,
		Policy:             models.PolicyPooledCapacity,
	}))
	svc := &availability.DefaultAvailabilityService{Ledger: l, MinGapMinutes: 15}
	iv := mkInterval(t, "10:00", "12:00")

	_, err := l.Create("flight-1", "Economy", iv)
	require.NoError(t, err)

	// Overlap is irrelevant while the pool has room.
	ok, err := svc.IsAvailable("flight-1", "Economy", iv)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = l.Create("flight-1", "Economy", iv)
	require.NoError(t, err)
	ok, err = svc.IsAvailable("flight-1", "Economy", iv)
	require.NoError(t, err)
	assert.False(t, ok)
}
