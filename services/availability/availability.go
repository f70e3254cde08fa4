package availability

import (
	"sort"
	"time"

	"bookify/models"
	"bookify/services/ledger"
)

// AvailabilityService answers capacity questions and enumerates free
// sub-intervals. It is read-only over the ledger; results are recomputed
// fresh on every call.
type AvailabilityService interface {
	IsAvailable(resourceID, category string, iv models.Interval) (bool, error)
	FreeSlots(resourceID string, day time.Time) ([]models.Interval, error)
}

// DefaultAvailabilityService is the concrete implementation.
type DefaultAvailabilityService struct {
	Ledger ledger.BookingLedger
	// MinGapMinutes is the granularity floor: free gaps shorter than this
	// are not worth offering and are dropped from FreeSlots results.
	MinGapMinutes int
}

// IsAvailable combines the resource checks (active, open window, category
// capacity) with the conflict scan appropriate for the resource's policy.
func (s *DefaultAvailabilityService) IsAvailable(resourceID, category string, iv models.Interval) (bool, error) {
	res, err := s.Ledger.Resource(resourceID)
	if err != nil {
		return false, err
	}
	if !res.KnownCategory(category) {
		return false, nil
	}
	if !res.Active || !res.IsOpenAt(iv) || !res.HasCapacity(category) {
		return false, nil
	}
	if res.Policy == models.PolicySingleOccupancy {
		conflicts, err := s.Ledger.FindConflicts(resourceID, iv)
		if err != nil {
			return false, err
		}
		if len(conflicts) > 0 {
			return false, nil
		}
	}
	return true, nil
}

// FreeSlots computes the bookable gaps on a single-occupancy resource for
// one day: between window open and the first live booking, between
// consecutive bookings, and between the last booking and window close.
// A resource closed that day yields an empty sequence. Overlap is
// irrelevant on pooled-capacity resources, so for those the whole open
// window comes back as one slot; whether a pool has room for a category
// is IsAvailable's question.
func (s *DefaultAvailabilityService) FreeSlots(resourceID string, day time.Time) ([]models.Interval, error) {
	res, err := s.Ledger.Resource(resourceID)
	if err != nil {
		return nil, err
	}

	day = day.UTC()
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)

	openMinute, closeMinute := 0, 24*60
	if res.Window != nil {
		if !res.Window.EnabledOn(midnight.Weekday()) {
			return nil, nil
		}
		openMinute, closeMinute = res.Window.OpenMinute, res.Window.CloseMinute
	}

	// Collect that day's live bookings as minute offsets, sorted by start.
	// Pooled resources skip this: their bookings never black out the window.
	type span struct{ start, end int }
	var booked []span
	if res.Policy == models.PolicySingleOccupancy {
		for _, b := range s.Ledger.BookingsFor(resourceID) {
			if !b.Status.Holding() {
				continue
			}
			bs := b.Interval.Start
			if bs.Year() != midnight.Year() || bs.YearDay() != midnight.YearDay() {
				continue
			}
			booked = append(booked, span{b.Interval.StartMinute(), b.Interval.EndMinute()})
		}
		sort.Slice(booked, func(i, j int) bool { return booked[i].start < booked[j].start })
	}

	minGap := s.MinGapMinutes
	if minGap <= 0 {
		minGap = 1
	}

	var free []models.Interval
	cursor := openMinute
	emit := func(start, end int) {
		if end-start < minGap {
			return
		}
		iv, err := models.NewInterval(
			midnight.Add(time.Duration(start)*time.Minute),
			midnight.Add(time.Duration(end)*time.Minute),
		)
		if err == nil {
			free = append(free, iv)
		}
	}
	for _, b := range booked {
		if b.start > cursor {
			emit(cursor, min(b.start, closeMinute))
		}
		if b.end > cursor {
			cursor = b.end
		}
		if cursor >= closeMinute {
			break
		}
	}
	if cursor < closeMinute {
		emit(cursor, closeMinute)
	}
	return free, nil
}
