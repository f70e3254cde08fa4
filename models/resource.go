package models

import "time"

// ConflictPolicy selects how a resource treats overlapping bookings.
type ConflictPolicy string

const (
	// PolicySingleOccupancy rejects any booking whose interval overlaps a
	// live one on the same resource (doctor calendars, meeting rooms).
	PolicySingleOccupancy ConflictPolicy = "singleOccupancy"
	// PolicyPooledCapacity ignores overlap entirely; only the per-category
	// capacity counters matter (seat pools, event zones).
	PolicyPooledCapacity ConflictPolicy = "pooledCapacity"
)

// WeeklyWindow is a fixed recurring schedule: the weekdays a resource is
// bookable plus daily open/close bounds as minutes from midnight
// (e.g., 540 for 9:00 AM, 1020 for 5:00 PM).
type WeeklyWindow struct {
	Days        []time.Weekday `bson:"days" json:"days"`
	OpenMinute  int            `bson:"openMinute" json:"openMinute"`
	CloseMinute int            `bson:"closeMinute" json:"closeMinute"`
}

// EnabledOn reports whether the window covers the given weekday.
func (w WeeklyWindow) EnabledOn(day time.Weekday) bool {
	for _, d := range w.Days {
		if d == day {
			return true
		}
	}
	return false
}

// Resource is a bookable entity with finite per-category capacity.
type Resource struct {
	ID                  string         `bson:"id" json:"id"`
	Name                string         `bson:"name" json:"name"`
	CapacityByCategory  map[string]int `bson:"capacityByCategory" json:"capacityByCategory"`
	AvailableByCategory map[string]int `bson:"availableByCategory" json:"availableByCategory"`
	Active              bool           `bson:"active" json:"active"`
	Policy              ConflictPolicy `bson:"policy" json:"policy"`
	Window              *WeeklyWindow  `bson:"window,omitempty" json:"window,omitempty"`
	CreatedAt           time.Time      `bson:"createdAt" json:"createdAt"`
}

// Clone returns a deep copy detached from the original's maps and window,
// so holders of the copy never alias ledger-owned state.
func (r *Resource) Clone() *Resource {
	cp := *r
	cp.CapacityByCategory = make(map[string]int, len(r.CapacityByCategory))
	for category, capacity := range r.CapacityByCategory {
		cp.CapacityByCategory[category] = capacity
	}
	cp.AvailableByCategory = make(map[string]int, len(r.AvailableByCategory))
	for category, available := range r.AvailableByCategory {
		cp.AvailableByCategory[category] = available
	}
	if r.Window != nil {
		w := *r.Window
		w.Days = append([]time.Weekday(nil), r.Window.Days...)
		cp.Window = &w
	}
	return &cp
}

// KnownCategory reports whether the category belongs to the resource's
// fixed category set.
func (r *Resource) KnownCategory(category string) bool {
	_, ok := r.CapacityByCategory[category]
	return ok
}

// HasCapacity reports whether the resource is active and still has at least
// one free unit in the category. Callers must have validated the category.
func (r *Resource) HasCapacity(category string) bool {
	return r.Active && r.AvailableByCategory[category] > 0
}

// IsOpenAt checks the interval against the weekly window. Resources without
// a window are always open. The interval must fall entirely within the
// open/close bounds of a single enabled day.
func (r *Resource) IsOpenAt(iv Interval) bool {
	if r.Window == nil {
		return true
	}
	if !r.Window.EnabledOn(iv.Start.Weekday()) {
		return false
	}
	// Cross-midnight intervals never fit a same-day window.
	sameDay := iv.Start.Year() == iv.End.Year() && iv.Start.YearDay() == iv.End.YearDay()
	if !sameDay && iv.EndMinute() != 24*60 {
		return false
	}
	return iv.StartMinute() >= r.Window.OpenMinute && iv.EndMinute() <= r.Window.CloseMinute
}

// Reserve takes one unit of the category. It reports false when no unit is
// free; the counter never drops below zero.
func (r *Resource) Reserve(category string) bool {
	if r.AvailableByCategory[category] <= 0 {
		return false
	}
	r.AvailableByCategory[category]--
	return true
}

// Release returns one unit of the category, clamped so availability never
// exceeds the configured capacity.
func (r *Resource) Release(category string) {
	if r.AvailableByCategory[category] >= r.CapacityByCategory[category] {
		return
	}
	r.AvailableByCategory[category]++
}
