package models

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval reports a range whose end does not come after its start.
var ErrInvalidInterval = errors.New("invalid interval: end must be after start")

// Interval is a half-open [Start, End) time range at minute resolution.
// Timestamps are normalized to UTC and truncated to the minute.
type Interval struct {
	Start time.Time `bson:"start" json:"start"`
	End   time.Time `bson:"end" json:"end"`
}

// NewInterval builds a minute-resolution interval. End must be after Start.
func NewInterval(start, end time.Time) (Interval, error) {
	iv := Interval{
		Start: start.UTC().Truncate(time.Minute),
		End:   end.UTC().Truncate(time.Minute),
	}
	if !iv.Start.Before(iv.End) {
		return Interval{}, fmt.Errorf("%w: [%s, %s)", ErrInvalidInterval,
			iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
	}
	return iv, nil
}

// Overlaps reports whether two intervals share any time. The comparison is
// strict, so intervals that merely touch at an endpoint do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// DurationMinutes returns the interval length in whole minutes.
func (iv Interval) DurationMinutes() (int, error) {
	if !iv.Start.Before(iv.End) {
		return 0, fmt.Errorf("%w: [%s, %s)", ErrInvalidInterval,
			iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
	}
	return int(iv.End.Sub(iv.Start) / time.Minute), nil
}

// StartMinute returns minutes from midnight of the interval's start day.
func (iv Interval) StartMinute() int {
	return iv.Start.Hour()*60 + iv.Start.Minute()
}

// EndMinute returns minutes from midnight for the interval end. An interval
// ending exactly at midnight of the next day maps to 1440.
func (iv Interval) EndMinute() int {
	m := iv.End.Hour()*60 + iv.End.Minute()
	if m == 0 && iv.End.After(iv.Start) {
		return 24 * 60
	}
	return m
}

// Label renders a compact human-readable range, e.g. "09:00 - 10:30".
func (iv Interval) Label() string {
	return fmt.Sprintf("%s - %s", iv.Start.Format("15:04"), iv.End.Format("15:04"))
}
