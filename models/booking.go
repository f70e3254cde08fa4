package models

import "time"

// BookingStatus tracks a booking through its lifecycle.
type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCompleted BookingStatus = "Completed"
	BookingCancelled BookingStatus = "Cancelled"
	BookingNoShow    BookingStatus = "NoShow"
)

// Terminal reports whether the status admits no further transitions.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingCompleted, BookingCancelled, BookingNoShow:
		return true
	}
	return false
}

// Holding reports whether a booking in this status holds a reserved
// capacity unit on its resource.
func (s BookingStatus) Holding() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Booking is a claim against a resource's capacity for a time interval.
// Bookings are never deleted, only status-transitioned.
type Booking struct {
	ID         string        `bson:"id" json:"id"`
	ResourceID string        `bson:"resourceId" json:"resourceId"`
	Category   string        `bson:"category" json:"category"`
	Interval   Interval      `bson:"interval" json:"interval"`
	Status     BookingStatus `bson:"status" json:"status"`
	CreatedAt  time.Time     `bson:"createdAt" json:"createdAt"`
}

// Clone returns a detached copy; all fields are values, so a struct copy
// is enough.
func (b *Booking) Clone() *Booking {
	cp := *b
	return &cp
}
