package models

// BookingSession is the transient state of a two-phase booking flow,
// cached in Redis between availability lookup and confirmation.
type BookingSession struct {
	ResourceID   string     `json:"resourceId"`
	Category     string     `json:"category"`
	Date         string     `json:"date"` // "2006-01-02"
	Availability []Interval `json:"availability,omitempty"`
}
