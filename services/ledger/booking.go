package ledger

import (
	"bookify/models"

	"go.uber.org/zap"
)

// Create validates and records a new Pending booking, reserving one unit of
// the category. All preconditions are checked before any state is touched,
// so a failed create leaves the ledger unchanged. The whole sequence runs
// under the resource's lock; concurrent creates cannot double-book a
// single-occupancy slot or oversell a capacity pool.
func (l *DefaultBookingLedger) Create(resourceID, category string, iv models.Interval) (string, error) {
	if !iv.Start.Before(iv.End) {
		return "", newError(CodeInvalidInterval, "interval end must be after start")
	}

	lk, err := l.lockFor(resourceID)
	if err != nil {
		return "", err
	}
	lk.Lock()
	defer lk.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	res := l.resources[resourceID]

	if !res.Active {
		return "", newError(CodeResourceInactive, "resource %q is inactive", resourceID)
	}
	if !res.IsOpenAt(iv) {
		return "", newError(CodeOutsideWindow, "resource %q is closed during %s", resourceID, iv.Label())
	}
	if !res.KnownCategory(category) {
		return "", newError(CodeUnknownCategory, "resource %q has no category %q", resourceID, category)
	}
	if !res.HasCapacity(category) {
		return "", newError(CodeCapacityExhausted, "no %q capacity left on resource %q", category, resourceID)
	}
	if res.Policy == models.PolicySingleOccupancy {
		for _, b := range l.bookingsForLocked(resourceID) {
			if b.Status.Holding() && iv.Overlaps(b.Interval) {
				return "", newError(CodeScheduleConflict, "interval %s conflicts with booking %q", iv.Label(), b.ID)
			}
		}
	}

	if !res.Reserve(category) {
		// Unreachable after the HasCapacity check; kept as a guard.
		return "", newError(CodeCapacityExhausted, "no %q capacity left on resource %q", category, resourceID)
	}
	booking := &models.Booking{
		ID:         l.ids.NewID(),
		ResourceID: resourceID,
		Category:   category,
		Interval:   iv,
		Status:     models.BookingPending,
		CreatedAt:  l.now().UTC(),
	}
	l.bookings[booking.ID] = booking
	l.byResource[resourceID] = append(l.byResource[resourceID], booking.ID)

	if l.logger != nil {
		l.logger.Debug("booking created",
			zap.String("bookingID", booking.ID),
			zap.String("resourceID", resourceID),
			zap.String("category", category))
	}
	return booking.ID, nil
}

// Confirm moves a Pending booking to Confirmed.
func (l *DefaultBookingLedger) Confirm(bookingID string) error {
	return l.transition(bookingID, models.BookingConfirmed, models.BookingPending)
}

// Complete moves a Confirmed booking to Completed, returning its unit to
// the pool; terminal bookings never hold capacity.
func (l *DefaultBookingLedger) Complete(bookingID string) error {
	return l.transition(bookingID, models.BookingCompleted, models.BookingConfirmed)
}

// Cancel moves a Pending or Confirmed booking to Cancelled and releases its
// capacity unit. Cancelling an already-Cancelled booking is a no-op.
func (l *DefaultBookingLedger) Cancel(bookingID string) error {
	return l.transition(bookingID, models.BookingCancelled, models.BookingPending, models.BookingConfirmed)
}

// MarkNoShow moves a Confirmed booking to NoShow, releasing its unit.
func (l *DefaultBookingLedger) MarkNoShow(bookingID string) error {
	return l.transition(bookingID, models.BookingNoShow, models.BookingConfirmed)
}

func (l *DefaultBookingLedger) transition(bookingID string, to models.BookingStatus, from ...models.BookingStatus) error {
	l.mu.Lock()
	booking, ok := l.bookings[bookingID]
	resourceID := ""
	if ok {
		resourceID = booking.ResourceID
	}
	l.mu.Unlock()
	if !ok {
		return newError(CodeBookingNotFound, "booking %q not found", bookingID)
	}

	lk, err := l.lockFor(resourceID)
	if err != nil {
		return err
	}
	lk.Lock()
	defer lk.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()

	if to == models.BookingCancelled && booking.Status == models.BookingCancelled {
		return nil
	}
	allowed := false
	for _, s := range from {
		if booking.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return newError(CodeInvalidTransition, "booking %q: cannot go from %s to %s", bookingID, booking.Status, to)
	}

	wasHolding := booking.Status.Holding()
	booking.Status = to
	if wasHolding && !to.Holding() {
		l.resources[resourceID].Release(booking.Category)
	}

	if l.logger != nil {
		l.logger.Debug("booking transitioned",
			zap.String("bookingID", bookingID),
			zap.String("status", string(to)))
	}
	return nil
}

// Booking returns a snapshot of a single booking.
func (l *DefaultBookingLedger) Booking(id string) (*models.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.bookings[id]
	if !ok {
		return nil, newError(CodeBookingNotFound, "booking %q not found", id)
	}
	return b.Clone(), nil
}

// BookingsFor returns snapshots of all bookings ever made against the
// resource, including terminal ones; history is never dropped.
func (l *DefaultBookingLedger) BookingsFor(resourceID string) []*models.Booking {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*models.Booking, 0, len(l.byResource[resourceID]))
	for _, b := range l.bookingsForLocked(resourceID) {
		out = append(out, b.Clone())
	}
	return out
}

// bookingsForLocked returns the live records; callers must hold l.mu and
// must not let the pointers escape.
func (l *DefaultBookingLedger) bookingsForLocked(resourceID string) []*models.Booking {
	ids := l.byResource[resourceID]
	out := make([]*models.Booking, 0, len(ids))
	for _, id := range ids {
		out = append(out, l.bookings[id])
	}
	return out
}

// FindConflicts lists the ids of non-terminal bookings on the resource
// whose interval overlaps the given one, regardless of conflict policy.
func (l *DefaultBookingLedger) FindConflicts(resourceID string, iv models.Interval) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.resources[resourceID]; !ok {
		return nil, newError(CodeResourceNotFound, "resource %q not found", resourceID)
	}
	var conflicts []string
	for _, b := range l.bookingsForLocked(resourceID) {
		if b.Status.Holding() && iv.Overlaps(b.Interval) {
			conflicts = append(conflicts, b.ID)
		}
	}
	return conflicts, nil
}
