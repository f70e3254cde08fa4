package ledger

import (
	"context"

	"bookify/models"

	"github.com/google/uuid"
)

// BookingLedger owns the booking collection and is the only writer of
// resource availability counters. Create, Cancel, and the status
// transitions are mutually exclusive critical sections per resource.
type BookingLedger interface {
	AddResource(res *models.Resource) error
	Resource(id string) (*models.Resource, error)
	Resources() []*models.Resource
	SetActive(id string, active bool) error

	Create(resourceID, category string, iv models.Interval) (string, error)
	Confirm(bookingID string) error
	Complete(bookingID string) error
	Cancel(bookingID string) error
	MarkNoShow(bookingID string) error

	Booking(id string) (*models.Booking, error)
	BookingsFor(resourceID string) []*models.Booking
	FindConflicts(resourceID string, iv models.Interval) ([]string, error)
}

// Store is the persistence collaborator. The ledger calls it only at
// process start and stop, never mid-operation.
type Store interface {
	LoadAll(ctx context.Context) ([]*models.Resource, []*models.Booking, error)
	SaveAll(ctx context.Context, resources []*models.Resource, bookings []*models.Booking) error
}

// IDGenerator supplies unique opaque ids for new bookings and resources.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator is the default id source.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.New().String() }
