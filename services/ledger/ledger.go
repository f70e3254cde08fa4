package ledger

import (
	"fmt"
	"sync"
	"time"

	"bookify/models"

	"go.uber.org/zap"
)

// DefaultBookingLedger is the in-memory ledger implementation. The
// ledger-level mutex guards every record read and write, so accessors and
// JSON-marshalling readers never race a mutation; a per-resource mutex
// additionally serializes check-then-act sequences on each resource, so
// creates on different resources only contend for the short map accesses.
// Accessors hand out detached copies, never the ledger's own records.
type DefaultBookingLedger struct {
	mu         sync.Mutex
	resources  map[string]*models.Resource
	bookings   map[string]*models.Booking
	byResource map[string][]string
	locks      map[string]*sync.Mutex

	ids    IDGenerator
	now    func() time.Time
	logger *zap.Logger
}

func NewDefaultBookingLedger(ids IDGenerator, logger *zap.Logger) *DefaultBookingLedger {
	if ids == nil {
		ids = UUIDGenerator{}
	}
	return &DefaultBookingLedger{
		resources:  make(map[string]*models.Resource),
		bookings:   make(map[string]*models.Booking),
		byResource: make(map[string][]string),
		locks:      make(map[string]*sync.Mutex),
		ids:        ids,
		now:        time.Now,
		logger:     logger,
	}
}

// lockFor resolves the per-resource mutex, creating it on first use.
func (l *DefaultBookingLedger) lockFor(resourceID string) (*sync.Mutex, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.resources[resourceID]; !ok {
		return nil, newError(CodeResourceNotFound, "resource %q not found", resourceID)
	}
	lk, ok := l.locks[resourceID]
	if !ok {
		lk = &sync.Mutex{}
		l.locks[resourceID] = lk
	}
	return lk, nil
}

// AddResource registers a resource. Availability counters are seeded from
// capacity when absent; the conflict policy defaults to single occupancy.
// The ledger stores its own copy, so the caller's struct stays detached.
func (l *DefaultBookingLedger) AddResource(res *models.Resource) error {
	if res.ID == "" {
		res.ID = l.ids.NewID()
	}
	if len(res.CapacityByCategory) == 0 {
		return fmt.Errorf("resource %q has no capacity categories", res.ID)
	}
	for category, capacity := range res.CapacityByCategory {
		if capacity < 0 {
			return fmt.Errorf("resource %q: negative capacity for category %q", res.ID, category)
		}
	}
	if res.AvailableByCategory == nil {
		res.AvailableByCategory = make(map[string]int, len(res.CapacityByCategory))
		for category, capacity := range res.CapacityByCategory {
			res.AvailableByCategory[category] = capacity
		}
	}
	if res.Policy == "" {
		res.Policy = models.PolicySingleOccupancy
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = l.now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, exists := l.resources[res.ID]; exists {
		return fmt.Errorf("resource %q already registered", res.ID)
	}
	l.resources[res.ID] = res.Clone()
	return nil
}

// Resource returns a snapshot of the resource and its live counters.
func (l *DefaultBookingLedger) Resource(id string) (*models.Resource, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	res, ok := l.resources[id]
	if !ok {
		return nil, newError(CodeResourceNotFound, "resource %q not found", id)
	}
	return res.Clone(), nil
}

// Resources returns snapshots of all registered resources.
func (l *DefaultBookingLedger) Resources() []*models.Resource {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*models.Resource, 0, len(l.resources))
	for _, res := range l.resources {
		out = append(out, res.Clone())
	}
	return out
}

// SetActive flips the resource's active flag. Deactivation stops new
// bookings but keeps existing ones and their history intact.
func (l *DefaultBookingLedger) SetActive(id string, active bool) error {
	lk, err := l.lockFor(id)
	if err != nil {
		return err
	}
	lk.Lock()
	defer lk.Unlock()

	l.mu.Lock()
	defer l.mu.Unlock()
	l.resources[id].Active = active
	return nil
}

// Snapshot copies out the full ledger state for the persistence
// collaborator. Called at process stop, never mid-operation.
func (l *DefaultBookingLedger) Snapshot() ([]*models.Resource, []*models.Booking) {
	l.mu.Lock()
	defer l.mu.Unlock()
	resources := make([]*models.Resource, 0, len(l.resources))
	for _, res := range l.resources {
		resources = append(resources, res.Clone())
	}
	bookings := make([]*models.Booking, 0, len(l.bookings))
	for _, b := range l.bookings {
		bookings = append(bookings, b.Clone())
	}
	return resources, bookings
}

// Restore hydrates the ledger from persisted state at process start.
func (l *DefaultBookingLedger) Restore(resources []*models.Resource, bookings []*models.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, res := range resources {
		if res.ID == "" {
			return fmt.Errorf("persisted resource without id")
		}
		l.resources[res.ID] = res.Clone()
	}
	for _, b := range bookings {
		if _, ok := l.resources[b.ResourceID]; !ok {
			return fmt.Errorf("persisted booking %q references unknown resource %q", b.ID, b.ResourceID)
		}
		l.bookings[b.ID] = b.Clone()
		l.byResource[b.ResourceID] = append(l.byResource[b.ResourceID], b.ID)
	}
	return nil
}
