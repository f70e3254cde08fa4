package ledgerRepo

import (
	"context"
	"fmt"

	"bookify/database"
	"bookify/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	resourcesColl = "resources"
	bookingsColl  = "bookings"
)

// MongoLedgerRepo is the persistence collaborator for the booking ledger.
// The ledger only calls it at process start (LoadAll) and stop (SaveAll);
// everything in between is in-memory.
type MongoLedgerRepo struct {
	resourceColl *mongo.Collection
	bookingColl  *mongo.Collection
}

func NewMongoLedgerRepo() *MongoLedgerRepo {
	db := database.LedgerDB()
	return &MongoLedgerRepo{
		resourceColl: db.Collection(resourcesColl),
		bookingColl:  db.Collection(bookingsColl),
	}
}

// LoadAll reads every persisted resource and booking.
func (r *MongoLedgerRepo) LoadAll(ctx context.Context) ([]*models.Resource, []*models.Booking, error) {
	cur, err := r.resourceColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load resources: %w", err)
	}
	var resources []*models.Resource
	if err := cur.All(ctx, &resources); err != nil {
		return nil, nil, fmt.Errorf("failed to decode resources: %w", err)
	}

	cur, err = r.bookingColl.Find(ctx, bson.M{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	var bookings []*models.Booking
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return resources, bookings, nil
}

// SaveAll upserts the full ledger snapshot by record id.
func (r *MongoLedgerRepo) SaveAll(ctx context.Context, resources []*models.Resource, bookings []*models.Booking) error {
	opts := options.Replace().SetUpsert(true)
	for _, res := range resources {
		if _, err := r.resourceColl.ReplaceOne(ctx, bson.M{"id": res.ID}, res, opts); err != nil {
			return fmt.Errorf("failed to save resource %q: %w", res.ID, err)
		}
	}
	for _, b := range bookings {
		if _, err := r.bookingColl.ReplaceOne(ctx, bson.M{"id": b.ID}, b, opts); err != nil {
			return fmt.Errorf("failed to save booking %q: %w", b.ID, err)
		}
	}
	return nil
}
