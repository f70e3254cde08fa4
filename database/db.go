package database

import (
	"context"
	"log"
	"time"

	"bookify/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoClient is the global MongoDB client instance.
var MongoClient *mongo.Client

// InitDB connects to MongoDB and verifies the configured ledger database
// is reachable. The ledger only touches Mongo at process start and stop,
// so a short server-selection timeout fails fast on a bad URL.
func InitDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(config.AppConfig.DatabaseURL).
		SetServerSelectionTimeout(5 * time.Second)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatalf("failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("failed to ping MongoDB: %v", err)
	}
	MongoClient = client
	log.Printf("Connected to MongoDB, using database %q", config.AppConfig.DatabaseName)
}

// LedgerDB returns the handle for the configured ledger database.
func LedgerDB() *mongo.Database {
	return MongoClient.Database(config.AppConfig.DatabaseName)
}
