package utils

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	dbOnce   sync.Once
	dbClient *mongo.Client
	dbErr    error
)

// ErrMissingMongoURI is returned when no connection string is configured.
var ErrMissingMongoURI = errors.New("MONGODB_URI is not set")

// ConnectDB establishes the MongoDB connection on first call and memoizes the
// client for the process lifetime; subsequent calls return the same handle.
func ConnectDB(uri string) (*mongo.Client, error) {
	dbOnce.Do(func() {
		if uri == "" {
			dbErr = ErrMissingMongoURI
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			dbErr = err
			return
		}
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			dbErr = err
			return
		}
		dbClient = client
	})
	return dbClient, dbErr
}

// EnsureIndexes creates the unique indexes that back every uniqueness rule in
// the data model. Safe to call on every startup; index creation is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		collection string
		model      mongo.IndexModel
	}{
		{"users", mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{"products", mongo.IndexModel{Keys: bson.D{{Key: "sku", Value: 1}}, Options: unique}},
		{"coupons", mongo.IndexModel{Keys: bson.D{{Key: "code", Value: 1}}, Options: unique}},
		{"newsletters", mongo.IndexModel{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		{"contacts", mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}, {Key: "message", Value: 1}},
			Options: unique,
		}},
	}

	for _, idx := range indexes {
		if _, err := db.Collection(idx.collection).Indexes().CreateOne(ctx, idx.model); err != nil {
			return err
		}
	}
	return nil
}
