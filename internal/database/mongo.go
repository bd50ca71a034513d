package database

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewMongoClient connects to MongoDB and returns a handle on the named database.
func NewMongoClient(ctx context.Context, uri, dbName string, log zerolog.Logger) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().ApplyURI(uri)
	if err := opts.Validate(); err != nil {
		return nil, nil, fmt.Errorf("parse mongo URI: %w", err)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	log.Info().
		Strs("hosts", opts.Hosts).
		Str("database", dbName).
		Msg("MongoDB connected")

	return client, client.Database(dbName), nil
}
