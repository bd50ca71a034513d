package repository

import (
	"context"
	"fmt"
	"net/url"

	"github.com/edustar/intake-backend/internal/config"
	"github.com/edustar/intake-backend/internal/database"
	"github.com/rs/zerolog"
)

// Open connects the store selected by the DATABASE_URL scheme. The returned
// close function releases the connection and is never nil.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (SubmissionStore, func(), error) {
	if cfg.DatabaseURLDefaulted {
		log.Warn().Str("database_url", config.DefaultDatabaseURL).Msg("DATABASE_URL not set, using default")
	}

	u, err := url.Parse(cfg.DatabaseURL)
	if err != nil {
		return nil, func() {}, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		pool, err := database.NewPostgresPool(ctx, cfg.DatabaseURL, cfg.MaxDBConns, log)
		if err != nil {
			return nil, func() {}, err
		}
		return NewPostgresStore(pool), pool.Close, nil

	case "mongodb", "mongodb+srv":
		client, db, err := database.NewMongoClient(ctx, cfg.DatabaseURL, cfg.MongoDatabase, log)
		if err != nil {
			return nil, func() {}, err
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("Failed to disconnect MongoDB")
			}
		}
		store := NewMongoStore(db)
		if err := store.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, func() {}, fmt.Errorf("ensure mongo indexes: %w", err)
		}
		return store, closeFn, nil

	case "memory":
		log.Warn().Msg("Using in-memory submission store; data is lost on restart")
		return NewMemoryStore(), func() {}, nil
	}

	return nil, func() {}, fmt.Errorf("unsupported DATABASE_URL scheme %q", u.Scheme)
}
