// Package storage provides the Postgres mirror of catalog photo
// records. The mirror lets the latest-photos endpoint answer from
// local state and keeps a durable high-water mark for incremental
// catalog syncs.
package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store provides access to the mirror database.
type Store struct {
	db *pgxpool.Pool
}

// New creates a Store connected to the given database.
func New(ctx context.Context, dbURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// Health checks database connectivity.
func (s *Store) Health(ctx context.Context) error {
	if err := s.db.Ping(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	return nil
}
