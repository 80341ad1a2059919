package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists hits in Postgres so multiple instances share one
// window. Requires the rate_limit_hits table:
//
//	CREATE TABLE rate_limit_hits (
//	    client_id TEXT NOT NULL,
//	    hit_at    TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX rate_limit_hits_client_idx ON rate_limit_hits (client_id, hit_at);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a pooled connection and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresStore wraps an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Record inserts the hit and counts the client's hits inside the window.
func (s *PostgresStore) Record(ctx context.Context, clientID string, at time.Time, window time.Duration) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx,
		`WITH inserted AS (
		     INSERT INTO rate_limit_hits (client_id, hit_at) VALUES ($1, $2)
		 )
		 SELECT COUNT(*) + 1 FROM rate_limit_hits
		 WHERE client_id = $1 AND hit_at > $3 AND hit_at <= $2`,
		clientID, at, at.Add(-window),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to record hit: %w", err)
	}
	return count, nil
}

// Prune deletes hits at or before cutoff.
func (s *PostgresStore) Prune(ctx context.Context, cutoff time.Time) error {
	_, err := s.pool.Exec(ctx,
		`DELETE FROM rate_limit_hits WHERE hit_at <= $1`, cutoff)
	if err != nil {
		return fmt.Errorf("failed to prune hits: %w", err)
	}
	return nil
}
