// Package store persists chats, messages, and generated indicators in
// PostgreSQL through a pgx connection pool.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// Store provides access to all persisted entities.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a connection pool, verifies it with a ping, and ensures the
// schema exists.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.bootstrap(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	log.Debug().Msg("Database connection established")
	return s, nil
}

// NewStore wraps an existing pool without running schema bootstrap. Used by
// components that share a pool, like the job queue.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Pool exposes the underlying pool for components that need direct access.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS chats (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL DEFAULT 'New chat',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id BIGSERIAL PRIMARY KEY,
		chat_id UUID NOT NULL REFERENCES chats(id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS messages_chat_id_idx ON messages (chat_id, id)`,
	`CREATE TABLE IF NOT EXISTS indicators (
		id UUID PRIMARY KEY,
		chat_id UUID REFERENCES chats(id) ON DELETE SET NULL,
		name TEXT NOT NULL,
		code TEXT NOT NULL,
		preview TEXT NOT NULL DEFAULT '',
		config JSONB NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// scanError maps a row-scan failure onto the store's error surface: a
// missing row becomes ErrNotFound, anything else (connection loss, bad data)
// keeps the driver error so callers can tell an outage from a 404.
func scanError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Store) bootstrap(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
