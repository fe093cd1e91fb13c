package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS emergency_contacts (
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		contact_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, contact_id)
	)`,
	`CREATE TABLE IF NOT EXISTS panic_events (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT now(),
		cause TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_panic_events_user_id ON panic_events(user_id)`,
}

// EnsureSchema creates the tables if they do not exist yet
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
