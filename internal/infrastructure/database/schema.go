package database

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sentences (
    id TEXT PRIMARY KEY,
    text TEXT NOT NULL,
    translation TEXT NOT NULL DEFAULT '',
    language TEXT NOT NULL DEFAULT 'en',
    tags TEXT NOT NULL DEFAULT '[]',
    status TEXT NOT NULL DEFAULT 'red' CHECK (status IN ('red', 'yellow', 'green')),
    practice_count INTEGER NOT NULL DEFAULT 0,
    last_practiced TIMESTAMP NULL,
    next_due TEXT NOT NULL, -- YYYY-MM-DD
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_sentences_status_next_due ON sentences (status, next_due)`,
}

// Migrate creates the tables if they don't exist.
func Migrate(ctx context.Context, db *DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
