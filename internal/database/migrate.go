package database

import (
	"context"
)

// Migrate creates the content tables if they do not exist yet. Room and
// player state is in-memory only; the database holds nothing but packs.
func Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS category_items (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			pack TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS impostor_words (
			id UUID PRIMARY KEY,
			category TEXT NOT NULL,
			word TEXT NOT NULL,
			hint TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range stmts {
		if _, err := DB.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
