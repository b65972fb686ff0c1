package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

type migration struct {
	version int
	name    string
	script  string
}

// migrations are applied in order; never edit an applied script, append a new one
var migrations = []migration{
	{
		version: 1,
		name:    "create_users",
		script: `
			CREATE TABLE IF NOT EXISTS users (
				id UUID PRIMARY KEY,
				username TEXT NOT NULL UNIQUE,
				email TEXT NOT NULL UNIQUE,
				first_name TEXT NOT NULL DEFAULT '',
				last_name TEXT NOT NULL DEFAULT '',
				bio TEXT NOT NULL DEFAULT '',
				role TEXT NOT NULL DEFAULT 'user',
				confirmation_code TEXT,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)`,
	},
	{
		version: 2,
		name:    "create_categories_genres",
		script: `
			CREATE TABLE IF NOT EXISTS categories (
				id UUID PRIMARY KEY,
				name TEXT NOT NULL,
				slug TEXT NOT NULL UNIQUE,
				created_at TIMESTAMPTZ NOT NULL
			);
			CREATE TABLE IF NOT EXISTS genres (
				id UUID PRIMARY KEY,
				name TEXT NOT NULL,
				slug TEXT NOT NULL UNIQUE,
				created_at TIMESTAMPTZ NOT NULL
			)`,
	},
	{
		version: 3,
		name:    "create_titles",
		script: `
			CREATE TABLE IF NOT EXISTS titles (
				id UUID PRIMARY KEY,
				name TEXT NOT NULL,
				year INT NOT NULL,
				description TEXT,
				category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			);
			CREATE TABLE IF NOT EXISTS title_genres (
				id UUID PRIMARY KEY,
				title_id UUID NOT NULL REFERENCES titles(id) ON DELETE CASCADE,
				genre_id UUID NOT NULL REFERENCES genres(id) ON DELETE CASCADE,
				created_at TIMESTAMPTZ NOT NULL,
				CONSTRAINT unique_title_genre UNIQUE (title_id, genre_id)
			)`,
	},
	{
		version: 4,
		name:    "create_reviews",
		script: `
			CREATE TABLE IF NOT EXISTS reviews (
				id UUID PRIMARY KEY,
				title_id UUID NOT NULL REFERENCES titles(id) ON DELETE CASCADE,
				author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				text TEXT NOT NULL,
				score INT NOT NULL CHECK (score BETWEEN 1 AND 10),
				created_at TIMESTAMPTZ NOT NULL,
				CONSTRAINT unique_author_title UNIQUE (author_id, title_id)
			)`,
	},
	{
		version: 5,
		name:    "create_comments",
		script: `
			CREATE TABLE IF NOT EXISTS comments (
				id UUID PRIMARY KEY,
				review_id UUID NOT NULL REFERENCES reviews(id) ON DELETE CASCADE,
				author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				text TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			)`,
	},
	{
		version: 6,
		name:    "create_indexes",
		script: `
			CREATE INDEX IF NOT EXISTS idx_titles_name ON titles(name);
			CREATE INDEX IF NOT EXISTS idx_titles_year ON titles(year);
			CREATE INDEX IF NOT EXISTS idx_reviews_title ON reviews(title_id);
			CREATE INDEX IF NOT EXISTS idx_comments_review ON comments(review_id)`,
	},
}

// Migrate applies pending schema migrations in order, one transaction each
func Migrate(ctx context.Context, db PgxIface, log *zap.Logger) error {
	_, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	var current int
	err = db.QueryRow(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := db.Begin(ctx)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.version, err)
		}

		if _, err := tx.Exec(ctx, m.script); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("apply migration %d %s: %w", m.version, m.name, err)
		}

		if _, err := tx.Exec(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
			m.version, m.name,
		); err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("record migration %d: %w", m.version, err)
		}

		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.version, err)
		}

		log.Info("Migration applied",
			zap.Int("version", m.version),
			zap.String("name", m.name),
		)
	}

	return nil
}
