// Package store persists users, shopping lists, and list items in SQLite.
// The comparison engine reads only product names from it and never writes
// back.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	name  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS shopping_lists (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	name    TEXT NOT NULL,
	user_id INTEGER NOT NULL REFERENCES users(id)
);

CREATE TABLE IF NOT EXISTS list_items (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	product_name TEXT NOT NULL,
	list_id      INTEGER NOT NULL REFERENCES shopping_lists(id)
);
`

// pragmas applied on every open; WAL and busy_timeout keep the single-file
// database usable under concurrent request handlers.
var pragmas = []string{
	"PRAGMA foreign_keys = ON",
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 10000",
	"PRAGMA synchronous = NORMAL",
}

// Store is the SQLite-backed implementation of domain.UserRepository and
// domain.ListRepository.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path, applies pragmas,
// and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Seed creates the default user and shopping list when the database is
// empty, so a fresh install has something to compare against.
func (s *Store) Seed(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("store: seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Printf("[Store] Empty database, creating default user and list")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: seed: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO users (email, name) VALUES (?, ?)",
		"test@example.com", "Test User")
	if err != nil {
		return fmt.Errorf("store: seed user: %w", err)
	}

	userID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("store: seed user id: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO shopping_lists (name, user_id) VALUES (?, ?)",
		"Moja Pierwsza Lista", userID); err != nil {
		return fmt.Errorf("store: seed list: %w", err)
	}

	return tx.Commit()
}
