// Package sqlite persists long-term facts in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/koscakluka/aeris/core/memory"

	_ "modernc.org/sqlite"
)

var _ memory.FactStore = (*Store)(nil)

type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (and creates if needed) the fact database at path. Use
// ":memory:" for a throwaway store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps ":memory:" databases shared between calls
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS facts (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`)
	return err
}

func (s *Store) Load(ctx context.Context) (memory.Facts, error) {
	ctx, span := tracer.Start(ctx, "load facts")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM facts`)
	if err != nil {
		err = fmt.Errorf("failed to query facts: %w", err)
		span.RecordError(err)
		return nil, err
	}
	defer rows.Close()

	facts := memory.Facts{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan fact: %w", err)
		}
		facts[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read facts: %w", err)
	}

	return facts, nil
}

// Merge upserts every fact contained in update in a single transaction.
func (s *Store) Merge(ctx context.Context, update map[string]any) error {
	ctx, span := tracer.Start(ctx, "merge facts")
	defer span.End()

	facts := memory.Flatten(update)
	if len(facts) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, key := range facts.Keys() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO facts (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
			key, facts[key],
		); err != nil {
			err = fmt.Errorf("failed to store fact %q: %w", key, err)
			span.RecordError(err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit facts: %w", err)
	}

	logger.Debug("merged facts", "count", len(facts))
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
